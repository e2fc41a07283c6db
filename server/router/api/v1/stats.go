// Package v1 exposes the operational HTTP endpoints: a health probe for the
// deployment platform and a usage-stats view guarded by a bearer token. It
// reads the same store the admin command does; nothing here mutates state.
package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mojibrsm/snapclean/internal/profile"
	"github.com/mojibrsm/snapclean/store"
)

// recentUsersInStats is how many recently registered users the stats endpoint lists.
const recentUsersInStats = 10

// APIV1Service serves the v1 operational API.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	startTime time.Time
}

// NewAPIV1Service creates the operational API service.
func NewAPIV1Service(p *profile.Profile, st *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:   p,
		Store:     st,
		startTime: time.Now(),
	}
}

// RegisterRoutes attaches the service's routes to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.GetHealth)
	e.GET("/api/v1/stats", s.GetStats)
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// GetHealth returns liveness information.
// GET /healthz
func (s *APIV1Service) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       s.Profile.Version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

// RecentUser is one entry of the stats response.
type RecentUser struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Handle      string `json:"handle,omitempty"`
	Requests    int64  `json:"requests"`
}

// StatsResponse is the usage summary body.
type StatsResponse struct {
	TotalUsers    int          `json:"total_users"`
	TotalRequests int64        `json:"total_requests"`
	Recent        []RecentUser `json:"recent"`
}

// GetStats returns aggregate usage. The caller must present the configured
// ops token; without one configured the endpoint stays closed.
// GET /api/v1/stats
func (s *APIV1Service) GetStats(c echo.Context) error {
	if !s.authorized(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	summary := s.Store.Summarize(recentUsersInStats)
	resp := StatsResponse{
		TotalUsers:    summary.TotalUsers,
		TotalRequests: summary.TotalRequests,
		Recent:        make([]RecentUser, 0, len(summary.Recent)),
	}
	for _, u := range summary.Recent {
		resp.Recent = append(resp.Recent, RecentUser{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Handle:      u.Handle,
			Requests:    u.Requests,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) authorized(c echo.Context) bool {
	if s.Profile.OpsToken == "" {
		return false
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	return token != header && token == s.Profile.OpsToken
}
