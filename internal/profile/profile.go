package profile

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the bot process.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Version is the current version of the bot
	Version string

	// BotToken is the Telegram bot API token
	BotToken string // SNAPCLEAN_BOT_TOKEN
	// AdminUserID is the Telegram user id allowed to view the admin report
	AdminUserID int64 // SNAPCLEAN_ADMIN_USER_ID
	// ChannelURL is shown in the welcome message
	ChannelURL string // SNAPCLEAN_CHANNEL_URL
	// DeveloperHandle is shown in the contact card
	DeveloperHandle string // SNAPCLEAN_DEVELOPER_HANDLE

	// RemoveBGAPIKey authorizes calls to the background-removal API
	RemoveBGAPIKey string // SNAPCLEAN_REMOVEBG_API_KEY
	// RemoveBGBaseURL overrides the background-removal endpoint
	RemoveBGBaseURL string // SNAPCLEAN_REMOVEBG_BASE_URL (default: https://api.remove.bg/v1.0)
	// APITimeout bounds one background-removal call
	APITimeout time.Duration // SNAPCLEAN_API_TIMEOUT (default: 45s)

	// StagingDir is where inbound photos are written for the duration of one attempt
	StagingDir string // SNAPCLEAN_STAGING_DIR (default: os.TempDir()/snapclean)
	// PendingTTL expires dangling setting pickers; zero keeps them forever
	PendingTTL time.Duration // SNAPCLEAN_PENDING_TTL (default: 0, no expiry)

	// OpsAddr is the listen address for the health/stats endpoints; empty disables them
	OpsAddr string // SNAPCLEAN_OPS_ADDR
	// OpsToken guards the stats endpoint
	OpsToken string // SNAPCLEAN_OPS_TOKEN
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// FromEnv loads configuration from SNAPCLEAN_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("SNAPCLEAN_MODE", "dev")
	p.BotToken = os.Getenv("SNAPCLEAN_BOT_TOKEN")
	p.ChannelURL = getEnvOrDefault("SNAPCLEAN_CHANNEL_URL", "https://t.me/MrTools_BD")
	p.DeveloperHandle = getEnvOrDefault("SNAPCLEAN_DEVELOPER_HANDLE", "@Mojibrsm")

	if raw := os.Getenv("SNAPCLEAN_ADMIN_USER_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.AdminUserID = id
		}
	}

	p.RemoveBGAPIKey = os.Getenv("SNAPCLEAN_REMOVEBG_API_KEY")
	p.RemoveBGBaseURL = getEnvOrDefault("SNAPCLEAN_REMOVEBG_BASE_URL", "https://api.remove.bg/v1.0")
	p.APITimeout = getDurationEnv("SNAPCLEAN_API_TIMEOUT", 45*time.Second)

	p.StagingDir = getEnvOrDefault("SNAPCLEAN_STAGING_DIR", filepath.Join(os.TempDir(), "snapclean"))
	p.PendingTTL = getDurationEnv("SNAPCLEAN_PENDING_TTL", 0)

	p.OpsAddr = os.Getenv("SNAPCLEAN_OPS_ADDR")
	p.OpsToken = os.Getenv("SNAPCLEAN_OPS_TOKEN")
}

// Validate checks that the profile carries everything the bot needs to run.
func (p *Profile) Validate() error {
	if p.BotToken == "" {
		return errors.New("SNAPCLEAN_BOT_TOKEN is not set")
	}
	if p.RemoveBGAPIKey == "" {
		return errors.New("SNAPCLEAN_REMOVEBG_API_KEY is not set")
	}
	if p.AdminUserID == 0 {
		return errors.New("SNAPCLEAN_ADMIN_USER_ID is not set or not a number")
	}
	if p.APITimeout <= 0 {
		return errors.New("API timeout must be positive")
	}
	return nil
}
