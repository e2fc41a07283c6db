// Package server ties the bot core to its runtimes: the Telegram polling
// loop and the optional operational HTTP listener.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/mojibrsm/snapclean/internal/profile"
	"github.com/mojibrsm/snapclean/server/bot"
	apiv1 "github.com/mojibrsm/snapclean/server/router/api/v1"
	"github.com/mojibrsm/snapclean/server/telegram"
	"github.com/mojibrsm/snapclean/store"
)

const opsShutdownTimeout = 10 * time.Second

// Poller consumes transport updates and feeds them to the handler until the
// context is cancelled. *telegram.Adapter is the production implementation.
type Poller interface {
	Run(ctx context.Context, handler telegram.EventHandler) error
}

// Server runs the bot until its context is cancelled.
type Server struct {
	profile *profile.Profile
	logger  *slog.Logger
	bot     *bot.Bot
	poller  Poller
	ops     *echo.Echo
}

// New wires the server. The ops listener is only created when an address is
// configured.
func New(p *profile.Profile, st *store.Store, b *bot.Bot, poller Poller, logger *slog.Logger) *Server {
	s := &Server{
		profile: p,
		logger:  logger,
		bot:     b,
		poller:  poller,
	}

	if p.OpsAddr != "" {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())
		apiv1.NewAPIV1Service(p, st).RegisterRoutes(e)
		s.ops = e
	}
	return s
}

// Start runs the poller and the ops listener until ctx is cancelled, then
// shuts both down.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.poller.Run(ctx, s.bot)
	})

	if s.ops != nil {
		g.Go(func() error {
			s.logger.Info("ops listener started", "addr", s.profile.OpsAddr)
			if err := s.ops.Start(s.profile.OpsAddr); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), opsShutdownTimeout)
			defer cancel()
			return s.ops.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
