// Package bot implements the SnapClean request lifecycle: command dispatch,
// the quality/format settings negotiation, and the photo processing
// orchestration against the background-removal API.
package bot

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/mojibrsm/snapclean/internal/profile"
	"github.com/mojibrsm/snapclean/plugin/removebg"
	errs "github.com/mojibrsm/snapclean/server/internal/errors"
	"github.com/mojibrsm/snapclean/server/internal/observability"
	"github.com/mojibrsm/snapclean/store"
)

// Remover strips the background from image bytes. *removebg.Client is the
// production implementation.
type Remover interface {
	RemoveBackground(ctx context.Context, image []byte, size removebg.Size, format removebg.Format) ([]byte, error)
}

type handlerFunc func(ctx context.Context, evt *Event) error

// Bot routes inbound events to their handlers and holds the shared state
// every handler needs.
type Bot struct {
	profile   *profile.Profile
	store     *store.Store
	transport Transport
	remover   Remover
	logger    *slog.Logger

	handlers map[Command]handlerFunc
}

// New creates the bot core. All collaborators are passed in by handle; the
// bot owns no globals.
func New(p *profile.Profile, st *store.Store, transport Transport, remover Remover, logger *slog.Logger) *Bot {
	b := &Bot{
		profile:   p,
		store:     st,
		transport: transport,
		remover:   remover,
		logger:    logger,
	}
	b.handlers = map[Command]handlerFunc{
		CommandStart:   b.handleStart,
		CommandHelp:    b.handleHelp,
		CommandContact: b.handleContact,
		CommandAdmin:   b.handleAdmin,
		CommandQuality: b.handleQuality,
		CommandFormat:  b.handleFormat,
		CommandCancel:  b.handleCancel,
	}
	return b
}

// HandleEvent processes one inbound event to completion. Every failure is
// terminal for this event: it is logged, surfaced to the user as a single
// message, and never propagated to the caller.
func (b *Bot) HandleEvent(ctx context.Context, evt *Event) {
	command := b.commandFor(evt)
	reqCtx := observability.NewRequestContext(b.logger, eventLabel(command, evt), evt.UserID, evt.ChatID)
	ctx = observability.WithRequestContext(ctx, reqCtx)

	err := b.dispatch(ctx, command, evt)
	if err == nil {
		reqCtx.Debug("event handled", slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
		return
	}

	code := errs.GetCodeFromError(err, errs.ErrCodeUnclassified)
	reqCtx.Error("event failed", err,
		slog.String(observability.LogFieldErrorCode, string(code)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))

	if _, sendErr := b.transport.SendText(ctx, evt.ChatID, userMessageFor(err)); sendErr != nil {
		reqCtx.Error("failed to report error to user", sendErr)
	}
}

func (b *Bot) commandFor(evt *Event) Command {
	if evt.Callback != nil {
		return CommandNone
	}
	return ParseCommand(evt.Text)
}

// eventLabel names the event for structured logging.
func eventLabel(command Command, evt *Event) string {
	switch {
	case evt.Callback != nil:
		return "selection"
	case command == CommandNone && len(evt.Photos) > 0:
		return "photo"
	default:
		return command.String()
	}
}

// dispatch routes the event through the command table. Panics anywhere below
// are converted into unclassified errors so that cleanup and user reporting
// still happen.
func (b *Bot) dispatch(ctx context.Context, command Command, evt *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Unclassified(fmt.Sprintf("panic while handling event: %v", r), nil)
		}
	}()

	b.store.EnsureUser(evt.UserID, evt.DisplayName, evt.Handle)

	if evt.Callback != nil {
		return b.handleSelection(ctx, evt)
	}
	if handler, ok := b.handlers[command]; ok {
		return handler(ctx, evt)
	}
	if len(evt.Photos) > 0 {
		return b.handlePhoto(ctx, evt)
	}

	// Plain text that is neither a command nor a photo is ignored.
	return nil
}

// userMessageFor maps a failure to the single message shown to the user.
func userMessageFor(err error) string {
	switch errs.GetCodeFromError(err, errs.ErrCodeUnclassified) {
	case errs.ErrCodeExternalAPI:
		var botErr *errs.BotError
		reason := removebg.FallbackReason
		if stderrors.As(err, &botErr) && botErr.Message != "" {
			reason = botErr.Message
		}
		return fmt.Sprintf("API Error: %s. Please check that your remove.bg API Key is correct.", reason)
	case errs.ErrCodeUnauthorizedAdmin:
		return "Sorry, this command is for the bot administrator only."
	case errs.ErrCodeInvalidSelection:
		return "Invalid selection. Please use the buttons provided."
	default:
		return "An unexpected error occurred. Please try again later."
	}
}
