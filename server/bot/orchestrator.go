package bot

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/mojibrsm/snapclean/plugin/removebg"
	errs "github.com/mojibrsm/snapclean/server/internal/errors"
	"github.com/mojibrsm/snapclean/server/internal/observability"
	"github.com/mojibrsm/snapclean/store"
)

const (
	processingText = "✨ Processing your image, please wait..."

	// deliveredBaseName is the fixed base of the delivered file name; the
	// resolved format supplies the extension.
	deliveredBaseName = "SnapCleaned"
)

// handlePhoto runs the request lifecycle for one inbound photo: count the
// attempt, acknowledge, stage the image, call the removal API, deliver or
// report, and clean up on every path.
func (b *Bot) handlePhoto(ctx context.Context, evt *Event) error {
	// Counted before the outcome is known; failed attempts count too.
	count := b.store.RecordAttempt(evt.UserID)
	if reqCtx, ok := observability.FromContext(ctx); ok {
		reqCtx.Info("processing attempt started", slog.Int64("attempt", count))
	}

	ackID, err := b.transport.SendText(ctx, evt.ChatID, processingText)
	if err != nil {
		// The acknowledgement is best effort; processing proceeds without it.
		b.logger.Warn("failed to send processing acknowledgement", "chat_id", evt.ChatID, "error", err)
		ackID = 0
	}
	defer func() {
		if ackID == 0 {
			return
		}
		if err := b.transport.DeleteMessage(ctx, evt.ChatID, ackID); err != nil {
			b.logger.Warn("failed to dismiss processing acknowledgement", "chat_id", evt.ChatID, "error", err)
		}
	}()

	staged, err := b.stagePhoto(ctx, evt)
	if err != nil {
		return errs.TransportFetch("failed to stage inbound photo", err)
	}
	defer staged.Remove(b.logger)

	image, err := staged.Bytes()
	if err != nil {
		return errs.Unclassified("failed to read staged photo", err)
	}

	prefs := b.store.GetPreferences(evt.UserID)

	apiCtx, cancel := context.WithTimeout(ctx, b.profile.APITimeout)
	defer cancel()

	result, err := b.remover.RemoveBackground(apiCtx, image, sizeFor(prefs.Quality), formatFor(prefs.Format))
	if err != nil {
		var apiErr *removebg.APIError
		if stderrors.As(err, &apiErr) {
			return errs.ExternalAPI(apiErr.Reason, apiErr)
		}
		return errs.Unclassified("background removal call failed", err)
	}

	filename := deliveredBaseName + "." + prefs.Format.Extension()
	caption := fmt.Sprintf("Here is your image! (%s, %s)", prefs.Quality.Label(), prefs.Format.Label())
	if err := b.transport.SendDocument(ctx, evt.ChatID, filename, result, caption); err != nil {
		return errs.Unclassified("failed to deliver processed image", err)
	}
	return nil
}

// sizeFor maps the user-facing quality setting to the API size parameter.
// HD requests maximum resolution; Standard lets the API decide.
func sizeFor(q store.Quality) removebg.Size {
	if q == store.QualityHD {
		return removebg.Size4K
	}
	return removebg.SizeAuto
}

func formatFor(f store.Format) removebg.Format {
	if f == store.FormatJPG {
		return removebg.FormatJPG
	}
	return removebg.FormatPNG
}
