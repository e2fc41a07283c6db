package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	errs "github.com/mojibrsm/snapclean/server/internal/errors"
	"github.com/mojibrsm/snapclean/server/internal/observability"
	"github.com/mojibrsm/snapclean/store"
)

// Selection tokens carried by picker callbacks. These are the full enumerated
// set; anything else in a callback is a transport contract violation.
const (
	tokenStandard = "standard"
	tokenHD       = "hd"
	tokenPNG      = "png"
	tokenJPG      = "jpg"
)

var qualityOptions = []PickerOption{
	{Label: "Standard (Free)", Token: tokenStandard},
	{Label: "HD (Requires remove.bg Credits)", Token: tokenHD},
}

var formatOptions = []PickerOption{
	{Label: "PNG (Transparent)", Token: tokenPNG},
	{Label: "JPG (White Background)", Token: tokenJPG},
}

func (b *Bot) handleQuality(ctx context.Context, evt *Event) error {
	return b.beginSelection(ctx, evt, store.SelectionQuality,
		"Please choose your desired output quality:", qualityOptions)
}

func (b *Bot) handleFormat(ctx context.Context, evt *Event) error {
	return b.beginSelection(ctx, evt, store.SelectionFormat,
		"Please choose your desired output format:", formatOptions)
}

// beginSelection emits a picker and records the pending selection.
// Re-invoking while one is already open simply replaces it: the latest picker
// is the only one that resolves.
func (b *Bot) beginSelection(ctx context.Context, evt *Event, kind store.SelectionKind, prompt string, options []PickerOption) error {
	messageID, err := b.transport.SendPicker(ctx, evt.ChatID, prompt, options)
	if err != nil {
		return errors.Wrapf(err, "failed to send %s picker", kind)
	}

	b.store.SetPending(store.PendingSelection{
		UserID:    evt.UserID,
		Kind:      kind,
		ChatID:    evt.ChatID,
		MessageID: messageID,
	})
	return nil
}

func (b *Bot) handleCancel(ctx context.Context, evt *Event) error {
	b.store.ClearAllPending(evt.UserID)
	_, err := b.transport.SendMenu(ctx, evt.ChatID, "Action cancelled.")
	return err
}

// handleSelection resolves a picker callback: commit the chosen value, edit
// the picker message into a confirmation, and clear the pending state.
func (b *Bot) handleSelection(ctx context.Context, evt *Event) error {
	cb := evt.Callback
	if err := b.transport.AnswerCallback(ctx, cb.ID); err != nil {
		if reqCtx, ok := observability.FromContext(ctx); ok {
			reqCtx.Warn("failed to answer callback", slog.String("error", err.Error()))
		}
	}

	kind, ok := kindForToken(cb.Token)
	if !ok {
		return errs.InvalidSelection(cb.Token)
	}

	pending, ok := b.store.Pending(evt.UserID, kind)
	if !ok {
		return errors.Wrap(errs.InvalidSelection(cb.Token), "no pending selection")
	}
	if pending.MessageID != cb.MessageID {
		// A newer picker replaced the one this press came from.
		return errors.Wrap(errs.InvalidSelection(cb.Token), "selection from a superseded picker")
	}

	confirmation := b.commitSelection(evt.UserID, cb.Token)
	b.store.ClearPending(evt.UserID, kind)

	if err := b.transport.EditText(ctx, evt.ChatID, cb.MessageID, confirmation); err != nil {
		return errors.Wrap(err, "failed to confirm selection")
	}
	return nil
}

func kindForToken(token string) (store.SelectionKind, bool) {
	switch token {
	case tokenStandard, tokenHD:
		return store.SelectionQuality, true
	case tokenPNG, tokenJPG:
		return store.SelectionFormat, true
	default:
		return "", false
	}
}

// commitSelection writes the chosen value into the preference store and
// returns the confirmation text echoing its label. Callers have already
// validated the token.
func (b *Bot) commitSelection(userID int64, token string) string {
	switch token {
	case tokenHD:
		b.store.SetQuality(userID, store.QualityHD)
		return fmt.Sprintf("✅ Quality set to: *%s*", store.QualityHD.Label())
	case tokenStandard:
		b.store.SetQuality(userID, store.QualityStandard)
		return fmt.Sprintf("✅ Quality set to: *%s*", store.QualityStandard.Label())
	case tokenPNG:
		b.store.SetFormat(userID, store.FormatPNG)
		return fmt.Sprintf("✅ Format set to: *%s*", store.FormatPNG.Label())
	default: // tokenJPG
		b.store.SetFormat(userID, store.FormatJPG)
		return fmt.Sprintf("✅ Format set to: *%s*", store.FormatJPG.Label())
	}
}
