// Package telegram adapts the Telegram Bot API to the bot core's transport
// contract and feeds inbound updates into the dispatcher.
package telegram

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/mojibrsm/snapclean/server/bot"
)

const updateTimeoutSeconds = 30

// mainMenu is the persistent reply keyboard shown under the chat input.
var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("/quality"),
		tgbotapi.NewKeyboardButton("/format"),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("/help"),
		tgbotapi.NewKeyboardButton("/contact"),
	),
)

// EventHandler consumes normalized inbound events. *bot.Bot is the
// production implementation.
type EventHandler interface {
	HandleEvent(ctx context.Context, evt *bot.Event)
}

// Adapter implements bot.Transport over the Telegram Bot API and runs the
// long-polling loop.
type Adapter struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAdapter authenticates against the Telegram Bot API.
func NewAdapter(token string, logger *slog.Logger) (*Adapter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to authenticate bot")
	}
	logger.Info("authorized on telegram", "bot", api.Self.UserName)

	return &Adapter{
		api:        api,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}, nil
}

// Run consumes updates until ctx is cancelled. Each update is handled in its
// own goroutine; ordering across users is the platform's concern, and the
// core's state is safe under concurrent events.
func (a *Adapter) Run(ctx context.Context, handler EventHandler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSeconds
	updates := a.api.GetUpdatesChan(cfg)

	a.logger.Info("telegram poller started")
	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			a.logger.Info("telegram poller stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			evt := eventFromUpdate(update)
			if evt == nil {
				continue
			}
			go handler.HandleEvent(ctx, evt)
		}
	}
}

// eventFromUpdate normalizes a Telegram update into a core event. Updates the
// bot does not care about yield nil.
func eventFromUpdate(update tgbotapi.Update) *bot.Event {
	if cb := update.CallbackQuery; cb != nil && cb.Message != nil {
		return &bot.Event{
			UserID:      cb.From.ID,
			ChatID:      cb.Message.Chat.ID,
			DisplayName: cb.From.FirstName,
			Handle:      cb.From.UserName,
			Callback: &bot.Callback{
				ID:        cb.ID,
				Token:     cb.Data,
				MessageID: cb.Message.MessageID,
			},
		}
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}
	evt := &bot.Event{
		UserID:      msg.From.ID,
		ChatID:      msg.Chat.ID,
		DisplayName: msg.From.FirstName,
		Handle:      msg.From.UserName,
		Text:        msg.Text,
	}
	for _, p := range msg.Photo {
		evt.Photos = append(evt.Photos, bot.PhotoRef{
			FileID: p.FileID,
			Width:  p.Width,
			Height: p.Height,
		})
	}
	return evt
}

func (a *Adapter) SendText(_ context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := a.api.Send(msg)
	if err != nil {
		return 0, errors.Wrap(err, "send message")
	}
	return sent.MessageID, nil
}

func (a *Adapter) SendMenu(_ context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = mainMenu
	sent, err := a.api.Send(msg)
	if err != nil {
		return 0, errors.Wrap(err, "send menu message")
	}
	return sent.MessageID, nil
}

func (a *Adapter) SendPicker(_ context.Context, chatID int64, prompt string, options []bot.PickerOption) (int, error) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Token)))
	}

	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	sent, err := a.api.Send(msg)
	if err != nil {
		return 0, errors.Wrap(err, "send picker")
	}
	return sent.MessageID, nil
}

func (a *Adapter) EditText(_ context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := a.api.Send(edit); err != nil {
		return errors.Wrap(err, "edit message")
	}
	return nil
}

func (a *Adapter) AnswerCallback(_ context.Context, callbackID string) error {
	if _, err := a.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return errors.Wrap(err, "answer callback")
	}
	return nil
}

func (a *Adapter) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := a.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return errors.Wrap(err, "delete message")
	}
	return nil
}

func (a *Adapter) SendDocument(_ context.Context, chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	if _, err := a.api.Send(doc); err != nil {
		return errors.Wrap(err, "send document")
	}
	return nil
}

// DownloadPhoto resolves the file's direct URL and streams it to destPath.
func (a *Adapter) DownloadPhoto(ctx context.Context, fileID string, destPath string) error {
	url, err := a.api.GetFileDirectURL(fileID)
	if err != nil {
		return errors.Wrap(err, "resolve file url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "create download request")
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "download file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errors.Wrap(err, "create staged file")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.Wrap(err, "write staged file")
	}
	return nil
}
