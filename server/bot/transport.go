package bot

import "context"

// PickerOption is one selectable entry of an inline-keyboard picker.
type PickerOption struct {
	Label string // shown to the user
	Token string // carried back in the selection callback
}

// Transport is the outbound boundary to the chat platform. The bot core only
// ever talks to the platform through this interface; the Telegram adapter is
// the production implementation.
type Transport interface {
	// SendText sends a plain text message and returns its message id.
	SendText(ctx context.Context, chatID int64, text string) (int, error)

	// SendMenu sends a text message together with the persistent reply-keyboard menu.
	SendMenu(ctx context.Context, chatID int64, text string) (int, error)

	// SendPicker presents an inline keyboard with the given options and
	// returns the picker message id.
	SendPicker(ctx context.Context, chatID int64, prompt string, options []PickerOption) (int, error)

	// EditText replaces the text of an existing message, dropping its keyboard.
	EditText(ctx context.Context, chatID int64, messageID int, text string) error

	// AnswerCallback acknowledges a callback query so the client stops its spinner.
	AnswerCallback(ctx context.Context, callbackID string) error

	// DeleteMessage removes a previously sent message.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// SendDocument delivers a binary payload as a downloadable file.
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error

	// DownloadPhoto fetches the referenced file into destPath.
	DownloadPhoto(ctx context.Context, fileID string, destPath string) error
}
