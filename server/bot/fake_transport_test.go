package bot

import (
	"context"
	"os"
	"sync"
)

type sentText struct {
	ChatID    int64
	Text      string
	MessageID int
	Menu      bool
}

type sentPicker struct {
	ChatID    int64
	Prompt    string
	Options   []PickerOption
	MessageID int
}

type sentEdit struct {
	ChatID    int64
	MessageID int
	Text      string
}

type sentDocument struct {
	ChatID   int64
	Filename string
	Data     []byte
	Caption  string
}

// fakeTransport records every outbound call and serves photo downloads from
// an in-memory map.
type fakeTransport struct {
	mu            sync.Mutex
	nextMessageID int

	Texts     []sentText
	Pickers   []sentPicker
	Edits     []sentEdit
	Deleted   []int
	Documents []sentDocument
	Answered  []string

	PhotoData   map[string][]byte
	Downloaded  []string
	DownloadErr error
	SendTextErr error
	DocumentErr error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{PhotoData: make(map[string][]byte)}
}

func (f *fakeTransport) nextID() int {
	f.nextMessageID++
	return f.nextMessageID
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendTextErr != nil {
		return 0, f.SendTextErr
	}
	id := f.nextID()
	f.Texts = append(f.Texts, sentText{ChatID: chatID, Text: text, MessageID: id})
	return id, nil
}

func (f *fakeTransport) SendMenu(_ context.Context, chatID int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID()
	f.Texts = append(f.Texts, sentText{ChatID: chatID, Text: text, MessageID: id, Menu: true})
	return id, nil
}

func (f *fakeTransport) SendPicker(_ context.Context, chatID int64, prompt string, options []PickerOption) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID()
	f.Pickers = append(f.Pickers, sentPicker{ChatID: chatID, Prompt: prompt, Options: options, MessageID: id})
	return id, nil
}

func (f *fakeTransport) EditText(_ context.Context, chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Edits = append(f.Edits, sentEdit{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

func (f *fakeTransport) AnswerCallback(_ context.Context, callbackID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Answered = append(f.Answered, callbackID)
	return nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, messageID)
	return nil
}

func (f *fakeTransport) SendDocument(_ context.Context, chatID int64, filename string, data []byte, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DocumentErr != nil {
		return f.DocumentErr
	}
	f.Documents = append(f.Documents, sentDocument{ChatID: chatID, Filename: filename, Data: data, Caption: caption})
	return nil
}

func (f *fakeTransport) DownloadPhoto(_ context.Context, fileID string, destPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DownloadErr != nil {
		return f.DownloadErr
	}
	data, ok := f.PhotoData[fileID]
	if !ok {
		data = []byte("fake-photo")
	}
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return err
	}
	f.Downloaded = append(f.Downloaded, destPath)
	return nil
}

func (f *fakeTransport) lastText() sentText {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Texts[len(f.Texts)-1]
}
