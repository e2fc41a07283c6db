package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFromUpdateMessage(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 5,
			From:      &tgbotapi.User{ID: 42, FirstName: "Alice", UserName: "alice"},
			Chat:      &tgbotapi.Chat{ID: 100},
			Text:      "/quality",
		},
	}

	evt := eventFromUpdate(update)
	require.NotNil(t, evt)
	assert.Equal(t, int64(42), evt.UserID)
	assert.Equal(t, int64(100), evt.ChatID)
	assert.Equal(t, "Alice", evt.DisplayName)
	assert.Equal(t, "alice", evt.Handle)
	assert.Equal(t, "/quality", evt.Text)
	assert.Nil(t, evt.Callback)
	assert.Empty(t, evt.Photos)
}

func TestEventFromUpdatePhoto(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 42},
			Chat: &tgbotapi.Chat{ID: 100},
			Photo: []tgbotapi.PhotoSize{
				{FileID: "s", Width: 90, Height: 90},
				{FileID: "l", Width: 800, Height: 600},
			},
		},
	}

	evt := eventFromUpdate(update)
	require.NotNil(t, evt)
	require.Len(t, evt.Photos, 2)

	largest, ok := evt.LargestPhoto()
	require.True(t, ok)
	assert.Equal(t, "l", largest.FileID)
}

func TestEventFromUpdateCallback(t *testing.T) {
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-9",
			From: &tgbotapi.User{ID: 42, FirstName: "Alice"},
			Data: "hd",
			Message: &tgbotapi.Message{
				MessageID: 77,
				Chat:      &tgbotapi.Chat{ID: 100},
			},
		},
	}

	evt := eventFromUpdate(update)
	require.NotNil(t, evt)
	require.NotNil(t, evt.Callback)
	assert.Equal(t, "cb-9", evt.Callback.ID)
	assert.Equal(t, "hd", evt.Callback.Token)
	assert.Equal(t, 77, evt.Callback.MessageID)
	assert.Equal(t, int64(42), evt.UserID)
	assert.Equal(t, int64(100), evt.ChatID)
}

func TestEventFromUpdateIgnoresOthers(t *testing.T) {
	assert.Nil(t, eventFromUpdate(tgbotapi.Update{}))
	assert.Nil(t, eventFromUpdate(tgbotapi.Update{EditedMessage: &tgbotapi.Message{}}))
}
