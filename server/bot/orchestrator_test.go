package bot

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mojibrsm/snapclean/plugin/removebg"
	"github.com/mojibrsm/snapclean/store"
)

func photoEvent(userID, chatID int64) *Event {
	return &Event{
		UserID:      userID,
		ChatID:      chatID,
		DisplayName: "Alice",
		Handle:      "alice",
		Photos: []PhotoRef{
			{FileID: "small", Width: 90, Height: 90},
			{FileID: "large", Width: 800, Height: 600},
			{FileID: "medium", Width: 320, Height: 240},
		},
	}
}

func TestProcessingSuccessDefaults(t *testing.T) {
	b, transport, remover, st := newTestBot(t)
	transport.PhotoData["large"] = []byte("raw-photo-bytes")
	remover.Result = []byte("clean-image-bytes")

	b.HandleEvent(context.Background(), photoEvent(1, 10))

	// The largest variant was fetched and forwarded unchanged.
	assert.Equal(t, []byte("raw-photo-bytes"), remover.GotImage)
	assert.Equal(t, removebg.SizeAuto, remover.GotSize)
	assert.Equal(t, removebg.FormatPNG, remover.GotFormat)

	require.Len(t, transport.Documents, 1)
	doc := transport.Documents[0]
	assert.Equal(t, "SnapCleaned.png", doc.Filename)
	assert.Equal(t, []byte("clean-image-bytes"), doc.Data)
	assert.Contains(t, doc.Caption, "Standard")
	assert.Contains(t, doc.Caption, "PNG")

	u, _ := st.GetUser(1)
	assert.Equal(t, int64(1), u.Requests)

	// Processing acknowledgement was sent and dismissed.
	require.Len(t, transport.Texts, 1)
	assert.Equal(t, processingText, transport.Texts[0].Text)
	assert.Equal(t, []int{transport.Texts[0].MessageID}, transport.Deleted)

	// Staged working file is gone.
	require.Len(t, transport.Downloaded, 1)
	_, err := os.Stat(transport.Downloaded[0])
	assert.True(t, os.IsNotExist(err))
}

func TestProcessingUsesStoredPreferences(t *testing.T) {
	b, transport, remover, st := newTestBot(t)
	st.SetQuality(1, store.QualityHD)
	st.SetFormat(1, store.FormatJPG)

	b.HandleEvent(context.Background(), photoEvent(1, 10))

	assert.Equal(t, removebg.Size4K, remover.GotSize)
	assert.Equal(t, removebg.FormatJPG, remover.GotFormat)

	require.Len(t, transport.Documents, 1)
	assert.Equal(t, "SnapCleaned.jpg", transport.Documents[0].Filename)
	assert.Contains(t, transport.Documents[0].Caption, "HD (4K)")
}

func TestProcessingAPIErrorSurfacedOnce(t *testing.T) {
	b, transport, remover, st := newTestBot(t)
	remover.Err = &removebg.APIError{StatusCode: http.StatusPaymentRequired, Reason: "Insufficient credits"}

	b.HandleEvent(context.Background(), photoEvent(1, 10))

	assert.Empty(t, transport.Documents)

	// Acknowledgement plus exactly one error message.
	require.Len(t, transport.Texts, 2)
	assert.Contains(t, transport.Texts[1].Text, "Insufficient credits")

	// Failed attempts still count.
	u, _ := st.GetUser(1)
	assert.Equal(t, int64(1), u.Requests)

	// Cleanup ran: staged file removed, acknowledgement dismissed.
	require.Len(t, transport.Downloaded, 1)
	_, err := os.Stat(transport.Downloaded[0])
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, []int{transport.Texts[0].MessageID}, transport.Deleted)
}

func TestProcessingFetchFailure(t *testing.T) {
	b, transport, _, st := newTestBot(t)
	transport.DownloadErr = errors.New("file gone")

	b.HandleEvent(context.Background(), photoEvent(1, 10))

	assert.Empty(t, transport.Documents)
	require.Len(t, transport.Texts, 2)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", transport.Texts[1].Text)

	u, _ := st.GetUser(1)
	assert.Equal(t, int64(1), u.Requests)

	// Acknowledgement still dismissed even though nothing was staged.
	assert.Equal(t, []int{transport.Texts[0].MessageID}, transport.Deleted)
}

func TestProcessingDeliveryFailure(t *testing.T) {
	b, transport, _, _ := newTestBot(t)
	transport.DocumentErr = errors.New("network down")

	b.HandleEvent(context.Background(), photoEvent(1, 10))

	require.Len(t, transport.Texts, 2)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", transport.Texts[1].Text)

	require.Len(t, transport.Downloaded, 1)
	_, err := os.Stat(transport.Downloaded[0])
	assert.True(t, os.IsNotExist(err))
}

func TestProcessingProceedsWithoutAcknowledgement(t *testing.T) {
	b, transport, _, _ := newTestBot(t)
	transport.SendTextErr = errors.New("flood limit")

	b.HandleEvent(context.Background(), photoEvent(1, 10))

	require.Len(t, transport.Documents, 1)
	assert.Empty(t, transport.Deleted)
}

func TestRepeatedAttemptsGetDistinctStagedPaths(t *testing.T) {
	b, transport, _, _ := newTestBot(t)

	b.HandleEvent(context.Background(), photoEvent(1, 10))
	b.HandleEvent(context.Background(), photoEvent(1, 10))

	require.Len(t, transport.Downloaded, 2)
	assert.NotEqual(t, transport.Downloaded[0], transport.Downloaded[1])
}

// End to end through the real remove.bg client against a stub server,
// covering the malformed error payload fallback across the whole stack.
func TestProcessingWithRealClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("final-bytes"))
		}))
		defer srv.Close()

		transport := newFakeTransport()
		st := store.New(0)
		client := removebg.NewClient(&removebg.Config{APIKey: "k", BaseURL: srv.URL, Timeout: 5 * time.Second, RequestsPerMinute: 6000})
		b := New(testProfile(t), st, transport, client, slog.New(slog.NewTextHandler(io.Discard, nil)))

		b.HandleEvent(context.Background(), photoEvent(1, 10))

		require.Len(t, transport.Documents, 1)
		assert.Equal(t, []byte("final-bytes"), transport.Documents[0].Data)
	})

	t.Run("malformed error payload falls back", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("not json at all"))
		}))
		defer srv.Close()

		transport := newFakeTransport()
		st := store.New(0)
		client := removebg.NewClient(&removebg.Config{APIKey: "k", BaseURL: srv.URL, Timeout: 5 * time.Second, RequestsPerMinute: 6000})
		b := New(testProfile(t), st, transport, client, slog.New(slog.NewTextHandler(io.Discard, nil)))

		b.HandleEvent(context.Background(), photoEvent(1, 10))

		assert.Empty(t, transport.Documents)
		require.Len(t, transport.Texts, 2)
		assert.Contains(t, transport.Texts[1].Text, removebg.FallbackReason)

		u, _ := st.GetUser(1)
		assert.Equal(t, int64(1), u.Requests)
	})
}
