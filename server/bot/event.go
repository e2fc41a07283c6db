package bot

// PhotoRef references one resolution variant of a submitted photo on the
// transport's file storage.
type PhotoRef struct {
	FileID string
	Width  int
	Height int
}

// Callback is a selection response from an inline-keyboard picker.
type Callback struct {
	ID        string // transport callback id, acknowledged before handling
	Token     string
	MessageID int // the picker message the user pressed
}

// Event is one inbound transport event, normalized by the adapter. Exactly
// one of Text, Photos, or Callback is meaningful per event.
type Event struct {
	UserID      int64
	ChatID      int64
	DisplayName string
	Handle      string

	Text     string
	Photos   []PhotoRef
	Callback *Callback
}

// LargestPhoto returns the highest-resolution variant of the submitted photo.
func (e *Event) LargestPhoto() (PhotoRef, bool) {
	if len(e.Photos) == 0 {
		return PhotoRef{}, false
	}
	best := e.Photos[0]
	for _, p := range e.Photos[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best, true
}
