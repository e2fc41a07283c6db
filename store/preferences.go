package store

import "strings"

// Quality is the output quality a user selected for processed images.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHD       Quality = "hd"
)

// Label returns the human-readable form used in confirmations and captions.
func (q Quality) Label() string {
	if q == QualityHD {
		return "HD (4K)"
	}
	return "Standard"
}

// Format is the output container a user selected for processed images.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// Label returns the human-readable form used in confirmations and captions.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// Extension returns the file extension for delivered documents.
func (f Format) Extension() string {
	return string(f)
}

// Preferences holds a user's output settings. The zero value is not used;
// absent entries mean DefaultPreferences.
type Preferences struct {
	Quality Quality
	Format  Format
}

// DefaultPreferences is what every user gets before any selection.
func DefaultPreferences() Preferences {
	return Preferences{Quality: QualityStandard, Format: FormatPNG}
}

// GetPreferences returns the stored preferences for id, or the defaults if
// none were recorded. It never fails.
func (s *Store) GetPreferences(id int64) Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.prefs[id]; ok {
		return *p
	}
	return DefaultPreferences()
}

// SetQuality overwrites the quality for id, creating the entry with default
// format if absent.
func (s *Store) SetQuality(id int64, q Quality) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[id]
	if !ok {
		def := DefaultPreferences()
		p = &def
		s.prefs[id] = p
	}
	p.Quality = q
}

// SetFormat overwrites the format for id, creating the entry with default
// quality if absent.
func (s *Store) SetFormat(id int64, f Format) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[id]
	if !ok {
		def := DefaultPreferences()
		p = &def
		s.prefs[id] = p
	}
	p.Format = f
}
