package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPreferencesDefaults(t *testing.T) {
	s := New(0)

	p := s.GetPreferences(123)
	assert.Equal(t, QualityStandard, p.Quality)
	assert.Equal(t, FormatPNG, p.Format)
}

func TestSetQualityLeavesFormatUntouched(t *testing.T) {
	s := New(0)

	s.SetQuality(1, QualityHD)
	p := s.GetPreferences(1)
	assert.Equal(t, QualityHD, p.Quality)
	assert.Equal(t, FormatPNG, p.Format)

	s.SetQuality(1, QualityStandard)
	p = s.GetPreferences(1)
	assert.Equal(t, QualityStandard, p.Quality)
	assert.Equal(t, FormatPNG, p.Format)
}

func TestSetFormatLeavesQualityUntouched(t *testing.T) {
	s := New(0)

	s.SetQuality(1, QualityHD)
	s.SetFormat(1, FormatJPG)

	p := s.GetPreferences(1)
	assert.Equal(t, QualityHD, p.Quality)
	assert.Equal(t, FormatJPG, p.Format)
}

func TestPreferencesIsolatedPerUser(t *testing.T) {
	s := New(0)

	s.SetFormat(1, FormatJPG)

	assert.Equal(t, FormatJPG, s.GetPreferences(1).Format)
	assert.Equal(t, FormatPNG, s.GetPreferences(2).Format)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Standard", QualityStandard.Label())
	assert.Equal(t, "HD (4K)", QualityHD.Label())
	assert.Equal(t, "PNG", FormatPNG.Label())
	assert.Equal(t, "JPG", FormatJPG.Label())
	assert.Equal(t, "png", FormatPNG.Extension())
	assert.Equal(t, "jpg", FormatJPG.Extension())
}
