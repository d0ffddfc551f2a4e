package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!  Meetup", "hello-world-meetup"},
		{"  GopherCon 2025  ", "gophercon-2025"},
		{"React_Summit -- Berlin", "react-summit-berlin"},
		{"---Leading and trailing---", "leading-and-trailing"},
		{"C++ & Rust: Systems Day", "c-rust-systems-day"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestGenerateSlug_Idempotent(t *testing.T) {
	titles := []string{
		"Hello, World!  Meetup",
		"node.js__conf___2025",
		"  - spaced - out - ",
		"Café Night",
	}
	for _, title := range titles {
		once := GenerateSlug(title)
		assert.Equal(t, once, GenerateSlug(once), "title %q", title)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "January 5, 2025", want: "2025-01-05"},
		{input: "2025-01-05", want: "2025-01-05"},
		{input: "  2025-11-30 ", want: "2025-11-30"},
		{input: "2025-03-01T10:00:00Z", want: "2025-03-01"},
		{input: "Jan 15, 2026", want: "2026-01-15"},
		{input: "03/07/2025", want: "2025-03-07"},
		{input: "1/5/2025", want: "2025-01-05"},
		{input: "2025-1-5", want: "2025-01-05"},
		{input: "not-a-date", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDate))
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3:30 PM", "15:30"},
		{"3:30 pm", "15:30"},
		{"9:05", "09:05"},
		{"09:05", "09:05"},
		{"18:45", "18:45"},
		{"12:00 AM", "00:00"},
		{"12:30 AM", "00:30"},
		{"12:05 am", "00:05"},
		{"12:30 PM", "12:30"},
		{"11:59 PM", "23:59"},
		{"00:15", "00:15"},
		{"7PM", "19:00"},
		{"doors open 9:30 sharp", "09:30"},
		{"  noon  ", "noon"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.input))
		})
	}
}

func TestIsClockTime(t *testing.T) {
	assert.True(t, IsClockTime("00:00"))
	assert.True(t, IsClockTime("23:59"))
	assert.False(t, IsClockTime("24:00"))
	assert.False(t, IsClockTime("9:05"))
	assert.False(t, IsClockTime("noon"))
}
