package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoomID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    RoomID
		wantErr error
	}{
		{"plain id", "math-101", "math-101", nil},
		{"empty", "", "", ErrRoomIDEmpty},
		{"at limit", strings.Repeat("a", MaxRoomIDLen), RoomID(strings.Repeat("a", MaxRoomIDLen)), nil},
		{"over limit", strings.Repeat("a", MaxRoomIDLen+1), "", ErrRoomIDTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRoomID(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUserID(t *testing.T) {
	_, err := ParseUserID("")
	assert.ErrorIs(t, err, ErrUserIDEmpty)

	uid, err := ParseUserID("u-42")
	assert.NoError(t, err)
	assert.Equal(t, UserID("u-42"), uid)
}
