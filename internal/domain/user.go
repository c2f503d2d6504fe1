// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxUserIDLen = 36

var ErrUserIDEmpty = errors.New("user id empty")

// UserID is the durable identity minted by the upstream auth layer.
// It outlives any single connection.
type UserID string

func ParseUserID(raw string) (UserID, error) {
	if len(raw) == 0 {
		return "", ErrUserIDEmpty
	}
	return UserID(raw), nil
}
