//go:build windows

// Package stderr provides a no-op implementation for Windows, where the
// audio backend does not write to fd 2.
package stderr

import (
	"os"

	"github.com/rs/zerolog"
)

// Messages never receives on Windows.
var Messages = make(chan string)

// Start is a no-op on Windows.
func Start(zerolog.Logger) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
