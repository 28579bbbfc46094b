// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/llehouerou/eko/internal/player"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogLoad   Op = "load catalog"
	OpCatalogReload Op = "reload catalog"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// State operations
	OpStateLoad  Op = "restore playback state"
	OpStateSave  Op = "save playback state"
	OpStateReset Op = "reset playback state"

	// Share
	OpShareLink Op = "build share link"

	// Video surface
	OpVideoListen Op = "start video bridge"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Messages shown for surfaced playback errors.
const (
	MsgInteractionRequired = "Press space to start playback"
	MsgPlaybackFailed      = "Playback failed, check your connection"
	MsgNotEntitled         = "This playlist requires a subscription"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Playback returns the message for a surfaced playback error kind.
// Aborted requests are never shown and return an empty string.
func Playback(kind player.Kind) string {
	switch kind {
	case player.KindAborted:
		return ""
	case player.KindInteractionRequired:
		return MsgInteractionRequired
	default:
		return MsgPlaybackFailed
	}
}
