// Package notify announces the current track as a desktop notification.
package notify

import "time"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string        // icon name or image path
	Timeout    time.Duration // zero leaves it to the server
	ReplacesID uint32        // non-zero updates that notification in place
	Urgency    Urgency
}

// Notifier posts and withdraws desktop notifications.
type Notifier interface {
	// Notify shows n and returns the id the server assigned.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}
