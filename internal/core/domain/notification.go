package domain

import "time"

// NotificationKind names an outbound notification template.
type NotificationKind string

const NotificationProviderRegistered NotificationKind = "provider_registered"

// Notification is a fire-and-forget message about an actor.
type Notification struct {
	Kind         NotificationKind
	ActorID      string
	Email        string
	Name         string
	BusinessName string
	BusinessType BusinessType
	City         string
	CreatedAt    time.Time
}

// Page is a generic pagination result.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NormalizePage clamps page/limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit, TotalPages: pages}
}
