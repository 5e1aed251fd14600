package domain

import "time"

type ProductEventType string

const (
	EventProductCreated   ProductEventType = "created"
	EventProductVoted     ProductEventType = "voted"
	EventProductCommented ProductEventType = "commented"
)

// A ProductEvent is emitted after every successful product write and
// feeds the downstream vote tally.
type ProductEvent struct {
	Type      ProductEventType
	ProductID string
	UserID    string
	Votes     int
	At        time.Time
}
