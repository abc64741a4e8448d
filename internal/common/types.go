package common

import (
	"time"
)

// NotificationKind identifies the user-facing event a notification carries.
type NotificationKind string

const (
	PostKind    NotificationKind = "POST"
	CommentKind NotificationKind = "COMMENT"
	LikeKind    NotificationKind = "LIKE"
)

func (k NotificationKind) IsValid() bool {
	return k == PostKind || k == CommentKind || k == LikeKind
}

func (k NotificationKind) String() string {
	return string(k)
}

// Identity is a resolved user as the rest of the pipeline sees it.
// Immutable for the duration of one request.
type Identity struct {
	ID          uint64
	DisplayName string
	Handle      string
	AvatarRef   *string
}

// NotificationEvent is the transient input to the notification builder.
// It is never persisted directly.
type NotificationEvent struct {
	Kind       NotificationKind
	ActorID    uint64
	ResourceID uint64 // forum post the event targets
	Payload    string // comment text for CommentKind, empty otherwise
}

// Frame is the JSON payload pushed to every live connection on delivery.
type Frame struct {
	ResourceID uint64 `json:"resourceId"`
	Message    string `json:"message"`
}

// NotificationResponse is the read-API representation of a stored notification.
type NotificationResponse struct {
	ID              uint64     `json:"id"`
	Kind            string     `json:"kind"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	ActorID         uint64     `json:"actor_id"`
	ActorName       string     `json:"actor_name"`
	ActorAvatarRef  *string    `json:"actor_avatar_ref,omitempty"`
	RecipientID     uint64     `json:"recipient_id"`
	RecipientName   string     `json:"recipient_name"`
	RecipientHandle string     `json:"recipient_handle"`
	ResourceID      uint64     `json:"resource_id"`
	CreatedAt       time.Time  `json:"created_at"`
	VisibleAt       time.Time  `json:"visible_at"`
}
