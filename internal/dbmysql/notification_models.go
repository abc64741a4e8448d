package dbmysql

import (
	"time"

	"culturlens/internal/common"
)

// Notification is the persisted, enriched record for one user-facing event.
// Records are append-only: once created they are never mutated.
type Notification struct {
	ID              uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Kind            string    `gorm:"column:kind;size:20;not null;index" json:"kind"`
	Title           string    `gorm:"column:title;size:255;not null" json:"title"`
	Message         string    `gorm:"column:message;type:text;not null" json:"message"`
	ActorID         uint64    `gorm:"column:actor_id;index;not null" json:"actor_id"`
	ActorName       string    `gorm:"column:actor_name;size:100" json:"actor_name"`
	ActorAvatarRef  *string   `gorm:"column:actor_avatar_ref;size:64" json:"actor_avatar_ref,omitempty"`
	RecipientID     uint64    `gorm:"column:recipient_id;index;not null" json:"recipient_id"`
	RecipientName   string    `gorm:"column:recipient_name;size:100" json:"recipient_name"`
	RecipientHandle string    `gorm:"column:recipient_handle;size:50" json:"recipient_handle"`
	ForumID         uint64    `gorm:"column:forum_id;index;not null" json:"forum_id"`
	CreatedAt       time.Time `gorm:"column:created_at;index" json:"created_at"`
	VisibleAt       time.Time `gorm:"column:visible_at;index" json:"visible_at"`
}

// ToResponse converts a stored record to its read-API representation.
func (n *Notification) ToResponse() *common.NotificationResponse {
	return &common.NotificationResponse{
		ID:              n.ID,
		Kind:            n.Kind,
		Title:           n.Title,
		Message:         n.Message,
		ActorID:         n.ActorID,
		ActorName:       n.ActorName,
		ActorAvatarRef:  n.ActorAvatarRef,
		RecipientID:     n.RecipientID,
		RecipientName:   n.RecipientName,
		RecipientHandle: n.RecipientHandle,
		ResourceID:      n.ForumID,
		CreatedAt:       n.CreatedAt,
		VisibleAt:       n.VisibleAt,
	}
}
