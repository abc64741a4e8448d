package notif

import (
	"fmt"
	"time"

	"culturlens/internal/common"
	"culturlens/internal/dbmysql"
)

// Builder produces a fully-populated notification record from an event and
// the resolved actor/recipient identities. Deterministic given a clock; the
// only state it carries is configuration.
type Builder struct {
	delay      time.Duration
	previewLen int
	now        func() time.Time
}

func NewBuilder(delay time.Duration, previewLen int) *Builder {
	if previewLen <= 0 {
		previewLen = 140
	}
	return &Builder{
		delay:      delay,
		previewLen: previewLen,
		now:        time.Now,
	}
}

// Build validates the event and fills in the kind-specific title and
// message. VisibleAt is CreatedAt plus the configured delivery delay.
func (b *Builder) Build(
	event common.NotificationEvent,
	actor, recipient common.Identity,
) (*dbmysql.Notification, error) {
	if !event.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", common.ErrInvalidEvent, string(event.Kind))
	}
	if actor.ID == 0 {
		return nil, fmt.Errorf("%w: missing actor", common.ErrInvalidEvent)
	}
	if recipient.ID == 0 {
		return nil, fmt.Errorf("%w: missing recipient", common.ErrInvalidEvent)
	}
	if event.ResourceID == 0 {
		return nil, fmt.Errorf("%w: missing resource id", common.ErrInvalidEvent)
	}

	title, message := b.compose(event, actor)

	createdAt := b.now()
	return &dbmysql.Notification{
		Kind:            event.Kind.String(),
		Title:           title,
		Message:         message,
		ActorID:         actor.ID,
		ActorName:       actor.DisplayName,
		ActorAvatarRef:  actor.AvatarRef,
		RecipientID:     recipient.ID,
		RecipientName:   recipient.DisplayName,
		RecipientHandle: recipient.Handle,
		ForumID:         event.ResourceID,
		CreatedAt:       createdAt,
		VisibleAt:       createdAt.Add(b.delay),
	}, nil
}

func (b *Builder) compose(event common.NotificationEvent, actor common.Identity) (string, string) {
	switch event.Kind {
	case common.LikeKind:
		return "New like", fmt.Sprintf("%s liked your post", actor.DisplayName)
	case common.CommentKind:
		if event.Payload == "" {
			return "New comment", fmt.Sprintf("%s commented on your post", actor.DisplayName)
		}
		return "New comment", fmt.Sprintf("%s commented on your post: %q",
			actor.DisplayName, b.truncate(event.Payload))
	default: // PostKind, validated above
		return "New post", fmt.Sprintf("%s published a new post", actor.DisplayName)
	}
}

func (b *Builder) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= b.previewLen {
		return text
	}
	return string(runes[:b.previewLen]) + "..."
}
