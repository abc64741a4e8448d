package notif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"culturlens/internal/common"
	"culturlens/internal/dbmysql"

	"gorm.io/gorm"
)

// Broadcaster is the live-delivery side of the pipeline, satisfied by
// hub.Hub. SendToRecipient pushes only to the recipient's connections;
// Broadcast reaches every open connection (public feed mode).
type Broadcaster interface {
	Broadcast(payload []byte)
	SendToRecipient(userID uint64, payload []byte)
}

// ForumDirectory resolves a resource id to its row, and thereby its owner.
type ForumDirectory interface {
	GetForumByID(ctx context.Context, forumID uint64) (*dbmysql.Forum, error)
}

// Service runs the notification pipeline: resolve identities, build the
// record, persist it, then hand it to the scheduler for deferred push.
// Store failures surface to the triggering request and skip scheduling;
// anything after the append is fire-and-forget and logged only.
type Service struct {
	resolver  *IdentityResolver
	builder   *Builder
	repo      dbmysql.NotificationRepository
	scheduler *DeliveryScheduler
	hub       Broadcaster
	forums    ForumDirectory
}

func NewService(
	resolver *IdentityResolver,
	builder *Builder,
	repo dbmysql.NotificationRepository,
	scheduler *DeliveryScheduler,
	hub Broadcaster,
	forums ForumDirectory,
) *Service {
	return &Service{
		resolver:  resolver,
		builder:   builder,
		repo:      repo,
		scheduler: scheduler,
		hub:       hub,
		forums:    forums,
	}
}

// PostCreated records and schedules the announcement for a new forum post.
// The post's owner is the actor, so this is delivered as a public-feed
// broadcast rather than a targeted send.
func (s *Service) PostCreated(ctx context.Context, actorID, forumID uint64) error {
	return s.notify(ctx, common.NotificationEvent{
		Kind:       common.PostKind,
		ActorID:    actorID,
		ResourceID: forumID,
	})
}

// CommentAdded notifies the post owner that actorID commented on their post.
func (s *Service) CommentAdded(ctx context.Context, actorID, forumID uint64, commentText string) error {
	return s.notify(ctx, common.NotificationEvent{
		Kind:       common.CommentKind,
		ActorID:    actorID,
		ResourceID: forumID,
		Payload:    commentText,
	})
}

// LikeAdded notifies the post owner that actorID liked their post.
func (s *Service) LikeAdded(ctx context.Context, actorID, forumID uint64) error {
	return s.notify(ctx, common.NotificationEvent{
		Kind:       common.LikeKind,
		ActorID:    actorID,
		ResourceID: forumID,
	})
}

func (s *Service) notify(ctx context.Context, event common.NotificationEvent) error {
	actor, err := s.resolver.ResolveID(ctx, event.ActorID)
	if err != nil {
		return err
	}

	forum, err := s.forums.GetForumByID(ctx, event.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", common.ErrForumNotFound, event.ResourceID)
		}
		return fmt.Errorf("failed to resolve forum %d: %w", event.ResourceID, err)
	}

	recipient, err := s.resolver.ResolveID(ctx, forum.UserID)
	if err != nil {
		return err
	}

	// Self-notifications are suppressed for comments and likes. Post
	// announcements always have actor == owner and go to the public feed.
	if event.Kind != common.PostKind && actor.ID == recipient.ID {
		log.Printf("Suppressing self-notification: kind=%s user=%d forum=%d",
			event.Kind, actor.ID, event.ResourceID)
		return nil
	}

	notification, err := s.builder.Build(event, actor, recipient)
	if err != nil {
		return err
	}

	// The scheduler must not run for a record the store rejected.
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	s.scheduler.Schedule(notification, time.Until(notification.VisibleAt), s.deliver)

	log.Printf("Notification %d created: kind=%s actor=%d recipient=%d forum=%d",
		notification.ID, notification.Kind, notification.ActorID,
		notification.RecipientID, notification.ForumID)
	return nil
}

// deliver runs on the scheduler's timer, after the triggering request has
// already been answered. Failures here can only be logged.
func (s *Service) deliver(n *dbmysql.Notification) {
	payload, err := json.Marshal(common.Frame{
		ResourceID: n.ForumID,
		Message:    n.Message,
	})
	if err != nil {
		log.Printf("Failed to encode frame for notification %d: %v", n.ID, err)
		return
	}

	if n.Kind == common.PostKind.String() {
		s.hub.Broadcast(payload)
	} else {
		s.hub.SendToRecipient(n.RecipientID, payload)
	}

	log.Printf("Notification %d delivered: kind=%s recipient=%d", n.ID, n.Kind, n.RecipientID)
}

// Recent lists the newest visible notifications, optionally filtered by kind.
func (s *Service) Recent(
	ctx context.Context,
	kinds []common.NotificationKind,
	limit int,
) ([]*common.NotificationResponse, error) {
	notifications, err := s.repo.Recent(ctx, kinds, limit)
	if err != nil {
		return nil, err
	}
	return toResponses(notifications), nil
}

// ByID fetches a single notification. Records still inside their
// visibility delay are reported as not found.
func (s *Service) ByID(ctx context.Context, id uint64) (*common.NotificationResponse, error) {
	notification, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return notification.ToResponse(), nil
}

// ForRecipient lists the newest visible notifications addressed to one user.
func (s *Service) ForRecipient(
	ctx context.Context,
	recipientID uint64,
	limit, offset int,
) ([]*common.NotificationResponse, error) {
	notifications, err := s.repo.ByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toResponses(notifications), nil
}

func toResponses(notifications []*dbmysql.Notification) []*common.NotificationResponse {
	responses := make([]*common.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = n.ToResponse()
	}
	return responses
}

// Shutdown stops pending deliveries.
func (s *Service) Shutdown() {
	s.scheduler.Shutdown()
	log.Println("Notification service shutdown complete")
}
