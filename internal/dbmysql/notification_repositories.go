package dbmysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"culturlens/internal/common"

	"gorm.io/gorm"
)

// NotificationRepository is the durable, append-only store contract for
// notifications. Reads return only records whose visible_at has passed,
// ordered most-recent-first (created_at DESC, ties broken by id DESC).
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	Recent(ctx context.Context, kinds []common.NotificationKind, limit int) ([]*Notification, error)
	ByRecipient(ctx context.Context, recipientID uint64, limit, offset int) ([]*Notification, error)
	ByID(ctx context.Context, id uint64) (*Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *notificationRepository) ByID(ctx context.Context, id uint64) (*Notification, error) {
	var notification Notification

	err := r.db.WithContext(ctx).
		Where("id = ? AND visible_at <= ?", id, time.Now()).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", common.ErrNotificationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &notification, nil
}

func (r *notificationRepository) Recent(
	ctx context.Context,
	kinds []common.NotificationKind,
	limit int,
) ([]*Notification, error) {
	var notifications []*Notification

	query := r.db.WithContext(ctx).
		Where("visible_at <= ?", time.Now()).
		Order("created_at DESC, id DESC")

	if len(kinds) > 0 {
		values := make([]string, len(kinds))
		for i, k := range kinds {
			values[i] = k.String()
		}
		query = query.Where("kind IN ?", values)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) ByRecipient(
	ctx context.Context,
	recipientID uint64,
	limit, offset int,
) ([]*Notification, error) {
	var notifications []*Notification

	query := r.db.WithContext(ctx).
		Where("recipient_id = ? AND visible_at <= ?", recipientID, time.Now()).
		Order("created_at DESC, id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipient notifications: %w", err)
	}

	return notifications, nil
}
