package forum

import (
	"context"

	"culturlens/internal/dbmysql"

	"gorm.io/gorm"
)

type ForumRepository interface {
	CreateForum(ctx context.Context, forum *dbmysql.Forum) error
	GetForumByID(ctx context.Context, forumID uint64) (*dbmysql.Forum, error)
	ListForums(ctx context.Context, limit, offset int) ([]dbmysql.Forum, error)

	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	ListComments(ctx context.Context, forumID uint64) ([]dbmysql.Comment, error)

	CreateLike(ctx context.Context, like *dbmysql.Like) error
}

type forumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) CreateForum(ctx context.Context, forum *dbmysql.Forum) error {
	return r.db.WithContext(ctx).Create(forum).Error
}

func (r *forumRepository) GetForumByID(ctx context.Context, forumID uint64) (*dbmysql.Forum, error) {
	var forum dbmysql.Forum
	err := r.db.WithContext(ctx).First(&forum, "forum_id = ?", forumID).Error
	if err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) ListForums(ctx context.Context, limit, offset int) ([]dbmysql.Forum, error) {
	var forums []dbmysql.Forum

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&forums).Error
	return forums, err
}

func (r *forumRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *forumRepository) ListComments(ctx context.Context, forumID uint64) ([]dbmysql.Comment, error) {
	var comments []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("forum_id = ?", forumID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CreateLike records the like row and bumps the denormalized counter on
// the forum row in one transaction.
func (r *forumRepository) CreateLike(ctx context.Context, like *dbmysql.Like) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&dbmysql.Forum{}).
			Where("forum_id = ?", like.ForumID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
}
