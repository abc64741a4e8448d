package forum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"culturlens/internal/common"
	"culturlens/internal/dbmongo"
	"culturlens/internal/dbmysql"

	"gorm.io/gorm"
)

// Notifier is the notification pipeline as the forum service sees it.
// Satisfied by notif.Service.
type Notifier interface {
	PostCreated(ctx context.Context, actorID, forumID uint64) error
	CommentAdded(ctx context.Context, actorID, forumID uint64, commentText string) error
	LikeAdded(ctx context.Context, actorID, forumID uint64) error
}

// PhotoStore is the slice of media storage used for post photos.
// Satisfied by dbmongo.MediaStorage.
type PhotoStore interface {
	UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*dbmongo.MediaFile, error)
}

type ForumService interface {
	CreatePost(ctx context.Context, authorID uint64, caption, photoName, photoMime string, photo io.Reader) (*dbmysql.Forum, error)
	AddComment(ctx context.Context, actorID, forumID uint64, text string) (*dbmysql.Comment, error)
	AddLike(ctx context.Context, actorID, forumID uint64) error
	GetForum(ctx context.Context, forumID uint64) (*dbmysql.Forum, []dbmysql.Comment, error)
	ListForums(ctx context.Context, limit, offset int) ([]dbmysql.Forum, error)
}

type forumService struct {
	repo     ForumRepository
	photos   PhotoStore
	notifier Notifier
}

func NewForumService(repo ForumRepository, photos PhotoStore, notifier Notifier) ForumService {
	return &forumService{repo: repo, photos: photos, notifier: notifier}
}

// CreatePost stores the photo (when given), writes the forum row, then runs
// the notification pipeline. A pipeline store failure surfaces to the
// caller; delivery itself happens later and independently.
func (s *forumService) CreatePost(ctx context.Context, authorID uint64, caption, photoName, photoMime string, photo io.Reader) (*dbmysql.Forum, error) {
	if strings.TrimSpace(caption) == "" && photo == nil {
		return nil, errors.New("post must have a caption or a photo")
	}

	forum := &dbmysql.Forum{
		UserID:  authorID,
		Caption: caption,
	}

	if photo != nil {
		if photoName == "" {
			return nil, errors.New("photo name must be specified")
		}
		file, err := s.photos.UploadFile(ctx, photoName, photoMime, authorID, photo)
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		forum.PhotoRef = &file.ID
	}

	if err := s.repo.CreateForum(ctx, forum); err != nil {
		return nil, fmt.Errorf("failed to create forum: %w", err)
	}

	if err := s.notifier.PostCreated(ctx, authorID, forum.ForumID); err != nil {
		return nil, err
	}

	return forum, nil
}

func (s *forumService) AddComment(ctx context.Context, actorID, forumID uint64, text string) (*dbmysql.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("comment text must not be empty")
	}

	if _, err := s.repo.GetForumByID(ctx, forumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", common.ErrForumNotFound, forumID)
		}
		return nil, err
	}

	comment := &dbmysql.Comment{
		ForumID: forumID,
		UserID:  actorID,
		Text:    text,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	if err := s.notifier.CommentAdded(ctx, actorID, forumID, text); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *forumService) AddLike(ctx context.Context, actorID, forumID uint64) error {
	if _, err := s.repo.GetForumByID(ctx, forumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", common.ErrForumNotFound, forumID)
		}
		return err
	}

	like := &dbmysql.Like{
		ForumID: forumID,
		UserID:  actorID,
	}
	if err := s.repo.CreateLike(ctx, like); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}

	return s.notifier.LikeAdded(ctx, actorID, forumID)
}

func (s *forumService) GetForum(ctx context.Context, forumID uint64) (*dbmysql.Forum, []dbmysql.Comment, error) {
	forum, err := s.repo.GetForumByID(ctx, forumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: id %d", common.ErrForumNotFound, forumID)
		}
		return nil, nil, err
	}

	comments, err := s.repo.ListComments(ctx, forumID)
	if err != nil {
		return nil, nil, err
	}

	return forum, comments, nil
}

func (s *forumService) ListForums(ctx context.Context, limit, offset int) ([]dbmysql.Forum, error) {
	return s.repo.ListForums(ctx, limit, offset)
}
