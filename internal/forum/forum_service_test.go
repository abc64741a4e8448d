package forum

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"culturlens/internal/common"
	"culturlens/internal/dbmongo"
	"culturlens/internal/dbmysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) CreateForum(ctx context.Context, forum *dbmysql.Forum) error {
	args := m.Called(ctx, forum)
	return args.Error(0)
}

func (m *MockForumRepository) GetForumByID(ctx context.Context, forumID uint64) (*dbmysql.Forum, error) {
	args := m.Called(ctx, forumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.Forum), args.Error(1)
}

func (m *MockForumRepository) ListForums(ctx context.Context, limit, offset int) ([]dbmysql.Forum, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dbmysql.Forum), args.Error(1)
}

func (m *MockForumRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockForumRepository) ListComments(ctx context.Context, forumID uint64) ([]dbmysql.Comment, error) {
	args := m.Called(ctx, forumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dbmysql.Comment), args.Error(1)
}

func (m *MockForumRepository) CreateLike(ctx context.Context, like *dbmysql.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PostCreated(ctx context.Context, actorID, forumID uint64) error {
	args := m.Called(ctx, actorID, forumID)
	return args.Error(0)
}

func (m *MockNotifier) CommentAdded(ctx context.Context, actorID, forumID uint64, commentText string) error {
	args := m.Called(ctx, actorID, forumID, commentText)
	return args.Error(0)
}

func (m *MockNotifier) LikeAdded(ctx context.Context, actorID, forumID uint64) error {
	args := m.Called(ctx, actorID, forumID)
	return args.Error(0)
}

type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*dbmongo.MediaFile, error) {
	args := m.Called(ctx, filename, mimeType, uploaderID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmongo.MediaFile), args.Error(1)
}

func TestCreatePost(t *testing.T) {
	repo := new(MockForumRepository)
	notifier := new(MockNotifier)
	photos := new(MockPhotoStore)

	repo.On("CreateForum", mock.Anything, mock.AnythingOfType("*dbmysql.Forum")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*dbmysql.Forum).ForumID = 7
		}).Return(nil)
	notifier.On("PostCreated", mock.Anything, uint64(1), uint64(7)).Return(nil)

	svc := NewForumService(repo, photos, notifier)

	forum, err := svc.CreatePost(context.Background(), 1, "hello world", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), forum.ForumID)
	assert.Equal(t, "hello world", forum.Caption)
	assert.Nil(t, forum.PhotoRef)

	photos.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestCreatePost_WithPhoto(t *testing.T) {
	repo := new(MockForumRepository)
	notifier := new(MockNotifier)
	photos := new(MockPhotoStore)

	photos.On("UploadFile", mock.Anything, "cat.png", "image/png", uint64(1), mock.Anything).
		Return(&dbmongo.MediaFile{ID: "file-abc", Filename: "cat.png"}, nil)
	repo.On("CreateForum", mock.Anything, mock.AnythingOfType("*dbmysql.Forum")).Return(nil)
	notifier.On("PostCreated", mock.Anything, uint64(1), mock.Anything).Return(nil)

	svc := NewForumService(repo, photos, notifier)

	forum, err := svc.CreatePost(context.Background(), 1, "look at my cat", "cat.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotNil(t, forum.PhotoRef)
	assert.Equal(t, "file-abc", *forum.PhotoRef)
}

func TestCreatePost_Empty(t *testing.T) {
	svc := NewForumService(new(MockForumRepository), new(MockPhotoStore), new(MockNotifier))

	_, err := svc.CreatePost(context.Background(), 1, "   ", "", "", nil)
	assert.Error(t, err)
}

func TestCreatePost_PhotoUploadFails(t *testing.T) {
	repo := new(MockForumRepository)
	photos := new(MockPhotoStore)
	photos.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("gridfs unavailable"))

	svc := NewForumService(repo, photos, new(MockNotifier))

	_, err := svc.CreatePost(context.Background(), 1, "caption", "cat.png", "image/png", strings.NewReader("x"))
	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateForum", mock.Anything, mock.Anything)
}

func TestCreatePost_NotifierStoreFailureSurfaces(t *testing.T) {
	repo := new(MockForumRepository)
	notifier := new(MockNotifier)

	repo.On("CreateForum", mock.Anything, mock.Anything).Return(nil)
	notifier.On("PostCreated", mock.Anything, mock.Anything, mock.Anything).
		Return(common.ErrStoreUnavailable)

	svc := NewForumService(repo, new(MockPhotoStore), notifier)

	_, err := svc.CreatePost(context.Background(), 1, "caption", "", "", nil)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestAddComment(t *testing.T) {
	repo := new(MockForumRepository)
	notifier := new(MockNotifier)

	repo.On("GetForumByID", mock.Anything, uint64(7)).Return(&dbmysql.Forum{ForumID: 7, UserID: 2}, nil)
	repo.On("CreateComment", mock.Anything, mock.AnythingOfType("*dbmysql.Comment")).Return(nil)
	notifier.On("CommentAdded", mock.Anything, uint64(1), uint64(7), "nice!").Return(nil)

	svc := NewForumService(repo, new(MockPhotoStore), notifier)

	comment, err := svc.AddComment(context.Background(), 1, 7, "nice!")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), comment.ForumID)
	assert.Equal(t, uint64(1), comment.UserID)
	assert.Equal(t, "nice!", comment.Text)
	notifier.AssertExpectations(t)
}

func TestAddComment_EmptyText(t *testing.T) {
	svc := NewForumService(new(MockForumRepository), new(MockPhotoStore), new(MockNotifier))

	_, err := svc.AddComment(context.Background(), 1, 7, "   ")
	assert.Error(t, err)
}

func TestAddComment_ForumNotFound(t *testing.T) {
	repo := new(MockForumRepository)
	repo.On("GetForumByID", mock.Anything, uint64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewForumService(repo, new(MockPhotoStore), new(MockNotifier))

	_, err := svc.AddComment(context.Background(), 1, 99, "hello?")
	assert.ErrorIs(t, err, common.ErrForumNotFound)
	repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
}

func TestAddLike(t *testing.T) {
	repo := new(MockForumRepository)
	notifier := new(MockNotifier)

	repo.On("GetForumByID", mock.Anything, uint64(7)).Return(&dbmysql.Forum{ForumID: 7, UserID: 2}, nil)
	repo.On("CreateLike", mock.Anything, mock.AnythingOfType("*dbmysql.Like")).Return(nil)
	notifier.On("LikeAdded", mock.Anything, uint64(1), uint64(7)).Return(nil)

	svc := NewForumService(repo, new(MockPhotoStore), notifier)

	err := svc.AddLike(context.Background(), 1, 7)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestAddLike_ForumNotFound(t *testing.T) {
	repo := new(MockForumRepository)
	repo.On("GetForumByID", mock.Anything, uint64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewForumService(repo, new(MockPhotoStore), new(MockNotifier))

	err := svc.AddLike(context.Background(), 1, 99)
	assert.ErrorIs(t, err, common.ErrForumNotFound)
	repo.AssertNotCalled(t, "CreateLike", mock.Anything, mock.Anything)
}

func TestGetForum(t *testing.T) {
	repo := new(MockForumRepository)
	repo.On("GetForumByID", mock.Anything, uint64(7)).Return(&dbmysql.Forum{ForumID: 7, Caption: "hello"}, nil)
	repo.On("ListComments", mock.Anything, uint64(7)).Return([]dbmysql.Comment{
		{CommentID: 1, ForumID: 7, Text: "first"},
		{CommentID: 2, ForumID: 7, Text: "second"},
	}, nil)

	svc := NewForumService(repo, new(MockPhotoStore), new(MockNotifier))

	forum, comments, err := svc.GetForum(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "hello", forum.Caption)
	assert.Len(t, comments, 2)
}

func TestGetForum_NotFound(t *testing.T) {
	repo := new(MockForumRepository)
	repo.On("GetForumByID", mock.Anything, uint64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewForumService(repo, new(MockPhotoStore), new(MockNotifier))

	_, _, err := svc.GetForum(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrForumNotFound)
}
