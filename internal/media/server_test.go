package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"culturlens/internal/dbmongo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*dbmongo.MediaFile), args.Error(2)
}

// trackingReadCloser records whether the stream was closed after serving.
type trackingReadCloser struct {
	io.Reader
	closed bool
}

func (t *trackingReadCloser) Close() error {
	t.closed = true
	return nil
}

func newMediaRouter(store FileStore) *mux.Router {
	router := mux.NewRouter()
	NewHandler(store).RegisterRoutes(router)
	return router
}

func TestServeFile(t *testing.T) {
	stream := &trackingReadCloser{Reader: strings.NewReader("png-bytes")}
	store := new(MockFileStore)
	store.On("DownloadFile", mock.Anything, "file-abc").Return(stream, &dbmongo.MediaFile{
		ID:       "file-abc",
		Filename: "cat.png",
		Size:     9,
	}, nil)

	req := httptest.NewRequest("GET", "/media/file-abc", nil)
	rec := httptest.NewRecorder()
	newMediaRouter(store).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	// The download stream must be closed once the response is written.
	assert.True(t, stream.closed)
	store.AssertExpectations(t)
}

func TestServeFile_NotFound(t *testing.T) {
	store := new(MockFileStore)
	store.On("DownloadFile", mock.Anything, "missing").Return(nil, nil, errors.New("download failed"))

	req := httptest.NewRequest("GET", "/media/missing", nil)
	rec := httptest.NewRecorder()
	newMediaRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentTypeFor("photo.JPG"))
	assert.Equal(t, "image/webp", contentTypeFor("photo.webp"))
	assert.Equal(t, "video/mp4", contentTypeFor("clip.mp4"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("unknown.bin"))
}
