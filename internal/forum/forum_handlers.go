package forum

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"culturlens/internal/common"
	"culturlens/internal/dbmysql"

	"github.com/gorilla/mux"
)

const maxPhotoSize = 10 << 20 // 10 MB

type Handler struct {
	forumService ForumService
}

func NewHandler(forumService ForumService) *Handler {
	return &Handler{forumService: forumService}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/forums", h.ListForums).Methods("GET")
	router.HandleFunc("/forums/{id:[0-9]+}", h.GetForum).Methods("GET")

	authed := router.NewRoute().Subrouter()
	authed.Use(common.AuthMiddleware)
	authed.HandleFunc("/forums", h.CreatePost).Methods("POST")
	authed.HandleFunc("/forums/{id:[0-9]+}/comments", h.AddComment).Methods("POST")
	authed.HandleFunc("/forums/{id:[0-9]+}/likes", h.AddLike).Methods("POST")
}

// CreatePost handles multipart POST /api/forums with a caption field and
// an optional photo file.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	caption := r.FormValue("caption")

	var (
		photoName string
		photoMime string
	)
	file, header, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		writeError(w, http.StatusBadRequest, "invalid photo upload")
		return
	}
	var forum *dbmysql.Forum
	if err == nil {
		defer file.Close()
		photoName = header.Filename
		photoMime = header.Header.Get("Content-Type")
		forum, err = h.forumService.CreatePost(r.Context(), userID, caption, photoName, photoMime, file)
	} else {
		forum, err = h.forumService.CreatePost(r.Context(), userID, caption, "", "", nil)
	}

	if err != nil {
		h.writeServiceError(w, err, "failed to create forum")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "forum created successfully",
		"forum":   forum,
	})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	forumID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid forum id")
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.forumService.AddComment(r.Context(), userID, forumID, req.Comment)
	if err != nil {
		h.writeServiceError(w, err, "failed to add comment")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "comment added successfully",
		"comment": comment,
	})
}

func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	forumID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid forum id")
		return
	}

	if err := h.forumService.AddLike(r.Context(), userID, forumID); err != nil {
		h.writeServiceError(w, err, "failed to add like")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "like added successfully"})
}

func (h *Handler) GetForum(w http.ResponseWriter, r *http.Request) {
	forumID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid forum id")
		return
	}

	forum, comments, err := h.forumService.GetForum(r.Context(), forumID)
	if err != nil {
		h.writeServiceError(w, err, "failed to load forum")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"forum":    forum,
		"comments": comments,
	})
}

func (h *Handler) ListForums(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	forums, err := h.forumService.ListForums(r.Context(), limit, offset)
	if err != nil {
		log.Printf("Failed to list forums: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list forums")
		return
	}

	writeJSON(w, http.StatusOK, forums)
}

// writeServiceError translates pipeline errors onto HTTP statuses: missing
// users/forums are client errors, a failing notification store is a server
// error surfaced before the response (delivery failures never reach here).
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrForumNotFound):
		writeError(w, http.StatusNotFound, "forum not found")
	case errors.Is(err, common.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, common.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrStoreUnavailable):
		log.Printf("Notification store failure: %v", err)
		writeError(w, http.StatusInternalServerError, "notification could not be recorded")
	default:
		log.Printf("%s: %v", fallback, err)
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func pathID(r *http.Request) (uint64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
