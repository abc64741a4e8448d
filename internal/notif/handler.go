package notif

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"culturlens/internal/common"

	"github.com/gorilla/mux"
)

// Handler exposes the notification read API.
type Handler struct {
	service      *Service
	defaultLimit int
}

func NewHandler(service *Service, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &Handler{service: service, defaultLimit: defaultLimit}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/notifications", h.Recent).Methods("GET")
	router.HandleFunc("/notifications/{id:[0-9]+}", h.ByID).Methods("GET")

	authed := router.NewRoute().Subrouter()
	authed.Use(common.AuthMiddleware)
	authed.HandleFunc("/notifications/me", h.Mine).Methods("GET")
}

// Recent handles GET /api/notifications?kind=COMMENT,LIKE&limit=N
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	kinds, ok := parseKinds(r.URL.Query().Get("kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown notification kind")
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), h.defaultLimit)

	notifications, err := h.service.Recent(r.Context(), kinds, limit)
	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// ByID handles GET /api/notifications/{id}.
func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	notification, err := h.service.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		log.Printf("Failed to load notification %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load notification")
		return
	}

	writeJSON(w, http.StatusOK, notification)
}

// Mine handles GET /api/notifications/me for the authenticated user.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), h.defaultLimit)
	offset := parseIntOrDefault(r.URL.Query().Get("offset"), 0)

	notifications, err := h.service.ForRecipient(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("Failed to list notifications for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

func parseKinds(raw string) ([]common.NotificationKind, bool) {
	if raw == "" {
		return nil, true
	}

	var kinds []common.NotificationKind
	for _, part := range strings.Split(raw, ",") {
		kind := common.NotificationKind(strings.ToUpper(strings.TrimSpace(part)))
		if !kind.IsValid() {
			return nil, false
		}
		kinds = append(kinds, kind)
	}
	return kinds, true
}

func parseIntOrDefault(raw string, defaultValue int) int {
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
