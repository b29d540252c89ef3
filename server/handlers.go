package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sambbaron/tuneful/config"
	"github.com/sambbaron/tuneful/logger"
	"github.com/sambbaron/tuneful/repository"
	"github.com/sambbaron/tuneful/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Route names used for URL building.
const (
	routeSong         = "song_get"
	routeUploadedFile = "uploaded_file"
)

const (
	mimeJSON      = "application/json"
	mimeMultipart = "multipart/form-data"
)

// APIHandler holds the dependencies shared by the HTTP handlers.
type APIHandler struct {
	store  *repository.Store
	blobs  storage.BlobStore
	cfg    *config.Config
	router *mux.Router
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(store *repository.Store, blobs storage.BlobStore, cfg *config.Config) *APIHandler {
	return &APIHandler{
		store: store,
		blobs: blobs,
		cfg:   cfg,
	}
}

// sessionHandler is a handler that runs inside one storage session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *repository.Session)

// scoped opens a session for the request and closes it when the handler
// returns. Handlers commit explicitly; whatever is left uncommitted is
// rolled back.
func (h *APIHandler) scoped(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.store.Begin(r.Context())
		if err != nil {
			h.internalError(w, "Failed to open storage session", err)
			return
		}
		defer func() {
			if err := sess.Close(); err != nil {
				logger.Warn("Failed to roll back session",
					logger.String("path", r.URL.Path),
					logger.ErrorField(err),
				)
			}
		}()

		next(w, r, sess)
	}
}

// uploadPath is the download URL for a stored file name.
func (h *APIHandler) uploadPath(name string) string {
	u, err := h.router.Get(routeUploadedFile).URLPath("filename", name)
	if err != nil {
		logger.Warn("Cannot build upload URL from route",
			logger.String("name", name),
			logger.ErrorField(err),
		)
		return "/uploads/" + url.PathEscape(name)
	}
	return u.EscapedPath()
}

// songPath is the canonical URL of a song.
func (h *APIHandler) songPath(id uint) string {
	u, err := h.router.Get(routeSong).URLPath("id", strconv.FormatUint(uint64(id), 10))
	if err != nil {
		return "/api/songs/" + strconv.FormatUint(uint64(id), 10)
	}
	return u.Path
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", mimeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// internalError logs an unhandled fault and answers 500.
func (h *APIHandler) internalError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	logger.Error(msg, append(fields, logger.ErrorField(err))...)
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

// HealthHandler reports whether the database is reachable.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logger.Warn("Health check failed", logger.ErrorField(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
