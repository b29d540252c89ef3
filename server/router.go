package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// NewHandler builds the router for the whole service.
func NewHandler(h *APIHandler) http.Handler {
	router := mux.NewRouter()
	h.router = router

	// 歌曲接口
	router.HandleFunc("/api/songs",
		acceptMIME(mimeJSON, h.scoped(h.ListSongsHandler))).Methods(http.MethodGet)
	router.HandleFunc("/api/songs",
		acceptMIME(mimeJSON, requireMIME(mimeJSON, h.scoped(h.CreateSongHandler)))).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id:[0-9]+}",
		acceptMIME(mimeJSON, h.scoped(h.GetSongHandler))).Methods(http.MethodGet).Name(routeSong)
	router.HandleFunc("/api/songs/{id:[0-9]+}",
		acceptMIME(mimeJSON, requireMIME(mimeJSON, h.scoped(h.UpdateSongHandler)))).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id:[0-9]+}",
		acceptMIME(mimeJSON, h.scoped(h.DeleteSongHandler))).Methods(http.MethodDelete)

	// 文件上传与下载
	router.HandleFunc("/api/files",
		acceptMIME(mimeJSON, requireMIME(mimeMultipart, h.UploadFileHandler))).Methods(http.MethodPost)
	router.HandleFunc("/uploads/{filename}", h.ServeUploadHandler).
		Methods(http.MethodGet, http.MethodHead).Name(routeUploadedFile)

	router.HandleFunc("/healthz", h.HealthHandler).Methods(http.MethodGet)

	// Frontend UI serving
	router.Methods(http.MethodGet, http.MethodHead).
		MatcherFunc(isPagePath).
		Handler(http.FileServer(http.Dir(h.cfg.Web.Dir)))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return recoveryMiddleware(loggingMiddleware(corsMiddleware(router)))
}

// isPagePath keeps API and upload paths away from the front-end file server.
func isPagePath(r *http.Request, _ *mux.RouteMatch) bool {
	return !strings.HasPrefix(r.URL.Path, "/api/") && !strings.HasPrefix(r.URL.Path, "/uploads/")
}
