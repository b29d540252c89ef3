package server

import (
	"errors"
	"net/http"

	"github.com/sambbaron/tuneful/logger"
	"github.com/sambbaron/tuneful/storage"

	"github.com/gorilla/mux"
)

// ServeUploadHandler GET /uploads/{filename}
// 从上传存储读取文件，支持 Range 请求。
func (h *APIHandler) ServeUploadHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	object, err := h.blobs.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("Failed to open upload",
			logger.String("name", name),
			logger.ErrorField(err),
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer object.Close()

	info := object.Info()
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	http.ServeContent(w, r, info.Name, info.LastModified, object)
}
