package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/sambbaron/tuneful/logger"
	"github.com/sambbaron/tuneful/model"
	"github.com/sambbaron/tuneful/storage"
)

const maxUploadMemory = 32 << 20

// UploadFileHandler POST /api/files
// 先写入文件，再提交数据库记录；提交失败时删除本次新建的文件。
func (h *APIHandler) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		logger.Warn("Failed to parse multipart form", logger.ErrorField(err))
		writeMessage(w, http.StatusUnprocessableEntity, "Could not find file data")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "Could not find file data")
		return
	}
	defer src.Close()

	name := storage.SecureFilename(header.Filename)
	if name == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "Invalid file name")
		return
	}

	ctx := r.Context()
	existed, err := h.blobExists(ctx, name)
	if err != nil {
		h.internalError(w, "Failed to check upload store", err, logger.String("name", name))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := h.blobs.Save(ctx, name, src, header.Size, contentType); err != nil {
		h.internalError(w, "Failed to store upload", err, logger.String("name", name))
		return
	}

	file := &model.File{Name: name}
	if err := h.recordFile(ctx, file); err != nil {
		// 数据库写入失败，回收文件；同名文件已被之前的记录引用时保留
		if !existed {
			if rmErr := h.blobs.Remove(context.WithoutCancel(ctx), name); rmErr != nil {
				logger.Error("Failed to remove orphaned upload",
					logger.String("name", name),
					logger.ErrorField(rmErr),
				)
			}
		}
		h.internalError(w, "Failed to record upload", err, logger.String("name", name))
		return
	}

	logger.Info("File uploaded",
		logger.Uint("file_id", file.ID),
		logger.String("name", name),
		logger.Int64("size", header.Size),
	)

	writeJSON(w, http.StatusCreated, file.ToResponse(h.uploadPath))
}

// blobExists reports whether name is already present in the upload store.
func (h *APIHandler) blobExists(ctx context.Context, name string) (bool, error) {
	object, err := h.blobs.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	object.Close()
	return true, nil
}

// recordFile inserts the file row in its own session.
func (h *APIHandler) recordFile(ctx context.Context, file *model.File) error {
	sess, err := h.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Files.Create(ctx, file); err != nil {
		return err
	}
	return sess.Commit()
}
