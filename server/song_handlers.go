package server

import (
	"fmt"
	"net/http"

	"github.com/sambbaron/tuneful/logger"
	"github.com/sambbaron/tuneful/model"
	"github.com/sambbaron/tuneful/repository"

	"github.com/gorilla/mux"
)

// writeSong serializes one song. A song whose file row is gone is an
// integrity fault and answers 500.
func (h *APIHandler) writeSong(w http.ResponseWriter, status int, song *model.Song) {
	resp, err := song.ToResponse(h.uploadPath)
	if err != nil {
		h.internalError(w, "Failed to serialize song", err, logger.Uint("song_id", song.ID))
		return
	}
	writeJSON(w, status, resp)
}

// ListSongsHandler GET /api/songs
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request, sess *repository.Session) {
	songs, err := sess.Songs.List(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list songs", err)
		return
	}

	resp := make([]model.SongResponse, 0, len(songs))
	for _, song := range songs {
		item, err := song.ToResponse(h.uploadPath)
		if err != nil {
			h.internalError(w, "Failed to serialize song", err, logger.Uint("song_id", song.ID))
			return
		}
		resp = append(resp, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSongHandler GET /api/songs/{id}
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request, sess *repository.Session) {
	found, err := resolveSong(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		h.internalError(w, "Failed to load song", err)
		return
	}
	if found.shortCircuit(w) {
		return
	}
	h.writeSong(w, http.StatusOK, found.value)
}

// CreateSongHandler POST /api/songs
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request, sess *repository.Session) {
	payload := validateSong(w, r)
	if payload.shortCircuit(w) {
		return
	}

	file, err := resolveFile(r.Context(), sess, payload.value.File.ID)
	if err != nil {
		h.internalError(w, "Failed to load file", err)
		return
	}
	if file.shortCircuit(w) {
		return
	}

	song := &model.Song{FileID: file.value.ID}
	if err := sess.Songs.Create(r.Context(), song); err != nil {
		h.internalError(w, "Failed to create song", err)
		return
	}
	if err := sess.Commit(); err != nil {
		h.internalError(w, "Failed to commit song", err)
		return
	}
	song.File = file.value

	logger.Info("Song created",
		logger.Uint("song_id", song.ID),
		logger.Uint("file_id", song.FileID),
	)

	w.Header().Set("Location", h.songPath(song.ID))
	h.writeSong(w, http.StatusCreated, song)
}

// UpdateSongHandler PUT /api/songs/{id}
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request, sess *repository.Session) {
	found, err := resolveSong(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		h.internalError(w, "Failed to load song", err)
		return
	}
	if found.shortCircuit(w) {
		return
	}

	payload := validateSong(w, r)
	if payload.shortCircuit(w) {
		return
	}

	file, err := resolveFile(r.Context(), sess, payload.value.File.ID)
	if err != nil {
		h.internalError(w, "Failed to load file", err)
		return
	}
	if file.shortCircuit(w) {
		return
	}

	song := found.value
	if err := sess.Songs.UpdateFile(r.Context(), song, file.value.ID); err != nil {
		h.internalError(w, "Failed to update song", err, logger.Uint("song_id", song.ID))
		return
	}
	if err := sess.Commit(); err != nil {
		h.internalError(w, "Failed to commit song", err, logger.Uint("song_id", song.ID))
		return
	}
	song.File = file.value

	logger.Info("Song updated",
		logger.Uint("song_id", song.ID),
		logger.Uint("file_id", song.FileID),
	)

	w.Header().Set("Location", h.songPath(song.ID))
	h.writeSong(w, http.StatusOK, song)
}

// DeleteSongHandler DELETE /api/songs/{id}
// The song's file row and blob are left in place.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request, sess *repository.Session) {
	found, err := resolveSong(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		h.internalError(w, "Failed to load song", err)
		return
	}
	if found.shortCircuit(w) {
		return
	}

	id := found.value.ID
	if _, err := sess.Songs.Delete(r.Context(), id); err != nil {
		h.internalError(w, "Failed to delete song", err, logger.Uint("song_id", id))
		return
	}
	if err := sess.Commit(); err != nil {
		h.internalError(w, "Failed to commit song deletion", err, logger.Uint("song_id", id))
		return
	}

	logger.Info("Song deleted", logger.Uint("song_id", id))
	writeMessage(w, http.StatusOK, fmt.Sprintf("Song %d deleted", id))
}
