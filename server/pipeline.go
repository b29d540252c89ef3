package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/sambbaron/tuneful/model"
	"github.com/sambbaron/tuneful/repository"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxJSONBody = 1 << 20

// songSchema describes the body of song create and update requests.
var songSchema = jsonschema.MustCompileString("song.json", `{
	"type": "object",
	"properties": {
		"file": {
			"type": "object",
			"properties": {
				"id": {"type": "number"}
			},
			"required": ["id"]
		}
	},
	"required": ["file"]
}`)

type resultKind int

const (
	resultOK resultKind = iota
	resultNotFound
	resultInvalid
	resultMalformed
)

// result is either a value or a ready-made short-circuit response.
type result[T any] struct {
	kind    resultKind
	value   T
	message string
}

func ok[T any](v T) result[T] {
	return result[T]{kind: resultOK, value: v}
}

func notFound[T any](format string, args ...interface{}) result[T] {
	return result[T]{kind: resultNotFound, message: fmt.Sprintf(format, args...)}
}

func invalid[T any](format string, args ...interface{}) result[T] {
	return result[T]{kind: resultInvalid, message: fmt.Sprintf(format, args...)}
}

func malformed[T any](message string) result[T] {
	return result[T]{kind: resultMalformed, message: message}
}

// shortCircuit writes the early response for a non-ok result and reports
// whether the caller must stop.
func (res result[T]) shortCircuit(w http.ResponseWriter) bool {
	switch res.kind {
	case resultNotFound:
		writeMessage(w, http.StatusNotFound, res.message)
	case resultInvalid:
		writeMessage(w, http.StatusUnprocessableEntity, res.message)
	case resultMalformed:
		writeMessage(w, http.StatusBadRequest, res.message)
	default:
		return false
	}
	return true
}

// resolveSong looks a song up by the raw id from the URL. The error return
// is reserved for storage faults.
func resolveSong(ctx context.Context, sess *repository.Session, rawID string) (result[*model.Song], error) {
	id, err := strconv.ParseUint(rawID, 10, 0)
	if err != nil {
		return notFound[*model.Song]("Could not find song with id %s", rawID), nil
	}

	song, err := sess.Songs.GetByID(ctx, uint(id))
	if err != nil {
		return result[*model.Song]{}, fmt.Errorf("failed to load song %d: %w", id, err)
	}
	if song == nil {
		return notFound[*model.Song]("Could not find song with id %d", id), nil
	}
	return ok(song), nil
}

type songPayload struct {
	File struct {
		ID float64 `json:"id"`
	} `json:"file"`
}

// validateSong reads the request body and checks it against songSchema.
func validateSong(w http.ResponseWriter, r *http.Request) result[songPayload] {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return malformed[songPayload]("Could not read request body")
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return malformed[songPayload]("Could not decode request body")
	}

	if err := songSchema.Validate(doc); err != nil {
		return invalid[songPayload]("%s", schemaMessage(err))
	}

	var payload songPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return invalid[songPayload]("%s", err.Error())
	}
	return ok(payload)
}

// schemaMessage picks the most specific validator message.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve.Message
}

// resolveFile checks that a song body references an existing file.
func resolveFile(ctx context.Context, sess *repository.Session, rawID float64) (result[*model.File], error) {
	label := strconv.FormatFloat(rawID, 'f', -1, 64)
	if rawID < 1 || rawID != math.Trunc(rawID) || rawID > math.MaxUint32 {
		return invalid[*model.File]("Could not find file with id %s", label), nil
	}

	file, err := sess.Files.GetByID(ctx, uint(rawID))
	if err != nil {
		return result[*model.File]{}, fmt.Errorf("failed to load file %s: %w", label, err)
	}
	if file == nil {
		return invalid[*model.File]("Could not find file with id %s", label), nil
	}
	return ok(file), nil
}
