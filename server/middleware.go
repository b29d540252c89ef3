package server

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sambbaron/tuneful/logger"
)

// acceptMIME rejects requests whose Accept header does not admit mimetype.
func acceptMIME(mimetype string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptable(r.Header.Values("Accept"), mimetype) {
			writeMessage(w, http.StatusNotAcceptable,
				fmt.Sprintf("Request must accept %s data", mimetype))
			return
		}
		next(w, r)
	}
}

// requireMIME rejects requests whose Content-Type is not mimetype.
func requireMIME(mimetype string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || !strings.EqualFold(mediaType, mimetype) {
			writeMessage(w, http.StatusUnsupportedMediaType,
				fmt.Sprintf("Request must contain %s data", mimetype))
			return
		}
		next(w, r)
	}
}

// acceptable reports whether any Accept entry matches mimetype. Wildcards
// match; entries with q=0 are refused.
func acceptable(headers []string, mimetype string) bool {
	want := strings.SplitN(strings.ToLower(mimetype), "/", 2)
	for _, header := range headers {
		for _, part := range strings.Split(header, ",") {
			mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			if q, ok := params["q"]; ok {
				if v, err := strconv.ParseFloat(q, 64); err != nil || v <= 0 {
					continue
				}
			}

			got := strings.SplitN(mediaType, "/", 2)
			if len(got) != 2 {
				continue
			}
			if (got[0] == "*" || got[0] == want[0]) && (got[1] == "*" || got[1] == want[1]) {
				return true
			}
		}
	}
	return false
}

// corsMiddleware 添加跨域响应头，并直接应答预检请求。
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		w.Header().Set("Access-Control-Expose-Headers", "Location")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		logger.Info("HTTP request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.Int("bytes", rec.size),
			logger.Duration("duration", time.Since(start)),
		)
	})
}

// recoveryMiddleware turns a handler panic into a 500.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic while handling request",
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.Any("panic", rec),
				)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
