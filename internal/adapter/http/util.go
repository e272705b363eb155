package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fatrobin/internal/app"
	"fatrobin/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json; charset=utf-8"
	contentTypeMsgpack = "application/msgpack"
)

// isMsgpack reports whether a Content-Type or Accept header asks for
// MessagePack.
func isMsgpack(header string) bool {
	return strings.Contains(header, "application/msgpack") ||
		strings.Contains(header, "application/x-msgpack")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeBody encodes v as MessagePack when the client accepts it and as JSON
// otherwise. Both encodings use the json struct tags.
func writeBody(w http.ResponseWriter, r *http.Request, status int, v any) {
	if !isMsgpack(r.Header.Get("Accept")) {
		writeJSON(w, status, v)
		return
	}
	w.Header().Set("Content-Type", contentTypeMsgpack)
	w.WriteHeader(status)
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeBody(w, r, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps an application error to a status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidPotency),
		errors.Is(err, domain.ErrUnknownField):
		status = http.StatusBadRequest
	case errors.Is(err, app.ErrSessionNotFound), errors.Is(err, app.ErrSessionExpired):
		status = http.StatusNotFound
	}
	writeError(w, r, status, err)
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// parseBody decodes the request body according to its Content-Type.
func parseBody(r *http.Request, dst any) error {
	if !isMsgpack(r.Header.Get("Content-Type")) {
		return parseJSON(r, dst)
	}
	dec := msgpack.NewDecoder(r.Body)
	dec.SetCustomStructTag("json")
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid msgpack: %w", err)
	}
	return nil
}

// potenciesQuery reads ?potencies=10000,35000. A missing parameter yields
// nil so the service default applies.
func potenciesQuery(r *http.Request) ([]domain.Potency, error) {
	v := r.URL.Query().Get("potencies")
	if v == "" {
		return nil, nil
	}
	var out []domain.Potency
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid potency %q", domain.ErrInvalidPotency, part)
		}
		out = append(out, domain.Potency(n))
	}
	return out, nil
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
