package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// ownerFromRequest identifies the caller. Authentication is delegated to the
// fronting proxy; this service trusts the X-Owner header it injects.
func ownerFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Owner"))
}

// extractClientIP resolves the client address, considering proxies.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// First hop is the original client.
		if i := strings.IndexByte(ip, ','); i > 0 {
			return strings.TrimSpace(ip[:i])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrDuplicateRule),
		errors.Is(err, core.ErrDuplicateGoal):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		slog.ErrorContext(r.Context(), "Store unavailable", "error", err)
		writeError(w, r, http.StatusServiceUnavailable, "storage temporarily unavailable")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidFrequency),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyOwner),
		errors.Is(err, core.ErrEmptyCategory):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// formatAmount renders cents as a plain decimal string, e.g. 1234.50.
func formatAmount(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
