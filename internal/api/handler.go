package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/coffishop-settings/internal/identity"
	"github.com/eugenenazirov/coffishop-settings/internal/settings"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxStateLength = 512

// Handler serves the compiled-in frontend settings and the identity URLs derived from them.
type Handler struct {
	settings settings.Settings
	identity *identity.Provider

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler for the given settings.
func NewHandler(s settings.Settings, idp *identity.Provider, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: s,
		identity: idp,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:      "ok",
		Environment: h.settings.Environment().String(),
		Timestamp:   h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, h.settings.Document())
}

func (h *Handler) handleGetIdentity(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if len(state) > maxStateLength {
		writeError(w, http.StatusBadRequest, "Invalid request", "state must be at most 512 bytes")
		return
	}

	resp := identityResponse{
		Issuer:    h.identity.Issuer(),
		JWKSURL:   h.identity.JWKSURL(),
		LoginURL:  h.identity.LoginURL(state),
		LogoutURL: h.identity.LogoutURL(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status      string    `json:"status"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}

type identityResponse struct {
	Issuer    string `json:"issuer"`
	JWKSURL   string `json:"jwksUrl"`
	LoginURL  string `json:"loginUrl"`
	LogoutURL string `json:"logoutUrl"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
