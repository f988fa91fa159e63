package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bessonnitsa/internal/models"
	"bessonnitsa/internal/telegram"
)

// Booking relays public booking submissions to the restaurant's Telegram
// chat. Nothing is persisted and a single outbound attempt is made: if
// the relay fails, the caller shows a retry-later notice and the data is
// dropped.
type Booking struct {
	tg *telegram.Client
}

// NewBooking creates the booking relay handler. tg may be nil when the
// bot secrets are not configured; submissions then answer 500.
func NewBooking(tg *telegram.Client) *Booking {
	return &Booking{tg: tg}
}

// Submit accepts a booking payload, formats the notification message,
// and forwards it once to the Bot API. CORS preflight for this route is
// answered by the router's CORS middleware before reaching here.
func (b *Booking) Submit(w http.ResponseWriter, r *http.Request) {
	// Configuration is checked before reading the body: with secrets
	// missing, no outbound call is ever attempted.
	if b.tg == nil || !b.tg.Configured() {
		slog.Error("booking relay not configured")
		writeError(w, http.StatusInternalServerError, "Server not configured")
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateBooking(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := b.tg.SendMessage(r.Context(), telegram.BookingText(req)); err != nil {
		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) {
			slog.Error("booking relay rejected upstream", "status", apiErr.StatusCode)
			writeUpstreamError(w, apiErr.Payload)
			return
		}
		slog.Error("booking relay failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeUpstreamError echoes the Bot API's own response inside a 502 so
// the caller can tell "misconfigured" from "upstream rejected".
func writeUpstreamError(w http.ResponseWriter, payload json.RawMessage) {
	if !json.Valid(payload) {
		// Upstream answered with something other than JSON (proxy error
		// page); wrap it as a plain string.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": string(payload)})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]json.RawMessage{"error": payload})
}
