// Package telegram provides a minimal Telegram Bot API client used by the
// booking relay to forward table reservations to the restaurant's chat.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bessonnitsa/internal/models"
)

// DefaultBaseURL is the production Telegram Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Client sends messages through the Bot API sendMessage endpoint.
// Token or chat ID may be empty; callers must check Configured() before
// sending and report a configuration error instead.
type Client struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

// New creates a Telegram client for the given bot token and target chat.
func New(token, chatID string) *Client {
	return NewWithBaseURL(token, chatID, DefaultBaseURL)
}

// NewWithBaseURL creates a client against a custom API base URL.
// Used by tests to point at a local fake server.
func NewWithBaseURL(token, chatID, baseURL string) *Client {
	return &Client{
		token:   token,
		chatID:  chatID,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether both the bot token and the chat ID are set.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

// APIError is returned when the Bot API answers with a non-success
// result. Payload carries the raw upstream response body so the relay
// can echo it back to the caller.
type APIError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error (status %d): %s", e.StatusCode, string(e.Payload))
}

// sendMessageRequest is the JSON body for the sendMessage endpoint.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse is the envelope every Bot API response uses.
type apiResponse struct {
	OK bool `json:"ok"`
}

// SendMessage posts a text message to the configured chat. A single
// attempt is made; there is no retry. A non-2xx status or an ok=false
// result yields an *APIError carrying the upstream payload.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram marshal: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram read body: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil || resp.StatusCode != http.StatusOK || !result.OK {
		return &APIError{StatusCode: resp.StatusCode, Payload: respBody}
	}

	return nil
}

// BookingText renders the fixed booking notification template with all
// five submission fields. The wording matches what the restaurant staff
// already expect in their chat.
func BookingText(b models.BookingRequest) string {
	return fmt.Sprintf(
		"📩 Новое бронирование\n"+
			"👤 Имя: %s\n"+
			"📞 Телефон: %s\n"+
			"📅 Дата: %s\n"+
			"🕒 Время: %s\n"+
			"👥 Гостей: %d",
		b.Name, b.Phone, b.Date, b.Time, b.Guests,
	)
}
