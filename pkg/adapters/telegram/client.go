// Package telegram adapts the kompis engine to the Telegram Bot API: an
// outbound client implementing ports.Messenger and the webhook update
// translation the transport layer feeds into the driver.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kompisbot/kompis/pkg/domain"
)

const defaultBaseURL = "https://api.telegram.org"

const (
	methodSendMessage     = "sendMessage"
	methodEditMessageText = "editMessageText"
)

// Client talks to the Telegram Bot API. It implements ports.Messenger.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API host (used by tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = httpc }
}

// NewClient creates a Bot API client for the given bot token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// inlineButton and sendRequest mirror the Bot API wire shapes.
type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendRequest struct {
	ChatID      string      `json:"chat_id"`
	MessageID   int         `json:"message_id,omitempty"`
	Text        string      `json:"text"`
	ReplyMarkup replyMarkup `json:"reply_markup"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int    `json:"message_id"`
		Text      string `json:"text"`
	} `json:"result"`
}

// Send posts a new message and returns the delivered id and text.
func (c *Client) Send(ctx context.Context, payload *domain.Payload) (domain.SentMessage, error) {
	resp, err := c.post(ctx, methodSendMessage, payload)
	if err != nil {
		return domain.SentMessage{}, err
	}
	return domain.SentMessage{
		MessageID: resp.Result.MessageID,
		Text:      resp.Result.Text,
	}, nil
}

// Edit rewrites a previously sent message.
func (c *Client) Edit(ctx context.Context, payload *domain.Payload) error {
	if payload.MessageID == 0 {
		return fmt.Errorf("edit requires a message id")
	}
	_, err := c.post(ctx, methodEditMessageText, payload)
	return err
}

func (c *Client) post(ctx context.Context, method string, payload *domain.Payload) (*apiResponse, error) {
	body, err := json.Marshal(toSendRequest(payload))
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer httpResp.Body.Close()

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}
	if httpResp.StatusCode >= 300 || !resp.OK {
		return nil, fmt.Errorf("%s: status %d: %s", method, httpResp.StatusCode, resp.Description)
	}
	return &resp, nil
}

func toSendRequest(payload *domain.Payload) sendRequest {
	keyboard := make([][]inlineButton, 0, len(payload.Keyboard))
	for _, row := range payload.Keyboard {
		buttons := make([]inlineButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, inlineButton{
				Text:         b.Label,
				CallbackData: b.Action,
				URL:          b.URL,
			})
		}
		keyboard = append(keyboard, buttons)
	}
	if len(keyboard) == 0 {
		// The platform requires an explicit empty row to clear buttons.
		keyboard = [][]inlineButton{{}}
	}

	return sendRequest{
		ChatID:      payload.ChatID,
		MessageID:   payload.MessageID,
		Text:        payload.Text,
		ReplyMarkup: replyMarkup{InlineKeyboard: keyboard},
	}
}
