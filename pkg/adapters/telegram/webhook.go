package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kompisbot/kompis/pkg/domain"
)

// Webhook update wire shapes, reduced to the fields the engine needs.
type update struct {
	Message       *updateMessage `json:"message"`
	CallbackQuery *callbackQuery `json:"callback_query"`
}

type updateMessage struct {
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`
	Chat      chat   `json:"chat"`
}

type callbackQuery struct {
	Data    string         `json:"data"`
	Message *updateMessage `json:"message"`
}

type chat struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

// ParseUpdate translates a raw webhook update into the engine's normalized
// message. Updates that are neither a message nor a callback press are
// rejected; the transport decides what to do with them.
func ParseUpdate(raw []byte) (domain.Message, error) {
	var u update
	if err := json.Unmarshal(raw, &u); err != nil {
		return domain.Message{}, fmt.Errorf("parse update: %w", err)
	}

	switch {
	case u.Message != nil:
		return domain.Message{
			Kind:      domain.KindMessage,
			ChatID:    strconv.FormatInt(u.Message.Chat.ID, 10),
			FirstName: u.Message.Chat.FirstName,
			MessageID: u.Message.MessageID,
			Text:      u.Message.Text,
		}, nil

	case u.CallbackQuery != nil:
		if u.CallbackQuery.Message == nil {
			return domain.Message{}, fmt.Errorf("callback query without message")
		}
		return domain.Message{
			Kind:      domain.KindCallback,
			ChatID:    strconv.FormatInt(u.CallbackQuery.Message.Chat.ID, 10),
			FirstName: u.CallbackQuery.Message.Chat.FirstName,
			Text:      u.CallbackQuery.Data,
		}, nil

	default:
		return domain.Message{}, fmt.Errorf("undefined update type")
	}
}
