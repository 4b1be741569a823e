package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/pkg/adapters/telegram"
	"github.com/kompisbot/kompis/pkg/domain"
)

func TestParseUpdate_Message(t *testing.T) {
	raw := []byte(`{
		"message": {
			"message_id": 12,
			"text": "I want to start SFI",
			"chat": {"id": 4711, "first_name": "Amina"}
		}
	}`)

	msg, err := telegram.ParseUpdate(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.KindMessage, msg.Kind)
	assert.Equal(t, "4711", msg.ChatID)
	assert.Equal(t, "Amina", msg.FirstName)
	assert.Equal(t, 12, msg.MessageID)
	assert.Equal(t, "I want to start SFI", msg.Text)
}

func TestParseUpdate_Callback(t *testing.T) {
	raw := []byte(`{
		"callback_query": {
			"data": "good_answer",
			"message": {"message_id": 13, "chat": {"id": 4711, "first_name": "Amina"}}
		}
	}`)

	msg, err := telegram.ParseUpdate(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.KindCallback, msg.Kind)
	assert.Equal(t, "4711", msg.ChatID)
	assert.Equal(t, "good_answer", msg.Text)
}

func TestParseUpdate_Undefined(t *testing.T) {
	_, err := telegram.ParseUpdate([]byte(`{"edited_message": {}}`))
	assert.Error(t, err)
}

func TestClient_Send(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": 99, "text": "Hej Amina!"},
		})
	}))
	defer srv.Close()

	client := telegram.NewClient("secret-token", telegram.WithBaseURL(srv.URL))

	payload := domain.NewPayload("4711", "Hej Amina!")
	payload.Keyboard = [][]domain.Button{{
		{Label: "Bank", Action: "head_topic_bank"},
		{Label: "More", URL: "https://example.se"},
	}}

	sent, err := client.Send(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 99, sent.MessageID)
	assert.Equal(t, "Hej Amina!", sent.Text)

	assert.Equal(t, "/botsecret-token/sendMessage", gotPath)
	markup := gotBody["reply_markup"].(map[string]any)
	rows := markup["inline_keyboard"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].([]any)
	require.Len(t, row, 2)
	first := row[0].(map[string]any)
	assert.Equal(t, "Bank", first["text"])
	assert.Equal(t, "head_topic_bank", first["callback_data"])
}

func TestClient_Send_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "upstream down"})
	}))
	defer srv.Close()

	client := telegram.NewClient("secret-token", telegram.WithBaseURL(srv.URL))
	_, err := client.Send(context.Background(), domain.NewPayload("1", "hi"))
	assert.ErrorContains(t, err, "status 502")
}

func TestClient_Edit_EmptyKeyboardRow(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": map[string]any{}})
	}))
	defer srv.Close()

	client := telegram.NewClient("secret-token", telegram.WithBaseURL(srv.URL))

	lock := domain.NewPayload("4711", "You voted as 👍")
	lock.MessageID = 99
	require.NoError(t, client.Edit(context.Background(), lock))

	markup := gotBody["reply_markup"].(map[string]any)
	rows := markup["inline_keyboard"].([]any)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0], "locking must send one explicit empty keyboard row")
}
