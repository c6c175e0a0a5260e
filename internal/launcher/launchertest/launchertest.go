// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package launchertest provides a fake Telegram Bot API for tests.
package launchertest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/shilp-ai/creatorbot/internal/testutil"
)

// Token is a typical Telegram Bot API token, copied from docs.
const Token = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

// Username is the username the fake API reports for the bot.
const Username = "creator_bot"

// SendCall is a recorded sendMessage request.
type SendCall struct {
	ChatID      string
	Text        string
	ReplyMarkup models.InlineKeyboardMarkup
}

// API is a fake Bot API that accepts requests for [Token] only. It answers
// getMe, deleteWebhook, getUpdates and sendMessage.
type API struct {
	t *testing.T

	// FailSend makes sendMessage fail with a Bot API error.
	FailSend bool

	updates chan string
	sent    chan SendCall

	mu      sync.Mutex
	methods []string
	sends   []SendCall
}

// New returns a fake API.
func New(t *testing.T) *API {
	return &API{
		t:       t,
		updates: make(chan string, 16),
		sent:    make(chan SendCall, 16),
	}
}

// HTTPClient returns a client whose requests are served by a.
func (a *API) HTTPClient() *http.Client { return testutil.MockHTTPClient(a) }

// Queue makes update the next one returned from getUpdates.
func (a *API) Queue(update string) { a.updates <- update }

// Sent returns a channel receiving every sendMessage request.
func (a *API) Sent() <-chan SendCall { return a.sent }

// Sends returns all recorded sendMessage requests.
func (a *API) Sends() []SendCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]SendCall(nil), a.sends...)
}

// Methods returns the names of all methods called with a valid token.
func (a *API) Methods() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.methods...)
}

// CommandMessage returns a JSON update carrying a private message with text
// from chatID. Text starting with a slash is marked as a bot command.
func CommandMessage(updateID, chatID int64, text string) string {
	msg := map[string]any{
		"message_id": updateID,
		"date":       time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC).Unix(),
		"chat":       map[string]any{"id": chatID, "type": "private"},
		"from":       map[string]any{"id": chatID, "is_bot": false, "first_name": "Ada"},
		"text":       text,
	}
	if strings.HasPrefix(text, "/") {
		cmd, _, _ := strings.Cut(text, " ")
		msg["entities"] = []map[string]any{{"type": "bot_command", "offset": 0, "length": len(cmd)}}
	}
	b, err := json.Marshal(map[string]any{"update_id": updateID, "message": msg})
	if err != nil {
		panic(err)
	}
	return string(b)
}

// ServeHTTP implements the [http.Handler] interface.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method, ok := strings.CutPrefix(r.URL.Path, "/bot"+Token+"/")
	if !ok {
		respond(w, http.StatusUnauthorized, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
		return
	}
	a.mu.Lock()
	a.methods = append(a.methods, method)
	a.mu.Unlock()

	switch method {
	case "getMe":
		respond(w, http.StatusOK, `{"ok":true,"result":{"id":123456,"is_bot":true,"first_name":"Creator","username":"`+Username+`"}}`)
	case "deleteWebhook":
		respond(w, http.StatusOK, `{"ok":true,"result":true}`)
	case "getUpdates":
		select {
		case u := <-a.updates:
			respond(w, http.StatusOK, `{"ok":true,"result":[`+u+`]}`)
		case <-r.Context().Done():
			respond(w, http.StatusOK, `{"ok":true,"result":[]}`)
		case <-time.After(50 * time.Millisecond):
			respond(w, http.StatusOK, `{"ok":true,"result":[]}`)
		}
	case "sendMessage":
		a.sendMessage(w, r)
	default:
		respond(w, http.StatusNotFound, `{"ok":false,"error_code":404,"description":"Not Found"}`)
	}
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r)
	if err != nil {
		a.t.Errorf("sendMessage: parsing params: %v", err)
		respond(w, http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request"}`)
		return
	}
	call := SendCall{ChatID: params["chat_id"], Text: params["text"]}
	if rm := params["reply_markup"]; rm != "" {
		call.ReplyMarkup = testutil.UnmarshalJSON[models.InlineKeyboardMarkup](a.t, []byte(rm))
	}

	a.mu.Lock()
	a.sends = append(a.sends, call)
	a.mu.Unlock()
	select {
	case a.sent <- call:
	default:
	}

	if a.FailSend {
		respond(w, http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
		return
	}
	b, err := json.Marshal(map[string]any{
		"ok": true,
		"result": map[string]any{
			"message_id": 1,
			"date":       0,
			"chat":       map[string]any{"id": json.Number(call.ChatID), "type": "private"},
			"text":       call.Text,
		},
	})
	if err != nil {
		a.t.Errorf("sendMessage: %v", err)
	}
	respond(w, http.StatusOK, string(b))
}

// parseParams reads Bot API method parameters sent as multipart or URL-encoded
// forms, or as a JSON object. Non-string JSON values are kept as raw JSON.
func parseParams(r *http.Request) (map[string]string, error) {
	params := make(map[string]string)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				params[k] = s
				continue
			}
			params[k] = string(v)
		}
		return params, nil
	}

	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("parsing form: %w", err)
	}
	for k, v := range r.Form {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params, nil
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
