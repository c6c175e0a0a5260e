// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package launcher

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/shilp-ai/creatorbot/internal/testutil"
)

func TestStartReply(t *testing.T) {
	t.Parallel()

	for _, chatID := range []int64{42, -1001234567890, 0} {
		got := StartReply(chatID)
		testutil.AssertEqual(t, got, OutboundMessage{
			ChatID: chatID,
			Text:   "Click below to open AI Content Creator!",
			Keyboard: [][]InlineKeyboardButton{{
				{Label: "Open Creator Bot", Action: WebAppLaunch{URL: "https://shilp-ai.github.io"}},
			}},
		})
		if err := got.Validate(); err != nil {
			t.Fatalf("start reply must be valid: %v", err)
		}
	}
}

func TestSendParams(t *testing.T) {
	t.Parallel()

	p := StartReply(42).SendParams()
	testutil.AssertEqual(t, p.ChatID, int64(42))
	testutil.AssertEqual(t, p.Text, StartText)

	// The wire shape Telegram expects for web app buttons.
	b, err := json.Marshal(p.ReplyMarkup)
	if err != nil {
		t.Fatal(err)
	}
	type wireButton struct {
		Text   string `json:"text"`
		URL    string `json:"url"`
		WebApp *struct {
			URL string `json:"url"`
		} `json:"web_app"`
	}
	got := testutil.UnmarshalJSON[struct {
		InlineKeyboard [][]wireButton `json:"inline_keyboard"`
	}](t, b)
	testutil.AssertEqual(t, len(got.InlineKeyboard), 1)
	testutil.AssertEqual(t, len(got.InlineKeyboard[0]), 1)
	btn := got.InlineKeyboard[0][0]
	testutil.AssertEqual(t, btn.Text, "Open Creator Bot")
	testutil.AssertEqual(t, btn.URL, "")
	if btn.WebApp == nil {
		t.Fatalf("button must carry a web_app action, got %s", b)
	}
	testutil.AssertEqual(t, btn.WebApp.URL, "https://shilp-ai.github.io")

	kb, ok := p.ReplyMarkup.(*models.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup is %T, want *models.InlineKeyboardMarkup", p.ReplyMarkup)
	}
	testutil.AssertEqual(t, len(kb.InlineKeyboard), 1)
	testutil.AssertEqual(t, len(kb.InlineKeyboard[0]), 1)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	button := func(label, url string) InlineKeyboardButton {
		return InlineKeyboardButton{Label: label, Action: WebAppLaunch{URL: url}}
	}

	cases := map[string]struct {
		msg     OutboundMessage
		wantErr error
	}{
		"valid": {
			msg: StartReply(42),
		},
		"no text": {
			msg:     OutboundMessage{Keyboard: [][]InlineKeyboardButton{{button("Open", WebAppURL)}}},
			wantErr: errNoMessage,
		},
		"no rows": {
			msg:     OutboundMessage{Text: StartText},
			wantErr: errNoRows,
		},
		"empty row": {
			msg:     OutboundMessage{Text: StartText, Keyboard: [][]InlineKeyboardButton{{}}},
			wantErr: errEmptyRow,
		},
		"no label": {
			msg:     OutboundMessage{Text: StartText, Keyboard: [][]InlineKeyboardButton{{button("", WebAppURL)}}},
			wantErr: errNoLabel,
		},
		"plain http": {
			msg:     OutboundMessage{Text: StartText, Keyboard: [][]InlineKeyboardButton{{button("Open", "http://shilp-ai.github.io")}}},
			wantErr: errNotHTTPS,
		},
		"relative": {
			msg:     OutboundMessage{Text: StartText, Keyboard: [][]InlineKeyboardButton{{button("Open", "/creator")}}},
			wantErr: errNotHTTPS,
		},
		"unparsable": {
			msg:     OutboundMessage{Text: StartText, Keyboard: [][]InlineKeyboardButton{{button("Open", "https://[::1")}}},
			wantErr: errNotHTTPS,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}
