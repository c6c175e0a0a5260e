// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package launcher

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Fixed content of the start reply.
const (
	Command     = "start"
	StartText   = "Click below to open AI Content Creator!"
	ButtonLabel = "Open Creator Bot"
	WebAppURL   = "https://shilp-ai.github.io"
)

// WebAppLaunch is a button action that opens URL inside Telegram's embedded
// web view.
type WebAppLaunch struct {
	URL string
}

// InlineKeyboardButton is a button attached to a message.
type InlineKeyboardButton struct {
	Label  string
	Action WebAppLaunch
}

var (
	errNoLabel   = errors.New("button has no label")
	errNoRows    = errors.New("message has no keyboard rows")
	errEmptyRow  = errors.New("keyboard row has no buttons")
	errNotHTTPS  = errors.New("web app URL must be an absolute https URL")
	errNoMessage = errors.New("message has no text")
)

// Validate reports whether b can be sent: it needs a label and an absolute
// https URL, which is all Telegram accepts for web app buttons.
func (b InlineKeyboardButton) Validate() error {
	if b.Label == "" {
		return errNoLabel
	}
	u, err := url.Parse(b.Action.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", errNotHTTPS, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: got %q", errNotHTTPS, b.Action.URL)
	}
	return nil
}

// OutboundMessage is a text message with an inline keyboard, addressed to a
// chat.
type OutboundMessage struct {
	ChatID   int64
	Text     string
	Keyboard [][]InlineKeyboardButton
}

// StartReply returns the reply to /start for chatID: the greeting and a single
// button opening the web app.
func StartReply(chatID int64) OutboundMessage {
	return OutboundMessage{
		ChatID: chatID,
		Text:   StartText,
		Keyboard: [][]InlineKeyboardButton{{
			{Label: ButtonLabel, Action: WebAppLaunch{URL: WebAppURL}},
		}},
	}
}

// Validate checks m and every button in it.
func (m OutboundMessage) Validate() error {
	if m.Text == "" {
		return errNoMessage
	}
	if len(m.Keyboard) == 0 {
		return errNoRows
	}
	for i, row := range m.Keyboard {
		if len(row) == 0 {
			return fmt.Errorf("row %d: %w", i, errEmptyRow)
		}
		for j, b := range row {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("row %d, button %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// SendParams converts m to a sendMessage request.
func (m OutboundMessage) SendParams() *bot.SendMessageParams {
	kb := make([][]models.InlineKeyboardButton, 0, len(m.Keyboard))
	for _, row := range m.Keyboard {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:   b.Label,
				WebApp: &models.WebAppInfo{URL: b.Action.URL},
			})
		}
		kb = append(kb, buttons)
	}
	return &bot.SendMessageParams{
		ChatID:      m.ChatID,
		Text:        m.Text,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: kb},
	}
}
