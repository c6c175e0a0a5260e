// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package launcher

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/shilp-ai/creatorbot/internal/logger"
)

// Sender delivers messages. *bot.Bot implements it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Config configures a [Handler].
type Config struct {
	// Sender is used to deliver replies.
	Sender Sender
	// Logf reports delivery failures. If nil, log.Printf is used.
	Logf logger.Logf
	// Metrics is optional.
	Metrics *Metrics
}

// Handler replies to /start. It holds no state between updates and is safe
// for concurrent use.
type Handler struct {
	sender  Sender
	logf    logger.Logf
	metrics *Metrics
}

// NewHandler returns a Handler configured by c.
func NewHandler(c Config) *Handler {
	h := &Handler{
		sender:  c.Sender,
		logf:    c.Logf,
		metrics: c.Metrics,
	}
	if h.logf == nil {
		h.logf = log.Printf
	}
	return h
}

// Handle sends [StartReply] to the chat of update's message. It is a
// [bot.HandlerFunc] and expects to be selected by [Match], so update.Message
// is never nil.
//
// Delivery is attempted once. On failure the requester gets nothing and the
// error is logged.
func (h *Handler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	_, err := h.sender.SendMessage(ctx, StartReply(chatID).SendParams())
	h.metrics.observeReply(err)
	if err != nil {
		h.logf("launcher: sending start reply to chat %d: %v", chatID, err)
	}
}

// Match returns a [bot.MatchFunc] selecting messages that begin with the
// /start command. A command addressed to a bot (/start@name) matches only when
// name is username. Command arguments, as in deep links, are allowed.
func Match(username string) bot.MatchFunc {
	return func(update *models.Update) bool {
		cmd, ok := leadingCommand(update.Message)
		if !ok {
			return false
		}
		name, mention, addressed := strings.Cut(cmd, "@")
		if addressed && !strings.EqualFold(mention, username) {
			return false
		}
		return strings.EqualFold(name, Command)
	}
}

// leadingCommand returns the bot command that opens msg, without the slash.
func leadingCommand(msg *models.Message) (string, bool) {
	if msg == nil || len(msg.Entities) == 0 {
		return "", false
	}
	e := msg.Entities[0]
	if e.Type != models.MessageEntityTypeBotCommand || e.Offset != 0 {
		return "", false
	}
	// Offsets are in UTF-16 code units, but a command is ASCII.
	if e.Length < 2 || e.Length > len(msg.Text) || msg.Text[0] != '/' {
		return "", false
	}
	return msg.Text[1:e.Length], true
}

// Registrar attaches handlers to a Bot API client. *bot.Bot implements it.
type Registrar interface {
	RegisterHandlerMatchFunc(matchFunc bot.MatchFunc, f bot.HandlerFunc, m ...bot.Middleware) string
}

// Register attaches h to r for /start commands addressed to username and
// returns the handler ID.
func Register(r Registrar, username string, h *Handler) string {
	return r.RegisterHandlerMatchFunc(Match(username), h.Handle)
}
