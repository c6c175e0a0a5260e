// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package launcher implements a Telegram bot that answers /start with a button
// opening the AI Content Creator web app inside Telegram.
//
// A [Session] owns the authenticated Bot API client and its long-polling loop.
// A [Handler] builds the reply with [StartReply] and sends it to the chat the
// command came from; [Register] attaches it to a session's client using
// [Match] to select updates.
package launcher
