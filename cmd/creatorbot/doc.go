// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Creatorbot is a Telegram bot that answers /start with a button opening the AI
Content Creator web app inside Telegram.

# Usage

	$ TG_TOKEN=... creatorbot [flags...]

The bot token is read from the TG_TOKEN environment variable. A .env file in
the working directory is loaded first, without overriding variables that are
already set.

The bot receives updates by long polling until interrupted. Any webhook set
for the bot is removed on startup.

If -addr is set, an HTTP listener serves /health and Prometheus metrics at
/metrics.
*/
package main

import (
	_ "embed"

	"github.com/shilp-ai/creatorbot/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
