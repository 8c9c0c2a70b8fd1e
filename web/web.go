// Package web embeds the static dashboard assets.
package web

import "embed"

//go:embed index.html login.html
var FS embed.FS
