// Package web embeds the static dashboard assets.
package web

import "embed"

// Assets holds the dashboard files served at the web root.
//
//go:embed static
var Assets embed.FS
