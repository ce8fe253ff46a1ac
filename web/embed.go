package web

import "embed"

// Templates holds the page templates compiled into the binary.
//
//go:embed templates/*.html
var Templates embed.FS
