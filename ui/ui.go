// Package ui embeds the page templates and static assets of the web front end.
package ui

import "embed"

// Files holds templates/ and static/.
//
//go:embed templates static
var Files embed.FS
