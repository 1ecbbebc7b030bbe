// Package static embeds static assets that are served by the gateway.
package static

import _ "embed"

// AppShell is the single-page app's HTML shell, served for every
// non-API route so client-side routing works on deep links.
//
//go:embed app.html
var AppShell string
