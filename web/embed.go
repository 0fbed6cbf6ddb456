package web

import "embed"

// TemplatesFS embeds the layout, page and partial templates.
//
//go:embed templates
var TemplatesFS embed.FS

// StaticFS embeds static assets (css/js).
//
//go:embed static
var StaticFS embed.FS
