// Package console provides embedded assets for production builds.
package console

import "embed"

// Embedded templates for production builds.
// In dev mode (IsDev=true), templates are loaded from disk for hot reloading.
// In production mode (IsDev=false), templates are served from this embedded filesystem.

//go:embed all:web/templates
var TemplateFS embed.FS
