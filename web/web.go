// Package web holds the embedded demo form page and its client-side assets.
package web

import "embed"

// StaticFS serves /static (the client validation script).
//
//go:embed static
var StaticFS embed.FS

// TemplatesFS holds the server-rendered form page.
//
//go:embed templates
var TemplatesFS embed.FS
