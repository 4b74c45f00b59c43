package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplateName is the entry template rendered for every form.
const TemplateName = "templates/form"

// TemplatesFS exposes the embedded template bundle so callers can copy or
// override it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
