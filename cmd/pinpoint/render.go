package main

import (
	"io"

	"medi-map/internal/panel"
	"medi-map/internal/session"
)

func newRenderer(out io.Writer, html bool) session.Renderer {
	if html {
		return panel.NewHTMLRenderer(out)
	}
	return panel.NewTextRenderer(out)
}
