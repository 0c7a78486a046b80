package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 100

// Terminal renders a markdown document with glamour styling.
func Terminal(doc string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Write writes the document to w, styled for a terminal when styled is set
// and as plain markdown otherwise.
func Write(w io.Writer, doc string, styled bool) error {
	if styled {
		out, err := Terminal(doc)
		if err != nil {
			return err
		}
		doc = out
	}
	_, err := io.WriteString(w, doc)
	return err
}
