package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

var markdown = goldmark.New()

// validateDocument runs the structural check on a rendered document: every
// front-matter block must parse as YAML and the body must convert cleanly as
// Markdown.
func validateDocument(doc string) error {
	body := doc
	for i := 1; ; i++ {
		block, rest, ok := cutFrontMatterBlock(body)
		if !ok {
			break
		}
		var parsed map[string]any
		if err := yaml.Unmarshal([]byte(block), &parsed); err != nil {
			return fmt.Errorf("front matter block %d: %w", i, err)
		}
		body = rest
	}

	if err := markdown.Convert([]byte(body), io.Discard); err != nil {
		return fmt.Errorf("markdown body: %w", err)
	}
	return nil
}

// cutFrontMatterBlock removes one leading "---" fenced block, skipping the
// blank separator that follows it.
func cutFrontMatterBlock(doc string) (block, rest string, ok bool) {
	const fence = "---\n"
	if !strings.HasPrefix(doc, fence) {
		return "", doc, false
	}
	inner := doc[len(fence):]
	end := strings.Index(inner, fence)
	if end < 0 {
		return "", doc, false
	}
	rest = strings.TrimPrefix(inner[end+len(fence):], "\n")
	return inner[:end], rest, true
}
