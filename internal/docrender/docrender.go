// Package docrender collapses and selectively expands the `<details>`
// blocks and `::example[id]` placeholders that appear in hyperschema link
// descriptions. It builds markdown with regexp plus strings.Builder, no
// templating engine.
package docrender

import (
	"fmt"
	"regexp"
	"strings"
)

// Example is one documentation.javascript.examples[] entry from a
// hyperschema link.
type Example struct {
	ID          string
	Title       string
	Description string
	RequestCode string
	ResponseCode string
}

var (
	detailsRE = regexp.MustCompile(`(?s)<details>\s*<summary>(.*?)</summary>(.*?)</details>`)
	exampleRE = regexp.MustCompile(`::example\[([^\]]+)\]`)
)

// Render renders prose with details/examples collapsed or expanded.
// examples is keyed by id. expandDetails,
// when non-empty, switches to filter mode: only details/examples whose
// summary text (or example title) appears verbatim in expandDetails survive,
// fully rendered and opened; every other details block and example
// reference is removed. Prose outside details blocks and example references
// is not removed in filter mode and stays in the output. When empty, every
// details block is collapsed to its summary and every example reference
// becomes a collapsed placeholder, with unreferenced examples appended at
// the end in the same collapsed form.
func Render(prose string, examples map[string]Example, expandDetails []string) string {
	if len(expandDetails) > 0 {
		return renderFiltered(prose, examples, expandDetails)
	}
	return renderSummary(prose, examples)
}

func renderSummary(prose string, examples map[string]Example) string {
	referenced := make(map[string]bool)

	out := detailsRE.ReplaceAllString(prose, `<details><summary>$1</summary></details>`)
	out = exampleRE.ReplaceAllStringFunc(out, func(token string) string {
		id := exampleRE.FindStringSubmatch(token)[1]
		referenced[id] = true
		ex, ok := examples[id]
		if !ok {
			return collapsedPlaceholder(id, id)
		}
		return collapsedPlaceholder(ex.ID, ex.Title)
	})

	var trailing []string
	for id, ex := range examples {
		if referenced[id] {
			continue
		}
		trailing = append(trailing, collapsedPlaceholder(ex.ID, ex.Title))
	}
	if len(trailing) == 0 {
		return out
	}

	var b strings.Builder
	b.WriteString(out)
	for _, t := range trailing {
		b.WriteString("\n\n")
		b.WriteString(t)
	}
	return b.String()
}

func renderFiltered(prose string, examples map[string]Example, expandDetails []string) string {
	wanted := make(map[string]bool, len(expandDetails))
	for _, s := range expandDetails {
		wanted[s] = true
	}

	out := detailsRE.ReplaceAllStringFunc(prose, func(block string) string {
		m := detailsRE.FindStringSubmatch(block)
		summary, body := m[1], m[2]
		if !wanted[strings.TrimSpace(summary)] {
			return ""
		}
		return fmt.Sprintf("<details open><summary>%s</summary>%s</details>", summary, body)
	})

	out = exampleRE.ReplaceAllStringFunc(out, func(token string) string {
		id := exampleRE.FindStringSubmatch(token)[1]
		ex, ok := examples[id]
		if !ok || !wanted[ex.Title] {
			return ""
		}
		return renderOpenedExample(ex)
	})

	return strings.TrimSpace(out)
}

func collapsedPlaceholder(id, title string) string {
	return fmt.Sprintf("<details><summary>Example: %s (%s)</summary></details>", title, id)
}

func renderOpenedExample(ex Example) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<details open><summary>Example: %s</summary>\n\n", ex.Title)
	if ex.Description != "" {
		b.WriteString(ex.Description)
		b.WriteString("\n\n")
	}
	if ex.RequestCode != "" {
		b.WriteString("**Request:**\n\n```javascript\n")
		b.WriteString(ex.RequestCode)
		b.WriteString("\n```\n\n")
	}
	if ex.ResponseCode != "" {
		b.WriteString("**Response:**\n\n```json\n")
		b.WriteString(ex.ResponseCode)
		b.WriteString("\n```\n\n")
	}
	b.WriteString("</details>")
	return b.String()
}
