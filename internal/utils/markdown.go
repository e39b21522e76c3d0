package utils

import (
	"regexp"
	"strings"
)

// Stripping order matters: fenced code blocks go first so later passes never
// touch code contents, and image/link syntax goes before the generic
// emphasis passes so bracketed text is not half-eaten.
var (
	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`([^`\n]*)`")
	imageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	boldRe        = regexp.MustCompile(`(\*\*|__)(.*?)(\*\*|__)`)
	italicRe      = regexp.MustCompile(`([*_])([^*_\n]+)([*_])`)
	headingRe     = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	listMarkerRe  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	orderedListRe = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	quoteMarkerRe = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	blankRunsRe   = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown removes lightweight markup from chapter text for plain-text
// export. Fenced code blocks are dropped entirely, inline code keeps its
// text, links keep their link text, images are dropped, heading / list /
// quote markers are removed, and runs of 3+ newlines collapse to exactly 2.
// Stripping already-stripped plain text is a no-op.
func StripMarkdown(body string) string {
	text := body

	text = fencedCodeRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "$1")

	// Images before links: both start with a bracket pattern.
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")

	text = boldRe.ReplaceAllString(text, "$2")
	text = italicRe.ReplaceAllString(text, "$2")

	text = headingRe.ReplaceAllString(text, "")
	text = listMarkerRe.ReplaceAllString(text, "")
	text = orderedListRe.ReplaceAllString(text, "")
	text = quoteMarkerRe.ReplaceAllString(text, "")

	text = blankRunsRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
