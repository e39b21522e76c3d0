package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountWords returns the rune count of body after removing all whitespace.
// Each CJK character and each Latin letter counts as one word, which is the
// conventional word-count unit for Chinese-language manuscripts. Markup
// symbols are NOT stripped in this mode; it is the count persisted on
// chapter rows and rolled up into manuscript totals.
func CountWords(body string) int {
	if body == "" {
		return 0
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, body)
	return utf8.RuneCountInString(stripped)
}

// markupSymbols are the markdown symbols removed by the statistics counting
// mode before whitespace removal.
const markupSymbols = "#*_`~[]()"

// CountWordsStripped counts like CountWords but removes markup symbols
// first. Used for workspace-wide statistics; the two modes are not
// interchangeable and are tested independently.
func CountWordsStripped(body string) int {
	if body == "" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(markupSymbols, r) {
			return -1
		}
		return r
	}, body)
	return CountWords(cleaned)
}
