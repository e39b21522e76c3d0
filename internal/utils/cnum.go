package utils

import (
	"strconv"
)

// cnDigits is the fixed digit table for localized ordinal numbering.
var cnDigits = []rune("零一二三四五六七八九")

// ChineseNumeral converts n to a Chinese numeral for chapter/volume labels
// ("第n卷" / "第n章"). 1-10 map directly, 11-19 render as 十+digit, 20-99 as
// tens-digit+十+ones-digit (ones omitted when zero). Values outside 1..99
// fall back to Arabic numerals.
func ChineseNumeral(n int) string {
	if n < 1 || n > 99 {
		return strconv.Itoa(n)
	}
	if n <= 10 {
		if n == 10 {
			return "十"
		}
		return string(cnDigits[n])
	}
	if n < 20 {
		return "十" + string(cnDigits[n%10])
	}
	tens, ones := n/10, n%10
	s := string(cnDigits[tens]) + "十"
	if ones != 0 {
		s += string(cnDigits[ones])
	}
	return s
}
