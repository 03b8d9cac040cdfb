package styles

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"unicode"
)

// Label line geometry, relative to the tile's top-left corner.
const (
	LabelX          = 4.0
	LabelFirstLine  = 13.0
	LabelLineHeight = 10.0
)

// LabelLine returns the position of the i-th label line.
func LabelLine(i int) (x, y float64) {
	return LabelX, LabelFirstLine + float64(i)*LabelLineHeight
}

// SplitLabel breaks a name into display lines. A new line starts before
// every uppercase letter that is not the first rune and is not immediately
// followed by another uppercase letter (the end of the string counts as
// not uppercase). Acronyms therefore stay together:
//
//	SplitLabel("GrandTheftAutoV") // ["Grand" "Theft" "Auto" "V"]
//	SplitLabel("GTAV")            // ["GTA" "V"]
//
// Concatenating the result yields the input. Labels are never clipped.
func SplitLabel(name string) []string {
	runes := []rune(name)
	if len(runes) == 0 {
		return nil
	}

	var lines []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			continue
		}
		if i+1 < len(runes) && unicode.IsUpper(runes[i+1]) {
			continue
		}
		lines = append(lines, string(runes[start:i]))
		start = i
	}
	return append(lines, string(runes[start:]))
}

// EscapeXML escapes s for use in element text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a coordinate with at most two decimals and no trailing zeros.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}
