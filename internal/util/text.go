package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reQuotes       = regexp.MustCompile(`["']`)
	reSpaces       = regexp.MustCompile(`\s+`)
	reLeadingLabel = regexp.MustCompile(`^.*?:\s*`)
)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// CleanText collapses whitespace and maps blank values to nil.
func CleanText(v *string) *string {
	if v == nil {
		return nil
	}
	s := NormalizeSpaces(*v)
	if s == "" {
		return nil
	}
	return &s
}

func StripQuotes(input string) string {
	return reQuotes.ReplaceAllString(input, "")
}

// StripLabel drops everything up to and including the first colon, plus the
// whitespace after it. "EP: Ingeniería Civil" becomes "Ingeniería Civil".
func StripLabel(input string) string {
	return reLeadingLabel.ReplaceAllString(input, "")
}

// ParseFloat accepts a single decimal comma ("12,75"). A comma followed by
// exactly three digits reads as a thousands grouping and is rejected, as is
// any other grouped value ("1,500", "1.500,5").
func ParseFloat(input string) (float64, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		i := strings.IndexByte(s, ',')
		if strings.Count(s, ",") > 1 || strings.Contains(s, ".") || len(s)-i-1 == 3 {
			return 0, false
		}
		s = s[:i] + "." + s[i+1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func ParseInt(input string) (int, bool) {
	s := strings.TrimSpace(input)
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, ok := ParseFloat(s)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func StringPtr(v string) *string {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}

func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
