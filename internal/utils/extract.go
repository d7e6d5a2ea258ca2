package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ContainsKeyword reports whether text contains keyword, case-insensitively.
func ContainsKeyword(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}

// ContainsAny reports whether text contains at least one of keywords.
func ContainsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if ContainsKeyword(text, k) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether text contains every one of keywords.
func ContainsAll(text string, keywords ...string) bool {
	for _, k := range keywords {
		if !ContainsKeyword(text, k) {
			return false
		}
	}
	return true
}

// FindMatches returns all substrings of text matched by pattern, case-insensitively.
func FindMatches(text, pattern string) []string {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil
	}
	return re.FindAllString(text, -1)
}

var numberNearRe = regexp.MustCompile(`(\d{1,4})\s*(?:calendar\s+|business\s+)?days?`)

// ExtractDaysNear searches text for the first "<n> days" occurrence within
// windowChars characters after the first occurrence of anchor. Returns
// (0, false) if anchor or a day count is not found.
func ExtractDaysNear(text, anchor string, windowChars int) (int, bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(anchor))
	if idx < 0 {
		return 0, false
	}
	end := idx + len(anchor) + windowChars
	if end > len(text) {
		end = len(text)
	}
	window := text[idx:end]
	m := numberNearRe.FindStringSubmatch(window)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

var moneyRe = regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]+)?)`)

// ExtractFirstAmount returns the first dollar amount found in text, as a
// float64, plus whether one was found.
func ExtractFirstAmount(text string) (float64, bool) {
	m := moneyRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	cleaned := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractAmountNear returns the first dollar amount appearing after the
// first occurrence of anchor in text.
func ExtractAmountNear(text, anchor string) (float64, bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(anchor))
	if idx < 0 {
		return 0, false
	}
	return ExtractFirstAmount(text[idx:])
}

var datedRe = regexp.MustCompile(`(?i)(?:dated|as of)\s+(\d{1,2}/\d{1,2}/\d{2,4})`)

// ExtractDate finds the first "dated MM/DD/YYYY" or "as of MM/DD/YYYY"
// occurrence in text and parses it. Returns the zero time and false when
// no such phrase is present or the date fails to parse.
func ExtractDate(text string) (time.Time, bool) {
	m := datedRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	for _, layout := range []string{"1/2/2006", "01/02/2006", "1/2/06"} {
		if t, err := time.Parse(layout, m[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
