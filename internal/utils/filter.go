// Package utils has small shared helpers for token filtering, filesystem
// checks and TOML handling used across the checker packages.
package utils

import (
	"strings"
	"unicode"
)

// NormalizeToken strips surrounding punctuation from a raw input token and
// lowercases it, so "Hello," and "hello" hit the same dictionary entry.
// Inner punctuation (apostrophes, hyphens) is kept.
func NormalizeToken(token string) string {
	trimmed := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(trimmed)
}

// NormalizeWord prepares a dictionary entry: trim whitespace and lowercase.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsDigits checks if a string contains any numeric digits
func ContainsDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsRepetitive checks if a string consists of one repeated character
// (e.g. "aaa", "zzzz"); those are noise, not misspellings worth flagging
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// IsCheckable reports whether a normalized token should go through the
// spell checker at all. Numbers, digit-bearing identifiers and repeated
// character runs are passed through unchecked rather than flagged.
func IsCheckable(token string) bool {
	if len(token) == 0 {
		return false
	}
	if ContainsDigits(token) {
		return false
	}
	if IsRepetitive(token) {
		return false
	}
	return true
}
