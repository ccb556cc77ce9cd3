package utils

import (
	"regexp"
	"strings"
)

// NormalizeEmail lowercases and trims an email for storage consistency
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeEmails normalizes a slice of emails
func NormalizeEmails(emails []string) []string {
	normalized := make([]string, len(emails))
	for i, email := range emails {
		normalized[i] = NormalizeEmail(email)
	}
	return normalized
}

// DedupeEmails returns the unique normalized emails, preserving first-seen order
func DedupeEmails(emails []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, email := range emails {
		email = NormalizeEmail(email)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		result = append(result, email)
	}
	return result
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")

	cleaned = strings.TrimSpace(cleaned)
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")

	return cleaned
}
