package errors

import (
	"strings"
	"unicode"
)

// maxLemmaLength bounds word lookups coming from the CLI and the HTTP API.
const maxLemmaLength = 128

// ValidateLemma validates a word before it is used as a lexicon lookup key.
//
// Lemmas are stored lowercased with spaces replaced by underscores, so the
// rules are:
//   - No empty lemmas
//   - No control characters
//   - No whitespace other than plain spaces (which lookups fold to '_')
//   - Maximum length of 128 characters
func ValidateLemma(lemma string) error {
	if strings.TrimSpace(lemma) == "" {
		return New(ErrCodeInvalidInput, "word cannot be empty")
	}

	if len(lemma) > maxLemmaLength {
		return New(ErrCodeInvalidInput, "word too long (max %d characters)", maxLemmaLength)
	}

	for _, r := range lemma {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "word contains invalid control characters")
		}
		if unicode.IsSpace(r) && r != ' ' {
			return New(ErrCodeInvalidInput, "word contains invalid whitespace %q", r)
		}
	}

	return nil
}

// NormalizeLemma folds a validated word to the lexicon key form:
// lowercase, trimmed, inner spaces replaced by underscores.
func NormalizeLemma(lemma string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(lemma)), " ", "_")
}
