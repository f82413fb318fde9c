package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageCodePattern(t *testing.T) {
	valid := []string{"en", "zh", "en-us", "pt-br", "ca@valencia"}
	for _, code := range valid {
		assert.True(t, languageCodePattern.MatchString(code), "expected %q to be valid", code)
	}

	invalid := []string{"", "E", "EN", "en-US", "english", "en_us", "e", "en-"}
	for _, code := range invalid {
		assert.False(t, languageCodePattern.MatchString(code), "expected %q to be invalid", code)
	}
}
