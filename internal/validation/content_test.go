package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHashtag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		hashtag string
		wantErr bool
	}{
		{"Empty Is Allowed", "", false},
		{"Latin", "music", false},
		{"Cyrillic", "музыка", false},
		{"With Digits", "games2026", false},
		{"Leading Hash Rejected", "#games", true},
		{"Spaces Rejected", "two words", true},
		{"Too Long", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHashtag(tt.hashtag)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePostContent(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidatePostContent(""))
	assert.Error(t, ValidatePostContent("   "))
	assert.Error(t, ValidatePostContent(strings.Repeat("x", 2001)))
	assert.NoError(t, ValidatePostContent(strings.Repeat("x", 2000)))
	assert.NoError(t, ValidatePostContent("привет, сквад"))
}

func TestValidateProfileColor(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateProfileColor("#6366F1"))
	assert.NoError(t, ValidateProfileColor("#abcdef"))
	assert.Error(t, ValidateProfileColor("6366F1"))
	assert.Error(t, ValidateProfileColor("#66F"))
	assert.Error(t, ValidateProfileColor("#gggggg"))
}
