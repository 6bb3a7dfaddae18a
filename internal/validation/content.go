package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxPostLength    = 2000
	maxCommentLength = 500
	maxMessageLength = 2000
	maxBioLength     = 300
)

var hashtagRegex = regexp.MustCompile(`^[\p{L}\p{N}_]{1,50}$`)

var profileColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidatePostContent checks post body length.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return fmt.Errorf("post content must not exceed %d characters", maxPostLength)
	}
	return nil
}

// ValidateCommentContent checks comment body length.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return fmt.Errorf("comment content must not exceed %d characters", maxCommentLength)
	}
	return nil
}

// ValidateMessageContent checks direct message body length.
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return fmt.Errorf("message content must not exceed %d characters", maxMessageLength)
	}
	return nil
}

// ValidateHashtag checks an optional post hashtag. Hashtags are stored
// without the leading '#'; letters in any script are allowed.
func ValidateHashtag(hashtag string) error {
	if hashtag == "" {
		return nil
	}
	if !hashtagRegex.MatchString(hashtag) {
		return fmt.Errorf("hashtag can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidateBio checks profile bio length.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > maxBioLength {
		return fmt.Errorf("bio must not exceed %d characters", maxBioLength)
	}
	return nil
}

// ValidateProfileColor checks a hex color like "#6366F1".
func ValidateProfileColor(color string) error {
	if !profileColorRegex.MatchString(color) {
		return fmt.Errorf("profile color must be a hex color like #6366F1")
	}
	return nil
}
