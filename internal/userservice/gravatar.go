package userservice

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const (
	avatarSize         = 100
	avatarDefaultStyle = "retro"
	avatarRating       = "g"
	avatarForceDefault = false
)

// AvatarURL maps an email address to its Gravatar image URL. The mapping is
// deterministic and case-insensitive; no network call is made here.
func AvatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=%s&r=%s&f=%t", hash, avatarSize, avatarDefaultStyle, avatarRating, avatarForceDefault)
}
