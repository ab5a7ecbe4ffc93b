package render

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBase = "https://gravatar.com/avatar/"

// Gravatar returns the avatar URL for email.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBase + hex.EncodeToString(sum[:])
}
