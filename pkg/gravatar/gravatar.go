// Package gravatar derives deterministic avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL returns the Gravatar image URL for the given email: 200px, PG rated,
// identicon fallback for addresses without a registered avatar.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=identicon", hex.EncodeToString(sum[:]))
}
