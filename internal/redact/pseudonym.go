package redact

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// digestLen is the hex digest prefix length embedded in tokens.
// Fixed: token width must not vary with the raw value.
const digestLen = 16

// Pseudonymiser derives deterministic replacement tokens from a
// secret key. Tokens are one-way: without the key the raw value
// cannot be recovered, and equal (category, value) pairs always map
// to the same token.
type Pseudonymiser struct {
	secret []byte
}

// NewPseudonymiser creates a pseudonymiser keyed by secret.
func NewPseudonymiser(secret string) *Pseudonymiser {
	return &Pseudonymiser{secret: []byte(secret)}
}

// Token returns the replacement token for a detected value:
// <CATEGORY:digest>, where digest is the first 16 hex characters of
// HMAC-SHA256(secret, category + "::" + value). Pure function of the
// key and its two arguments.
func (p *Pseudonymiser) Token(category domain.Category, value string) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(string(category) + "::" + value))
	digest := hex.EncodeToString(mac.Sum(nil))[:digestLen]
	return fmt.Sprintf("<%s:%s>", category, digest)
}
