package platform

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIdentity obfuscates a sender identity (phone-number-like string) before it
// is logged or persisted. Raw identities never leave the transport layer.
func HashIdentity(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:8])
}
