package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

/* HMAC-SHA256 request signing.
 * The signature is computed over the exact bytes transmitted in the
 * request body - callers must sign the same buffer they send, never a
 * re-serialization of it.
 */

// Header is the request header carrying the signature
const Header = "X-Webhook-Signature"

// Prefix identifies the digest algorithm in the header value
const Prefix = "sha256="

// Sign returns the signature header value for the payload:
// "sha256=" followed by the hex-encoded HMAC-SHA256 digest, using the
// secret as the MAC key and the payload bytes as the message.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return Prefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature header value against the payload using
// constant-time comparison to prevent timing attacks
func Verify(secret string, payload []byte, header string) bool {
	expected := Sign(secret, payload)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(header)) == 1
}
