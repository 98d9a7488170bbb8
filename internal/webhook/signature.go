package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const (
	// SignatureHeader carries the HMAC-SHA256 signature of the raw body.
	SignatureHeader = "X-Hub-Signature-256"
	// EventHeader names the GitHub event type.
	EventHeader = "X-GitHub-Event"
	// DeliveryHeader carries the GitHub delivery GUID.
	DeliveryHeader = "X-GitHub-Delivery"

	signaturePrefix = "sha256="
)

// Sign returns the X-Hub-Signature-256 value for body under secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against the raw request body. An empty secret
// disables verification and every delivery passes.
func Verify(body []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(body, secret)), []byte(signature))
}
