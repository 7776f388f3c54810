package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature recomputes the callback HMAC and compares it against the
// client-supplied signature. The canonical message is "{orderID}|{paymentID}"
// and the expected signature is the lowercase hex HMAC-SHA256 under the key
// secret. hmac.Equal keeps the comparison constant-time.
//
// A mismatch returns (false, nil): an expected outcome of the security check,
// distinct from the configuration error for a missing secret.
func VerifySignature(orderID, paymentID, signature, secret string) (bool, error) {
	if secret == "" {
		return false, ErrMissingCredentials
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
