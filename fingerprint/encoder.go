package fingerprint

import "encoding/base64"

// Encode renders a compressed fingerprint as URL-safe, unpadded base64
// text, matching the textual form used by AcoustID clients.
func Encode(compressed []byte) string {
	return base64.RawURLEncoding.EncodeToString(compressed)
}

// Decode parses the textual form produced by Encode back into a
// compressed fingerprint.
func Decode(text string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(text)
}
