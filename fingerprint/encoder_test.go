package fingerprint

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	compressed := Compress([]uint32{1, 2, 3, 4}, 1)

	text := Encode(compressed)
	for _, r := range text {
		if r == '+' || r == '/' || r == '=' {
			t.Fatalf("encoded text must be URL-safe and unpadded, got %q", text)
		}
	}

	back, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(back) != string(compressed) {
		t.Errorf("round trip mismatch: got %v, want %v", back, compressed)
	}
}
