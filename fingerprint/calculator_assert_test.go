package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedHeaderFieldsWithAssertions(t *testing.T) {
	subs := []uint32{1, 2, 4, 8, 16}
	out := Compress(subs, 7)

	require.GreaterOrEqual(t, len(out), 4, "compressed output must at least contain the header")
	assert.Equal(t, byte(7), out[0], "algorithm byte")
	assert.Equal(t, byte(0), out[1])
	assert.Equal(t, byte(0), out[2])
	assert.Equal(t, byte(len(subs)), out[3])
}

func TestFingerprinterFingerprintGrowsMonotonicallyWithAssertions(t *testing.T) {
	fp := New(44100)
	fp.Feed(sineWave(44100, 44100, 440))
	firstLen := len(fp.Fingerprint())

	fp.Feed(sineWave(44100, 44100, 440))
	fp.Finish()
	secondLen := len(fp.Fingerprint())

	assert.GreaterOrEqual(t, secondLen, firstLen, "feeding more audio must never shrink the fingerprint")
}
