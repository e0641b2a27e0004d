package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/crypto"
)

// Cheap scrypt costs keep the tests fast.
var testParams = crypto.Params{N: 1 << 10, R: 8, P: 1}

func TestSealOpen_RoundTrip(t *testing.T) {
	blob, err := crypto.Seal("correct horse", []byte(`{"token":"A1"}`), testParams)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "A1")

	pt, err := crypto.Open("correct horse", blob)
	require.NoError(t, err)
	assert.Equal(t, `{"token":"A1"}`, string(pt))
}

func TestOpen_WrongPassphrase(t *testing.T) {
	blob, err := crypto.Seal("correct horse", []byte("secret"), testParams)
	require.NoError(t, err)

	_, err = crypto.Open("battery staple", blob)
	assert.ErrorIs(t, err, crypto.ErrWrongPassphrase)
}

func TestSeal_FreshSaltEachTime(t *testing.T) {
	a, err := crypto.Seal("pw", []byte("same"), testParams)
	require.NoError(t, err)
	b, err := crypto.Seal("pw", []byte("same"), testParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestWipe(t *testing.T) {
	b := []byte("sensitive")
	crypto.Wipe(b)
	assert.Equal(t, make([]byte, len("sensitive")), b)
}

func TestFingerprint(t *testing.T) {
	assert.Empty(t, crypto.Fingerprint(""))
	fp := crypto.Fingerprint("A1")
	assert.Len(t, fp, 12)
	assert.Equal(t, fp, crypto.Fingerprint("A1"))
	assert.NotEqual(t, fp, crypto.Fingerprint("A2"))
}
