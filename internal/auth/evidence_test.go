package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceCodecRoundTrip(t *testing.T) {
	codec := NewEvidenceCodec("test-secret", time.Hour)
	ev := Evidence{Token: "abc", Name: "Anita", Role: "Advocate", LoggedOutAt: ""}

	signed, err := codec.Encode(ev, time.Now())
	require.NoError(t, err)

	got, err := codec.Decode(signed, time.Now())
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestEvidenceCodecRejects(t *testing.T) {
	codec := NewEvidenceCodec("test-secret", time.Hour)
	ev := Evidence{Token: "abc", Name: "Anita", Role: "Judge"}

	// Test case 1: another key
	signed, err := NewEvidenceCodec("other-secret", time.Hour).Encode(ev, time.Now())
	require.NoError(t, err)
	_, err = codec.Decode(signed, time.Now())
	assert.ErrorIs(t, err, ErrInvalidEvidence)

	// Test case 2: expired
	signed, err = codec.Encode(ev, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = codec.Decode(signed, time.Now())
	assert.ErrorIs(t, err, ErrInvalidEvidence)

	// Test case 3: garbage
	_, err = codec.Decode("not-a-jwt", time.Now())
	assert.ErrorIs(t, err, ErrInvalidEvidence)

	// Test case 4: unsigned token
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "Anita", "tok": "abc"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Decode(unsigned, time.Now())
	assert.ErrorIs(t, err, ErrInvalidEvidence)
}

func TestEvidenceCodecWithoutExpiry(t *testing.T) {
	codec := NewEvidenceCodec("test-secret", 0)

	signed, err := codec.Encode(Evidence{Name: "Anita", LoggedOutAt: "1700000000.000000"}, time.Now().Add(-24*time.Hour*365))
	require.NoError(t, err)

	got, err := codec.Decode(signed, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "1700000000.000000", got.LoggedOutAt)
	assert.Empty(t, got.Token)
}

func TestEvidenceCodecDecodeAt(t *testing.T) {
	codec := NewEvidenceCodec("test-secret", time.Hour)
	issued := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	signed, err := codec.Encode(Evidence{Token: "abc", Name: "Anita"}, issued)
	require.NoError(t, err)

	_, err = codec.Decode(signed, issued.Add(30*time.Minute))
	assert.NoError(t, err)

	_, err = codec.Decode(signed, issued.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidEvidence)
}
