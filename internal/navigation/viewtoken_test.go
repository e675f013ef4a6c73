package navigation

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSigner_RoundTrip(t *testing.T) {
	signer := NewViewSigner([]byte("secret"))
	claims := &ViewClaims{
		View:       ViewListing,
		Page:       3,
		Count:      16,
		UID:        "U1",
		Items:      []string{"A1", "A2"},
		Generation: 9,
	}
	claims.ID = "render-1"
	claims.Subject = "s1"

	token, err := signer.Sign(claims, time.Date(2024, 3, 9, 19, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	parsed, err := signer.Parse(token, "s1")
	require.NoError(t, err)
	assert.Equal(t, ViewListing, parsed.View)
	assert.Equal(t, 3, parsed.Page)
	assert.Equal(t, uint64(9), parsed.Generation)
	assert.Equal(t, "render-1", parsed.ID)
	assert.Equal(t, "storefront-client", parsed.Issuer)
	assert.True(t, parsed.Shows("A2"))
	assert.False(t, parsed.Shows("B1"))
}

func TestViewSigner_Rejects(t *testing.T) {
	signer := NewViewSigner([]byte("secret"))
	claims := &ViewClaims{View: ViewDetail, ProductID: "P1"}
	claims.Subject = "s1"
	token, err := signer.Sign(claims, time.Now())
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		sessionID string
	}{
		{name: "empty", token: "", sessionID: "s1"},
		{name: "other session", token: token, sessionID: "s2"},
		{name: "tampered", token: token + "x", sessionID: "s1"},
		{name: "unsigned", token: unsigned, sessionID: "s1"},
		{name: "other key", token: mustSign(t, NewViewSigner([]byte("other")), claims), sessionID: "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Parse(tt.token, tt.sessionID)
			assert.ErrorIs(t, err, ErrInvalidViewToken)
		})
	}
}

func TestGenerateViewSecret(t *testing.T) {
	first, err := GenerateViewSecret()
	require.NoError(t, err)
	second, err := GenerateViewSecret()
	require.NoError(t, err)

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}

func mustSign(t *testing.T, signer *ViewSigner, claims *ViewClaims) string {
	t.Helper()
	token, err := signer.Sign(claims, time.Now())
	require.NoError(t, err)
	return token
}
