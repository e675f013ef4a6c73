package navigation

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidViewToken is returned for a view token that fails verification or belongs to
// another session.
var ErrInvalidViewToken = errors.New("invalid view token")

const viewTokenIssuer = "storefront-client"

// ViewClaims pins what one render showed: its page, item ids and uid. Actions that carry the
// token act on that render even after the session has moved on to another one.
type ViewClaims struct {
	View       View     `json:"view"`
	Page       int      `json:"page,omitempty"`
	Count      int      `json:"count,omitempty"`
	Category   string   `json:"category,omitempty"`
	Query      string   `json:"query,omitempty"`
	UID        string   `json:"uid,omitempty"`
	ProductID  string   `json:"pid,omitempty"`
	Items      []string `json:"items,omitempty"`
	Generation uint64   `json:"gen"`
	jwt.RegisteredClaims
}

// Shows reports whether pid was one of the render's display items.
func (c *ViewClaims) Shows(pid string) bool {
	for _, item := range c.Items {
		if item == pid {
			return true
		}
	}
	return false
}

// ViewSigner issues and verifies view tokens. Tokens do not expire; they are only as
// useful as the session they name.
type ViewSigner struct {
	secretKey []byte
}

func NewViewSigner(secretKey []byte) *ViewSigner {
	return &ViewSigner{secretKey: secretKey}
}

// GenerateViewSecret returns a random signing key for deployments without a configured one.
// Tokens signed with it are only valid on this replica until restart.
func GenerateViewSecret() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Sign issues the token for one render.
func (s *ViewSigner) Sign(claims *ViewClaims, now time.Time) (string, error) {
	claims.Issuer = viewTokenIssuer
	claims.IssuedAt = jwt.NewNumericDate(now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Parse verifies tokenString and checks that it was issued to sessionID.
func (s *ViewSigner) Parse(tokenString, sessionID string) (*ViewClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ViewClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidViewToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidViewToken
	}

	claims, ok := token.Claims.(*ViewClaims)
	if !ok || !token.Valid || claims.Issuer != viewTokenIssuer || claims.Subject != sessionID {
		return nil, ErrInvalidViewToken
	}
	return claims, nil
}
