package utils // package utils provides helper functions for token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// VisitToken represents a signed JWT binding a browser tab to its
// checkout visit.  The Token field contains the JWT string; Exp
// stores the expiration as a time.Time.  The checkout is anonymous,
// so the token carries only the visit id and no user identity.
type VisitToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewVisitToken builds and signs an HS256 JWT for a checkout visit.
// It takes the signing secret, the visit ID and a TTL in minutes.
// The JWT includes the visit id (vid), expiration (exp) and issued
// at (iat) claims.
func NewVisitToken(secret, visitID string, ttlMin int) (VisitToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"vid": visitID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return VisitToken{}, err
	}
	return VisitToken{Token: signed, Exp: exp}, nil
}
