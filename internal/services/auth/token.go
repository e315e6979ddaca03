package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerScheme is the only accepted Authorization scheme.
const BearerScheme = "Bearer"

// Claims is the identity carried by every issued token.
type Claims struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	jwt.RegisteredClaims
}

// Validate is invoked by the jwt parser after the registered claims pass.
func (c Claims) Validate() error {
	if c.ID == "" {
		return ErrMissingSubject
	}
	return nil
}

// Issuer signs tokens for registered users.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an HS256 issuer. A zero ttl issues tokens without "exp".
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token embedding the user's id and coordinates.
func (i *Issuer) Issue(id string, latitude, longitude float64) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		ID:        id,
		Latitude:  latitude,
		Longitude: longitude,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := Sign(i.secret, claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenToken, err)
	}
	return signed, nil
}

// Sign produces an HS256 token for claims.
func Sign(secret []byte, claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks raw against secret and returns its claims. It keeps no state;
// every call re-validates signature, algorithm and expiry.
func Verify(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, KeyFunc(secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// KeyFunc resolves the HMAC key for HS256 tokens and refuses every other
// signing method, including the other HMAC sizes.
func KeyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}
}

// BearerToken extracts the token from an Authorization header value. The
// header must be exactly two space separated parts, the first being "Bearer".
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != BearerScheme || parts[1] == "" {
		return "", ErrMalformedHeader
	}
	return parts[1], nil
}
