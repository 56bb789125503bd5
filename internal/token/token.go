// Package token issues and verifies the HS256 bearer tokens handed out on
// login. Tokens are compact JWTs carrying the user id and email.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalid covers malformed tokens, bad signatures and claim mismatches.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned for a well-formed token past its expiry.
	ErrExpired = errors.New("token expired")
)

// Claims is the payload of an issued token.
type Claims struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	Issuer    string `json:"iss,omitempty"`
	IssuedAt  int64  `json:"iat"`
	NotBefore int64  `json:"nbf,omitempty"`
	ExpiresAt int64  `json:"exp"`
}

// ID parses the user id claim.
func (c *Claims) ID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager. An empty secret is rejected: tokens signed
// with a guessable key are forgeable.
func NewManager(secret, issuer string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of newly issued tokens.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a token for the given user that expires after the TTL.
func (m *Manager) Issue(userID uuid.UUID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    userID.String(),
		Email:     email,
		Issuer:    m.issuer,
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		ExpiresAt: now.Add(m.ttl).Unix(),
	}

	headerJSON, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." +
		base64.RawURLEncoding.EncodeToString(claimsJSON)
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(m.sign(signingInput)), nil
}

// Verify checks the signature, algorithm, issuer and validity window of a
// token and returns its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments", ErrInvalid)
	}

	headerJSON, err := decodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header encoding", ErrInvalid)
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: header", ErrInvalid)
	}
	// Only HS256 is accepted; "none" and asymmetric algorithms are refused.
	if header.Alg != "HS256" {
		return nil, fmt.Errorf("%w: algorithm %q", ErrInvalid, header.Alg)
	}

	signature, err := decodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature encoding", ErrInvalid)
	}
	if subtle.ConstantTimeCompare(signature, m.sign(parts[0]+"."+parts[1])) != 1 {
		return nil, fmt.Errorf("%w: signature", ErrInvalid)
	}

	claimsJSON, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: claims encoding", ErrInvalid)
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, fmt.Errorf("%w: claims", ErrInvalid)
	}

	now := m.now().Unix()
	if claims.ExpiresAt == 0 || now >= claims.ExpiresAt {
		return nil, ErrExpired
	}
	if claims.NotBefore > 0 && now < claims.NotBefore {
		return nil, fmt.Errorf("%w: not valid before %d", ErrInvalid, claims.NotBefore)
	}
	if m.issuer != "" && claims.Issuer != m.issuer {
		return nil, fmt.Errorf("%w: issuer %q", ErrInvalid, claims.Issuer)
	}
	if _, err := claims.ID(); err != nil {
		return nil, fmt.Errorf("%w: user id claim", ErrInvalid)
	}
	return &claims, nil
}

func (m *Manager) sign(input string) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(input))
	return mac.Sum(nil)
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
