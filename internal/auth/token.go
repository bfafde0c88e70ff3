package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// TokenTTL is the fixed validity window of an issued admin token. There is
// deliberately no refresh mechanism; an expired token means a new login.
const TokenTTL = time.Hour

// tokenHeader is constant for every token this service issues.
const tokenHeader = `{"typ":"JWT","alg":"HS256"}`

// Claims is the payload carried inside an admin token.
type Claims struct {
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenStatus is the outcome of verifying a token.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenMalformed
	TokenBadSignature
	TokenExpired
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenMalformed:
		return "malformed"
	case TokenBadSignature:
		return "bad signature"
	case TokenExpired:
		return "expired"
	}
	return "unknown"
}

// TokenService issues and verifies self-contained admin session tokens:
// three dot-separated base64url segments (header, payload, signature) where
// the signature is HMAC-SHA256 over header "." payload under the server
// secret. No server-side session state exists.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue builds a token for the given admin email, valid for TokenTTL from
// now. It always succeeds for a well-formed email.
func (ts *TokenService) Issue(email string) string {
	return ts.IssueAt(email, time.Now())
}

// IssueAt issues a token as of the given instant.
func (ts *TokenService) IssueAt(email string, now time.Time) string {
	claims := Claims{
		Email:     email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(TokenTTL).Unix(),
	}
	payload, _ := json.Marshal(claims)

	header := base64.RawURLEncoding.EncodeToString([]byte(tokenHeader))
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + "." + ts.sign(header+"."+body)
}

// Verify checks the token's shape, signature and expiry, in that order, and
// returns the decoded claims when everything holds.
func (ts *TokenService) Verify(token string) (Claims, TokenStatus) {
	if token == "" {
		return Claims{}, TokenMalformed
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, TokenMalformed
	}

	expected := ts.sign(parts[0] + "." + parts[1])
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return Claims{}, TokenBadSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, TokenMalformed
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, TokenMalformed
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return Claims{}, TokenExpired
	}

	return claims, TokenValid
}

func (ts *TokenService) sign(signingInput string) string {
	mac := hmac.New(sha256.New, ts.secret)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
