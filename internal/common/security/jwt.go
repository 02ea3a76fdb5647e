package security

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIDClaim = "sid"

// SessionSigner wraps opaque session tokens in HS256-signed envelopes that are
// handed to clients as a cookie or bearer token.
type SessionSigner struct {
	auth       *jwtauth.JWTAuth
	cookieName string
}

func NewSessionSigner(secret []byte, cookieName string) *SessionSigner {
	return &SessionSigner{
		auth:       jwtauth.New("HS256", secret, nil),
		cookieName: cookieName,
	}
}

func (s *SessionSigner) Auth() *jwtauth.JWTAuth {
	return s.auth
}

func (s *SessionSigner) CookieName() string {
	return s.cookieName
}

func (s *SessionSigner) Sign(sessionToken string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		sessionIDClaim: sessionToken,
		"exp":          expiresAt.Unix(),
		"iat":          time.Now().Unix(),
	}
	_, tokenString, err := s.auth.Encode(claims)
	return tokenString, err
}

// Open verifies a signed envelope and returns the session token inside it.
func (s *SessionSigner) Open(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil {
		return "", err
	}
	return GetSessionIDFromClaims(token.PrivateClaims())
}

// TokenFromCookie finds the signed envelope in the session cookie.
func (s *SessionSigner) TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// TokenFromRequest prefers a bearer token and falls back to the session cookie
// when the header is missing or does not verify.
func (s *SessionSigner) TokenFromRequest(r *http.Request) string {
	bearer := jwtauth.TokenFromHeader(r)
	if bearer == "" {
		return s.TokenFromCookie(r)
	}
	if _, err := jwtauth.VerifyToken(s.auth, bearer); err == nil {
		return bearer
	}
	if cookie := s.TokenFromCookie(r); cookie != "" {
		return cookie
	}
	return bearer
}

func GetSessionIDFromClaims(claims jwt.MapClaims) (string, error) {
	sid, ok := claims[sessionIDClaim].(string)
	if !ok || sid == "" {
		return "", errors.New("sid claim is missing or not a string")
	}
	return sid, nil
}
