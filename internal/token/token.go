package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("Token has expired")
	ErrTokenInvalid = errors.New("Unauthorized")
)

// Service issues and verifies the HMAC-signed bearer credentials that
// identify a customer. It is a pure function of the signing secret and
// the payload; the secret is fixed at startup.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed credential for the given customer id. The
// lifetime is the service's fixed TTL (24h by default).
func (s *Service) Issue(subjectID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the customer id the
// token was issued for. It fails closed: any mismatch rejects.
func (s *Service) Verify(tokenString string) (int64, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !parsed.Valid {
		return 0, ErrTokenInvalid
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrTokenInvalid
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

// Extract pulls the credential out of an Authorization header value.
// Absence is not an error at this layer; callers decide whether a token
// is required.
func Extract(authorizationHeader string) string {
	if authorizationHeader == "" {
		return ""
	}
	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
