// Package auth implements the bearer token used by the frontend:
// base64(payload_json + "." + hex(HMAC-SHA256(payload_json, secret))).
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

const (
	DefaultSessionTTL = time.Hour
	separator         = "."
)

var (
	ErrInvalidTokenFormat = crerr.New("invalid token format")
	ErrTokenExpired       = crerr.New("token expired")
	ErrInvalidSignature   = crerr.New("signature mismatch")
	ErrUnknownSubject     = crerr.New("token subject does not exist")
	ErrMissingSecret      = crerr.New("token secret is required")
)

// Payload is the signed part of a token. Times are unix seconds.
type Payload struct {
	UserID    int64 `json:"user_id"`
	IssuedAt  int64 `json:"issued_at"`
	ExpiresAt int64 `json:"expires_at"`
}

// SubjectStore reports whether a token subject still exists.
type SubjectStore interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

type Codec struct {
	secret   []byte
	ttl      time.Duration
	subjects SubjectStore
	now      func() time.Time
}

// NewCodec requires a non-empty secret. A non-positive ttl falls back to DefaultSessionTTL.
// subjects may be nil, in which case Validate skips the existence check.
func NewCodec(secret string, ttl time.Duration, subjects SubjectStore) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Codec{
		secret:   []byte(secret),
		ttl:      ttl,
		subjects: subjects,
		now:      time.Now,
	}, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

func (c *Codec) Encode(userID int64) (string, error) {
	now := c.now().Unix()
	payload, err := sonic.Marshal(Payload{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now + int64(c.ttl/time.Second),
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal token payload")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.Write(payload)
	_, _ = buf.WriteString(separator)
	_, _ = buf.WriteString(c.sign(payload))

	return base64.StdEncoding.EncodeToString(buf.B), nil
}

// Decode parses the token structure without checking expiry or signature.
func (c *Codec) Decode(token string) (Payload, error) {
	payload, _, _, err := decode(token)
	return payload, err
}

// Validate checks structure, expiry, signature and subject existence, in that order.
func (c *Codec) Validate(ctx context.Context, token string) (Payload, error) {
	payload, rawPayload, signature, err := decode(token)
	if err != nil {
		return Payload{}, err
	}

	if payload.ExpiresAt < c.now().Unix() {
		return Payload{}, crerr.WithDetailf(ErrTokenExpired, "expired at %d", payload.ExpiresAt)
	}

	expected := c.sign(rawPayload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return Payload{}, ErrInvalidSignature
	}

	if c.subjects != nil {
		exists, err := c.subjects.Exists(ctx, payload.UserID)
		if err != nil {
			return Payload{}, crerr.Wrap(err, "lookup token subject")
		}
		if !exists {
			return Payload{}, crerr.WithDetailf(ErrUnknownSubject, "user_id=%d", payload.UserID)
		}
	}

	return payload, nil
}

// ExtractSubject is a best-effort decode of the user id. It does not verify the token
// and must not be used on its own for authorization decisions.
func (c *Codec) ExtractSubject(token string) (int64, bool) {
	payload, err := c.Decode(token)
	if err != nil {
		return 0, false
	}
	return payload.UserID, true
}

func (c *Codec) sign(payload []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// wirePayload accepts the numeric fields as JSON numbers or numeric strings, since
// legacy logins issued "user_id":"5".
type wirePayload struct {
	UserID    wireInt `json:"user_id"`
	IssuedAt  wireInt `json:"issued_at"`
	ExpiresAt wireInt `json:"expires_at"`
}

type wireInt struct {
	value int64
	set   bool
}

// UnmarshalJSON truncates fractional values, so float timestamps are accepted.
func (w *wireInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		w.value, w.set = v, true
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return crerr.Newf("number out of range: %s", s)
	}
	w.value, w.set = int64(f), true
	return nil
}

func decode(token string) (Payload, []byte, string, error) {
	raw, err := decodeBase64(strings.TrimSpace(token))
	if err != nil {
		return Payload{}, nil, "", crerr.WithDetail(ErrInvalidTokenFormat, "base64 decode failed")
	}

	body, signature, found := strings.Cut(string(raw), separator)
	if !found || body == "" || signature == "" {
		return Payload{}, nil, "", crerr.WithDetail(ErrInvalidTokenFormat, "expected payload.signature")
	}

	var wire wirePayload
	if err := sonic.UnmarshalString(body, &wire); err != nil {
		return Payload{}, nil, "", crerr.WithDetail(ErrInvalidTokenFormat, "payload is not json")
	}
	if !wire.UserID.set || !wire.ExpiresAt.set {
		return Payload{}, nil, "", crerr.WithDetail(ErrInvalidTokenFormat, "missing required payload fields")
	}

	return Payload{
		UserID:    wire.UserID.value,
		IssuedAt:  wire.IssuedAt.value,
		ExpiresAt: wire.ExpiresAt.value,
	}, []byte(body), signature, nil
}

// decodeBase64 also accepts unpadded input.
func decodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, crerr.New("empty token")
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
