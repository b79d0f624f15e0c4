package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/event-scoring/internal/auth"
	"github.com/riskibarqy/event-scoring/internal/platform/logging"
)

type tokenValidatorFunc func(ctx context.Context, token string) (auth.Payload, error)

func (f tokenValidatorFunc) Validate(ctx context.Context, token string) (auth.Payload, error) {
	return f(ctx, token)
}

type existingSubjects map[int64]bool

func (s existingSubjects) Exists(_ context.Context, id int64) (bool, error) {
	return s[id], nil
}

func TestAuthenticator_MessagesPerFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		header    string
		err       error
		wantMsg   string
		wantKind  error
		wantToken string
	}{
		{name: "missing", header: "", wantMsg: "Authorization header is missing", wantKind: ErrUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantMsg: "Invalid authorization format", wantKind: ErrUnauthorized},
		{name: "lowercase scheme", header: "bearer abc", wantMsg: "Invalid authorization format", wantKind: ErrUnauthorized},
		{name: "format", header: "Bearer abc", err: auth.ErrInvalidTokenFormat, wantMsg: "Invalid token format", wantKind: ErrUnauthorized, wantToken: "abc"},
		{name: "expired", header: "Bearer abc", err: auth.ErrTokenExpired, wantMsg: "Session expired. Please log in again.", wantKind: ErrUnauthorized},
		{name: "signature", header: "Bearer abc", err: auth.ErrInvalidSignature, wantMsg: "Invalid token", wantKind: ErrUnauthorized},
		{name: "subject", header: "Bearer abc", err: auth.ErrUnknownSubject, wantMsg: "Invalid token", wantKind: ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			validator := tokenValidatorFunc(func(_ context.Context, token string) (auth.Payload, error) {
				seen = token
				return auth.Payload{}, tc.err
			})
			_, err := NewAuthenticator(validator, logging.NewNop()).Authenticate(context.Background(), tc.header)
			if !errors.Is(err, tc.wantKind) {
				t.Fatalf("expected %v, got %v", tc.wantKind, err)
			}
			if msg, _ := ClientMessage(err); msg != tc.wantMsg {
				t.Fatalf("unexpected message: got=%q want=%q", msg, tc.wantMsg)
			}
			if tc.wantToken != "" && seen != tc.wantToken {
				t.Fatalf("unexpected token passed to validator: %q", seen)
			}
		})
	}
}

func TestAuthenticator_StoreFailureIsNotUnauthorized(t *testing.T) {
	t.Parallel()

	validator := tokenValidatorFunc(func(context.Context, string) (auth.Payload, error) {
		return auth.Payload{}, errors.New("db down")
	})
	_, err := NewAuthenticator(validator, nil).Authenticate(context.Background(), "Bearer abc")
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestAuthenticator_WithCodec(t *testing.T) {
	t.Parallel()

	codec, err := auth.NewCodec("authenticator-test-secret", time.Hour, existingSubjects{7: true})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	token, err := codec.Encode(7)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	principal, err := NewAuthenticator(codec, nil).Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.UserID != 7 {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	orphan, err := codec.Encode(8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := NewAuthenticator(codec, nil).Authenticate(context.Background(), "Bearer "+orphan); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown subject, got %v", err)
	}
}
