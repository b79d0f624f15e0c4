package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/event-scoring/internal/auth"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"github.com/riskibarqy/event-scoring/internal/platform/logging"
)

const bearerPrefix = "Bearer "

// TokenValidator is satisfied by *auth.Codec.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (auth.Payload, error)
}

// Authenticator turns an Authorization header into a Principal.
type Authenticator struct {
	tokens TokenValidator
	logger *logging.Logger
}

func NewAuthenticator(tokens TokenValidator, logger *logging.Logger) *Authenticator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Authenticator{tokens: tokens, logger: logger}
}

func (a *Authenticator) Authenticate(ctx context.Context, header string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Authenticator.Authenticate")
	defer span.End()

	if strings.TrimSpace(header) == "" {
		return user.Principal{}, unauthorized("Authorization header is missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return user.Principal{}, unauthorized("Invalid authorization format")
	}

	payload, err := a.tokens.Validate(ctx, strings.TrimPrefix(header, bearerPrefix))
	if err == nil {
		return user.Principal{UserID: payload.UserID}, nil
	}

	switch {
	case errors.Is(err, auth.ErrInvalidTokenFormat):
		a.logger.WarnContext(ctx, "token rejected", "reason", "format", "error", err)
		return user.Principal{}, unauthorized("Invalid token format")
	case errors.Is(err, auth.ErrTokenExpired):
		a.logger.WarnContext(ctx, "token rejected", "reason", "expired", "error", err)
		return user.Principal{}, unauthorized("Session expired. Please log in again.")
	case errors.Is(err, auth.ErrInvalidSignature):
		a.logger.WarnContext(ctx, "token rejected", "reason", "signature", "error", err)
		return user.Principal{}, unauthorized("Invalid token")
	case errors.Is(err, auth.ErrUnknownSubject):
		a.logger.WarnContext(ctx, "token rejected", "reason", "subject", "error", err)
		return user.Principal{}, unauthorized("Invalid token")
	default:
		return user.Principal{}, fmt.Errorf("validate token: %w", err)
	}
}
