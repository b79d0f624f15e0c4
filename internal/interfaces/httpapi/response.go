package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/event-scoring/internal/usecase"
)

const internalErrorMessage = "Internal server error"

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeMessage(ctx context.Context, w http.ResponseWriter, message string) {
	writeJSON(ctx, w, http.StatusOK, messageBody{Message: message})
}

// writeError never exposes the text of an unclassified error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorBody{Error: mapped.Message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	status, fallback := classify(err)
	if status == http.StatusInternalServerError {
		return mappedError{HTTPStatus: status, Message: internalErrorMessage}
	}
	if msg, ok := usecase.ClientMessage(err); ok {
		return mappedError{HTTPStatus: status, Message: msg}
	}
	return mappedError{HTTPStatus: status, Message: fallback}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, usecase.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "Method not allowed"
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, "Service unavailable"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// clientError builds a usecase error for conditions detected by the HTTP layer itself.
func clientError(kind error, message string) error {
	return &usecase.Error{Kind: kind, Message: message}
}
