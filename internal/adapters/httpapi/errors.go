package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	coredemon "github.com/example/demonlist/internal/core/demon"
	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/logging"
	"github.com/example/demonlist/internal/ports/secondary"
)

// Codes for failures that are not validation errors.
const (
	CodeBadRequest = 40000
	CodeNotFound   = 40400
	CodeConflict   = 40900
	CodeInternal   = 50000
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// badRequestError marks malformed input that never reached a service.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &badRequestError{msg: msg}
}

// statusFor maps err to an HTTP status and response body.
func statusFor(err error) (int, errorBody) {
	var validationErr *coredemon.ValidationError
	if errors.As(err, &validationErr) {
		data := make(map[string]any, len(validationErr.Data)+1)
		for k, v := range validationErr.Data {
			data[k] = v
		}
		if validationErr.Field != "" {
			data["field"] = validationErr.Field
		}
		return http.StatusUnprocessableEntity, errorBody{Code: validationErr.Code, Message: validationErr.Message, Data: data}
	}

	var badReq *badRequestError
	if errors.As(err, &badReq) {
		return http.StatusBadRequest, errorBody{Code: CodeBadRequest, Message: badReq.msg, Data: map[string]any{}}
	}

	var conflictErr *coreplayer.ConflictError
	if errors.As(err, &conflictErr) || errors.Is(err, secondary.ErrConflict) {
		return http.StatusConflict, errorBody{Code: CodeConflict, Message: "the request conflicted with a concurrent change, retry it", Data: map[string]any{}}
	}

	if errors.Is(err, secondary.ErrNotFound) {
		return http.StatusNotFound, errorBody{Code: CodeNotFound, Message: "the requested resource was not found", Data: map[string]any{}}
	}

	return http.StatusInternalServerError, errorBody{Code: CodeInternal, Message: "internal server error", Data: map[string]any{}}
}

func writeError(ctx context.Context, w http.ResponseWriter, logger *zap.Logger, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(ctx, logger).Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// dataResponse wraps successful payloads.
type dataResponse struct {
	Data any `json:"data"`
}
