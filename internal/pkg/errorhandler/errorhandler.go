package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
)

// StoreFailure logs a record store failure and sends a generic, localized 500.
// Nothing about err reaches the client.
func StoreFailure(ctx context.Context, w http.ResponseWriter, tr i18n.Translator, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("operation", operation).
		Err(err).
		Msg("Store failure")

	if tr == nil {
		tr = i18n.Static{}
	}
	message := tr.T(i18n.FromContext(ctx), i18n.KeyGenericError, nil)
	response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// Panic logs a recovered panic with its stack and sends a generic 500.
func Panic(ctx context.Context, w http.ResponseWriter, panicErr interface{}, stackTrace string) {
	logger.FromContext(ctx).Error().
		Interface("panic_error", panicErr).
		Str("panic_stack", stackTrace).
		Msg("Request panic")

	response.InternalError(w)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	logger.FromContext(ctx).Warn().
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}
