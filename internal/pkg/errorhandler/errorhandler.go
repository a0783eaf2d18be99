package errorhandler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	"github.com/orbitshare/orbit-api/internal/pkg/logger"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
)

// HandleError logs err at the severity of its kind and writes the matching
// envelope. Storage failures reach the caller as a generic message only.
func HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	e, ok := apperr.As(err)
	if !ok {
		logger.FromContext(ctx).Error().Err(err).Msg("Unclassified request error")
		response.InternalError(w)
		return
	}

	event := eventFor(logger.FromContext(ctx), e.Kind).
		Err(err).
		Str("error_code", e.Code).
		Str("error_kind", e.Kind.String())
	event.Msg("Request error")

	switch e.Kind {
	case apperr.KindValidation:
		status := http.StatusBadRequest
		if e.Code == CodeTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		response.Error(w, status, e.Code, e.Message)
	case apperr.KindNotFound:
		response.Error(w, http.StatusNotFound, e.Code, e.Message)
	case apperr.KindStorage:
		response.Error(w, http.StatusInternalServerError, e.Code, "A storage error occurred, please retry")
	default:
		response.InternalError(w)
	}
}

// CodeTooLarge is the validation code answered with 413.
const CodeTooLarge = "REJECTED_TOO_LARGE"

// LogOutcome records a non-fatal classified condition without responding.
// Partial failures log at warn, degraded fallbacks at debug.
func LogOutcome(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}
	eventFor(logger.FromContext(ctx), apperr.KindOf(err)).Err(err).Msg(msg)
}

func eventFor(l *zerolog.Logger, kind apperr.Kind) *zerolog.Event {
	switch kind {
	case apperr.KindValidation, apperr.KindNotFound, apperr.KindDegradedFallback:
		return l.Debug()
	case apperr.KindPartialFailure:
		return l.Warn()
	default:
		return l.Error()
	}
}
