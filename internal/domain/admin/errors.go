package admin

import "github.com/orbitshare/orbit-api/internal/pkg/apperr"

var (
	ErrConfirmationRequired = apperr.Validation("CONFIRMATION_REQUIRED", "Reset requires confirm=true")
	ErrInvalidMaxAge        = apperr.Validation("INVALID_MAX_AGE", "maxAge must be a positive duration such as 720h")
)
