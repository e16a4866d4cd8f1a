package discord

import (
	"encoding/json"
	"fmt"
)

// APIError is the JSON error body the API attaches to non-2xx
// responses. Code is the platform error code, distinct from the HTTP
// status.
type APIError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// Error codes the library checks for explicitly.
const (
	ErrCodeUnknownChannel         = 10003
	ErrCodeUnknownGuild           = 10004
	ErrCodeUnknownMember          = 10007
	ErrCodeUnknownMessage         = 10008
	ErrCodeUnknownRole            = 10011
	ErrCodeUnknownUser            = 10013
	ErrCodeUnknownWebhook         = 10015
	ErrCodeMissingAccess          = 50001
	ErrCodeCannotSendEmptyMessage = 50006
	ErrCodeMissingPermissions     = 50013
	ErrCodeInvalidFormBody        = 50035
)

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d", e.Code)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}
