package dashsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campuskit/homeroom/pkg/httpx"
)

// Error codes carried in the "error" field of failing responses.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnavailable        = "unavailable"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeOutOfScope         = "out_of_scope"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// APIError is the typed error for every failing facade call. It is shared by
// the daemon, which uses WriteError to render responses, and by the SDK
// client, which parses responses back into it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or
	// missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials is returned when no account matches the
	// submitted username and password. Retrying with the same input will
	// not succeed.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	// ErrUnavailable is returned when the shared store could not be
	// reached or answered with something unusable. Worth retrying.
	ErrUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeUnavailable,
		Description: "login failed, try again",
	}

	// ErrInvalidToken is returned when the bearer token is missing, not
	// verifiable, or no longer matches the live session.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the bearer token is missing or no longer valid",
	}

	// ErrForbidden is returned when the session's role may not perform the
	// operation.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "the current session may not perform this operation",
	}

	// ErrOutOfScope is returned when an announcement targets a class the
	// posting session cannot see, or a non-admin posts globally.
	ErrOutOfScope = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeOutOfScope,
		Description: "target class is outside the current scope",
	}

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "referenced record not found",
	}

	// ErrServerError is returned for anything unexpected.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with a custom description while keeping
// the standard response shape.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// parseErrorResponse turns a non-2xx response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Middleware rejections (bearer and role checks) respond without a
	// JSON body; map them by status.
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeInvalidToken, Description: "the bearer token is missing or no longer valid"}
	case http.StatusForbidden:
		return &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeForbidden, Description: "the current session may not perform this operation"}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
