package errors

import (
	"errors"
	"net/http"

	"causajusta/internal/upstream"
)

var (
	// ErrSessionRequired is returned when no usable session accompanies a request.
	ErrSessionRequired = errors.New("session required")
	// ErrForbiddenRole is returned when the session role does not permit an action.
	ErrForbiddenRole = errors.New("role does not permit this action")
	// ErrDraftNotFound is returned when a campaign draft is not found.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrImageLimitExceeded is returned when more than the allowed images are queued.
	ErrImageLimitExceeded = errors.New("image limit exceeded")
	// ErrImageTooLarge is returned when an image exceeds the size limit.
	ErrImageTooLarge = errors.New("image too large")
	// ErrImageTypeInvalid is returned for unsupported image MIME types.
	ErrImageTypeInvalid = errors.New("unsupported image type")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain and upstream errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrSessionRequired), errors.Is(err, upstream.ErrSessionExpired):
		return NewHTTPError(http.StatusUnauthorized, "session required", "SESSION_REQUIRED")
	case errors.Is(err, ErrForbiddenRole):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN_ROLE")
	case errors.Is(err, ErrDraftNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DRAFT_NOT_FOUND")
	case errors.Is(err, ErrImageLimitExceeded):
		return NewHTTPError(http.StatusBadRequest, "no se pueden subir más de 5 imágenes", "IMAGE_LIMIT_EXCEEDED")
	case errors.Is(err, ErrImageTooLarge):
		return NewHTTPError(http.StatusBadRequest, "cada imagen debe pesar menos de 5MB", "IMAGE_TOO_LARGE")
	case errors.Is(err, ErrImageTypeInvalid):
		return NewHTTPError(http.StatusBadRequest, "formato de imagen no soportado", "IMAGE_TYPE_INVALID")
	case errors.Is(err, upstream.ErrSlugTaken):
		return NewHTTPError(http.StatusConflict, "esa URL de campaña ya está en uso", "SLUG_TAKEN")
	case errors.Is(err, upstream.ErrRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, "demasiadas solicitudes, intentá de nuevo en unos minutos", "RATE_LIMITED")
	case errors.Is(err, upstream.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "recurso no encontrado", "NOT_FOUND")
	default:
		var ue *upstream.Error
		if errors.As(err, &ue) {
			return NewHTTPError(ue.Status, ue.Message, "UPSTREAM_ERROR")
		}
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
