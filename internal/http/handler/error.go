package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resumatch/internal/extract"
	"resumatch/internal/http/middleware"
	"resumatch/internal/match"
	"resumatch/internal/nlp"
	"resumatch/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NO_CONTENT", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// serviceError maps domain errors onto HTTP responses. Anything unknown is a 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoContent):
		return writeError(c, fiber.StatusBadRequest, "NO_CONTENT", "no text could be extracted from the document")
	case errors.Is(err, service.ErrNoStructure):
		return writeError(c, fiber.StatusBadRequest, "NO_CONTENT", "no valid content could be extracted from the document")
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "unsupported document format")
	case errors.Is(err, match.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_INPUT", "resume and job description must both contain text")
	case errors.Is(err, nlp.ErrAnnotationTimeout):
		return writeError(c, fiber.StatusGatewayTimeout, "ANNOTATION_TIMEOUT", "annotation service timed out")
	case errors.Is(err, nlp.ErrAnnotationUnavailable):
		return writeError(c, fiber.StatusBadGateway, "ANNOTATION_UNAVAILABLE", "annotation service unavailable")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrWrongKind):
		return writeError(c, fiber.StatusBadRequest, "WRONG_KIND", "document is not a resume")
	case errors.Is(err, service.ErrInvalidKind):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_KIND", "kind must be resume or job_description")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "upload exceeds the size limit")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
