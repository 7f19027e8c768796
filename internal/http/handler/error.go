package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/http/middleware"
	"mediaapi/internal/mediafile"
	"mediaapi/internal/route"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
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

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps service and transfer errors to HTTP responses.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "media not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrURLRequired):
		return writeError(c, fiber.StatusBadRequest, "URL_REQUIRED", "url is required")
	case errors.Is(err, route.ErrSalesChannelRequired):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "sales channel could not be resolved")
	case errors.Is(err, mediafile.ErrMalformedURL):
		return writeError(c, fiber.StatusBadRequest, "MALFORMED_URL", "url must be an absolute http or https url")
	case errors.Is(err, mediafile.ErrUnreachableURL):
		return writeError(c, fiber.StatusUnprocessableEntity, "URL_NOT_REACHABLE", "url is not reachable")
	case errors.Is(err, mediafile.ErrLengthMismatch):
		return writeError(c, fiber.StatusBadRequest, "CONTENT_LENGTH_MISMATCH", "body size does not match Content-Length")
	case errors.Is(err, mediafile.ErrStreamOpen):
		return writeError(c, fiber.StatusInternalServerError, "STREAM_OPEN_ERROR", "could not open stream")
	case errors.Is(err, mediafile.ErrCopyFailure):
		return writeError(c, fiber.StatusBadGateway, "COPY_FAILED", "could not copy stream")
	case errors.Is(err, storage.ErrNotSupported):
		return writeError(c, fiber.StatusNotImplemented, "NOT_IMPLEMENTED", "not supported by the storage backend")
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
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", fe.Message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
