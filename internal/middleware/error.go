package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrInvalidThreadSpec):
		code = fiber.StatusUnprocessableEntity
		errorCode = "INVALID_THREAD_SPEC"
		message = err.Error()
	case errors.Is(err, domain.ErrThreadNotFound):
		code = fiber.StatusNotFound
		errorCode = "THREAD_NOT_FOUND"
		message = "Thread not found"
	case errors.Is(err, domain.ErrSenderNotAuthorized):
		code = fiber.StatusForbidden
		errorCode = "SENDER_NOT_AUTHORIZED"
		message = "Sender is not authorized for this thread"
	case errors.Is(err, domain.ErrNotAuthorized):
		code = fiber.StatusForbidden
		errorCode = "NOT_AUTHORIZED"
		message = "Insufficient organization role"
	case errors.Is(err, domain.ErrCounterInconsistency):
		// Fail closed: never answer with a counter we know is wrong.
		errorCode = "COUNTER_INCONSISTENCY"
	default:
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message

			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusConflict:
				errorCode = "CONFLICT"
			case fiber.StatusUnprocessableEntity:
				errorCode = "VALIDATION_ERROR"
			}
		}
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
