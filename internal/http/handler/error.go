package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/logger"
	"storeadmin/internal/service"
	"storeadmin/internal/storage"
	"storeadmin/internal/validate"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Status    string        `json:"status"`
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Status:    "error",
		RequestID: middleware.GetRequestID(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// serviceErrors maps sentinels to their HTTP status and code. The sentinel
// text is safe for display and becomes the message.
var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrIDRequired, fiber.StatusBadRequest, "BAD_REQUEST"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED"},

	{service.ErrEmailTaken, fiber.StatusConflict, "EMAIL_TAKEN"},
	{service.ErrSlugTaken, fiber.StatusConflict, "SLUG_TAKEN"},
	{service.ErrPromotionTaken, fiber.StatusConflict, "PROMOTION_TAKEN"},
	{service.ErrAlreadyReviewed, fiber.StatusConflict, "ALREADY_REVIEWED"},
	{service.ErrAlreadyMember, fiber.StatusConflict, "ALREADY_MEMBER"},
	{service.ErrInvitationPending, fiber.StatusConflict, "INVITATION_PENDING"},
	{service.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{service.ErrInUse, fiber.StatusConflict, "IN_USE"},
	{service.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{service.ErrMembershipInactive, fiber.StatusConflict, "MEMBERSHIP_INACTIVE"},
	{service.ErrInvitationInvalid, fiber.StatusConflict, "INVITATION_INVALID"},
	{service.ErrInvitationExpired, fiber.StatusGone, "INVITATION_EXPIRED"},

	{service.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION"},
	{service.ErrPromotionInvalid, fiber.StatusUnprocessableEntity, "PROMOTION_INVALID"},

	{storage.ErrEmptyFile, fiber.StatusBadRequest, "FILE_EMPTY"},
	{storage.ErrTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{storage.ErrUnsupportedType, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE"},
}

// fail translates err into the error envelope. Unknown errors are logged and
// reported as 500 without detail.
func fail(c *fiber.Ctx, err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(errorPayload{
			Status:    "error",
			RequestID: middleware.GetRequestID(c),
			Error: errorEnvelope{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  verr.Fields,
			},
		})
	}

	var berr *badRequest
	if errors.As(err, &berr) {
		return writeError(c, fiber.StatusBadRequest, berr.code, berr.message)
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return writeFiberError(c, ferr)
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.err.Error())
		}
	}

	logger.From(c.UserContext()).Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func writeFiberError(c *fiber.Ctx, e *fiber.Error) error {
	switch e.Code {
	case fiber.StatusBadRequest:
		return writeError(c, e.Code, "BAD_REQUEST", "bad request")
	case fiber.StatusUnauthorized:
		return writeError(c, e.Code, "UNAUTHORIZED", e.Message)
	case fiber.StatusForbidden:
		return writeError(c, e.Code, "FORBIDDEN", e.Message)
	case fiber.StatusNotFound:
		return writeError(c, e.Code, "NOT_FOUND", "resource not found")
	case fiber.StatusMethodNotAllowed:
		return writeError(c, e.Code, "METHOD_NOT_ALLOWED", "method not allowed")
	case fiber.StatusRequestEntityTooLarge:
		return writeError(c, e.Code, "PAYLOAD_TOO_LARGE", "request body is too large")
	case fiber.StatusTooManyRequests:
		return writeError(c, e.Code, "RATE_LIMITED", "too many requests, slow down")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return fail(c, err)
	}
}
