package response

import (
	"errors"

	"prsk-lab/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MessageOK                = "OK"
	MessageCreated           = "Created"
	MessageDeleted           = "Deleted"
	MessageInvalidBody       = "Invalid request body"
	MessageValidationFailed  = "Validation failed"
	MessageUnauthorized      = "Unauthorized"
	MessageForbidden         = "Forbidden"
	MessageInternalError     = "Internal server error"
	MessageNotFoundSuffix    = " not found"
	MessageConflictSuffix    = " already exists"
	messageDefaultNotFound   = "Not found"
	messageMethodNotAllowed  = "Method not allowed"
	messageRequestTooLarge   = "Request entity too large"
	messageDefaultBadRequest = "Bad request"
)

// Envelope is the uniform JSON body of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: MessageOK, Data: data})
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: MessageCreated, Data: data})
}

// Deleted writes a 200 success envelope without data.
func Deleted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: MessageDeleted})
}

// Fail writes a failure envelope with the given status and message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// ValidationFailed writes a 400 envelope carrying field-level messages.
func ValidationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: MessageValidationFailed,
		Errors:  fields,
	})
}

// InvalidBody writes a 400 envelope for bodies that could not be parsed.
func InvalidBody(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusBadRequest, MessageInvalidBody)
}

// NotFound writes a 404 envelope such as "Furniture tag not found".
func NotFound(c *fiber.Ctx, entity string) error {
	return Fail(c, fiber.StatusNotFound, entity+MessageNotFoundSuffix)
}

// Conflict writes a 409 envelope such as "Furniture tag already exists".
func Conflict(c *fiber.Ctx, entity string) error {
	return Fail(c, fiber.StatusConflict, entity+MessageConflictSuffix)
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusUnauthorized, MessageUnauthorized)
}

// Forbidden writes a 403 envelope.
func Forbidden(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusForbidden, MessageForbidden)
}

// Internal logs err with the request ray id and writes a generic 500 envelope.
// The error text never reaches the client.
func Internal(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	logger.WithRayID(l, c).Error(msg, zap.Error(err), zap.String("path", c.Path()))
	return Fail(c, fiber.StatusInternalServerError, MessageInternalError)
}

// ErrorHandler maps errors that escaped a handler to the envelope.
func ErrorHandler(l *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return Fail(c, fe.Code, messageDefaultNotFound)
			case fiber.StatusMethodNotAllowed:
				return Fail(c, fe.Code, messageMethodNotAllowed)
			case fiber.StatusRequestEntityTooLarge:
				return Fail(c, fe.Code, messageRequestTooLarge)
			case fiber.StatusUnauthorized:
				return Unauthorized(c)
			case fiber.StatusForbidden:
				return Forbidden(c)
			}
			if fe.Code >= 400 && fe.Code < 500 {
				return Fail(c, fe.Code, messageDefaultBadRequest)
			}
		}
		return Internal(c, l, "Unhandled error", err)
	}
}
