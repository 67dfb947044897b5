package fiberx

import (
	"errors"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// RequestIDHeader is the header carrying the request id
const RequestIDHeader = "X-Request-ID"

// ErrorHandler converts internal errors to standard HTTP responses. With
// debug set, the underlying cause of an errx.Error is included.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := RequestID(c)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			logRequestError(c, fe.Code, err)
			return c.Status(fe.Code).JSON(fiber.Map{
				"error":      fe.Message,
				"code":       "FIBER_ERROR",
				"status":     fe.Code,
				"request_id": requestID,
			})
		}

		if e, ok := errx.As(err); ok {
			status := e.HTTPStatus
			if status == 0 {
				status = e.Type.HTTPStatus()
			}
			logRequestError(c, status, err)

			response := fiber.Map{
				"error":      e.Message,
				"code":       e.Code,
				"type":       string(e.Type),
				"status":     status,
				"request_id": requestID,
			}
			if len(e.Details) > 0 {
				response["details"] = e.Details
			}
			if debug && e.Err != nil {
				response["underlying_error"] = e.Err.Error()
			}
			return c.Status(status).JSON(response)
		}

		logRequestError(c, fiber.StatusInternalServerError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Internal Server Error",
			"type":       string(errx.TypeInternal),
			"code":       "INTERNAL_ERROR",
			"status":     fiber.StatusInternalServerError,
			"message":    "An unexpected error occurred. Please contact support if the issue persists.",
			"request_id": requestID,
		})
	}
}

// RequestID returns the id set by the requestid middleware, falling back to
// the one sent by the client
func RequestID(c *fiber.Ctx) string {
	if id := c.GetRespHeader(RequestIDHeader); id != "" {
		return id
	}
	return c.Get(RequestIDHeader)
}

// NotFoundHandler handles unmatched routes
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"message":    "The requested endpoint does not exist. Visit /api/v1/docs for documentation.",
		"request_id": RequestID(c),
	})
}

func logRequestError(c *fiber.Ctx, status int, err error) {
	entry := logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"status":     status,
		"request_id": RequestID(c),
	})
	if status >= fiber.StatusInternalServerError {
		entry.Errorf("Request error: %v", err)
		return
	}
	entry.Warnf("Request error: %v", err)
}
