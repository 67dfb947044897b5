package fiberx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(debug bool, handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(debug)})
	app.Get("/", handler)
	app.Use(NotFoundHandler)
	return app
}

func do(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(RequestIDHeader, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_Errx(t *testing.T) {
	reg := errx.NewRegistry("TEST")
	code := reg.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")

	app := newApp(true, func(c *fiber.Ctx) error {
		return reg.New(code).WithDetail("id", "7").WithCause(errors.New("no rows"))
	})

	status, body := do(t, app, "/")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "TEST_MISSING", body["code"])
	assert.Equal(t, "NOT_FOUND", body["type"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, map[string]any{"id": "7"}, body["details"])
	assert.Equal(t, "no rows", body["underlying_error"])
}

func TestErrorHandler_WrappedErrxWithoutDebug(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		inner := errx.New("bad input", errx.TypeValidation).WithCause(errors.New("secret"))
		return errx.Wrap(inner, "classify", errx.TypeInternal)
	})

	status, body := do(t, app, "/")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["type"])
	assert.NotContains(t, body, "underlying_error")
}

func TestErrorHandler_FiberAndUnknown(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	status, body := do(t, app, "/")
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "FIBER_ERROR", body["code"])

	app = newApp(false, func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	status, body = do(t, app, "/")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestNotFoundHandler(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error { return nil })

	status, body := do(t, app, "/nowhere")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "/nowhere", body["path"])
}

func TestErrorHandler_UsesGeneratedRequestID(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Use(requestid.New(requestid.Config{
		Header:    RequestIDHeader,
		Generator: func() string { return "req-generated" },
	}))
	app.Get("/", func(c *fiber.Ctx) error {
		return errx.New("nope", errx.TypeValidation)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "req-generated", body["request_id"])
	assert.Equal(t, "req-generated", resp.Header.Get(RequestIDHeader))
}
