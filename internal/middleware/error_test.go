package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	app.Get("/bad", func(c *fiber.Ctx) error { return BadRequest("bad input") })
	app.Get("/unauthorized", func(c *fiber.Ctx) error { return Unauthorized("no token") })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return Forbidden("not allowed") })
	app.Get("/missing", func(c *fiber.Ctx) error { return NotFound("gone") })
	app.Get("/conflict", func(c *fiber.Ctx) error { return Conflict("already done") })
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	cases := []struct {
		path       string
		statusCode int
		errorCode  string
	}{
		{"/bad", fiber.StatusBadRequest, "BAD_REQUEST"},
		{"/unauthorized", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"/forbidden", fiber.StatusForbidden, "FORBIDDEN"},
		{"/missing", fiber.StatusNotFound, "NOT_FOUND"},
		{"/conflict", fiber.StatusConflict, "CONFLICT"},
		{"/boom", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.errorCode, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.statusCode, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.errorCode, body.Code)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestErrorHandler_Logging(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/bad", func(c *fiber.Ctx) error { return BadRequest("bad input") })

	t.Run("internal errors land in the log under the response trace id", func(t *testing.T) {
		logs.Reset()

		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		assert.Equal(t, "Internal server error", body.Message)
		assert.Contains(t, logs.String(), body.TraceID)
		assert.Contains(t, logs.String(), "pq: connection refused")
	})

	t.Run("client errors are not logged", func(t *testing.T) {
		logs.Reset()

		resp, err := app.Test(httptest.NewRequest("GET", "/bad", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Empty(t, logs.String())
	})
}
