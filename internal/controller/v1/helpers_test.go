package v1_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"exusiai.dev/activity-backend/internal/pkg/testentry"
)

type harness struct {
	app *fiber.App
	env *testentry.Env
}

func newHarness(t *testing.T) *harness {
	var app *fiber.App
	env := testentry.Populate(t, &app)
	return &harness{app: app, env: env}
}

// request sends an authenticated request unless headers override Authorization.
func (h *harness) request(t *testing.T, method, path string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Token "+testentry.APIKey)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyBytes(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(bodyBytes(t, resp), &v))
	return v
}

type object = map[string]any
