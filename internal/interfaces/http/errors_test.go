package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
)

func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

// Los errores de dominio se traducen a su código HTTP.
func TestRespondError_ErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrAlreadyInCustody, fiber.StatusConflict, "ALREADY_IN_CUSTODY"},
		{domain.ErrPaymentRequired, fiber.StatusPaymentRequired, "PAYMENT_REQUIRED"},
	}
	for _, tc := range cases {
		status, body := respondWith(t, tc.err)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, tc.code, body.Code)
	}
}

// Un error inesperado responde 500 con mensaje genérico: el detalle
// interno (fragmentos SQL, rutas) nunca llega al cliente.
func TestRespondError_NoFiltraDetalleInterno(t *testing.T) {
	interno := fmt.Errorf("list payments: %w", errors.New(`ERROR: relation "payments" does not exist (SQLSTATE 42P01)`))

	status, body := respondWith(t, interno)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "SQLSTATE")
	assert.NotContains(t, body.Message, "payments")
	assert.Equal(t, "error interno", body.Message)
}
