package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
	apphttp "github.com/jhoicas/taller-erp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/taller-erp/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "taller-erp-test"
	testExpMin    = 60
)

// buildGuardedApp monta los mismos grupos protegidos que el router real
// (workers solo admin; payroll admin o manager; sales sin filtro de rol)
// con handlers dummy, para probar la cadena AuthMiddleware → RequireRole
// sin base de datos.
func buildGuardedApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))

	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
	}
	api.Group("/workers", apphttp.RequireRole(entity.RoleAdmin)).Get("/", ok)
	api.Group("/payroll", apphttp.RequireRole(entity.RoleAdmin, entity.RoleManager)).Get("/salaries", ok)
	api.Group("/sales").Get("/", ok)
	return app
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole sobre los grupos reales del router
// ──────────────────────────────────────────────────────────────────────────────

// El admin entra a todas las rutas filtradas por rol.
func TestRutasProtegidas_AdminAccedeATodo(t *testing.T) {
	app := buildGuardedApp()
	auth := bearerFor(t, entity.RoleAdmin)

	for _, path := range []string{"/api/workers/", "/api/payroll/salaries", "/api/sales/"} {
		resp := get(t, app, path, auth)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// El manager gestiona nómina pero no la plantilla de trabajadores.
func TestRutasProtegidas_ManagerSinAccesoAWorkers(t *testing.T) {
	app := buildGuardedApp()
	auth := bearerFor(t, entity.RoleManager)

	resp := get(t, app, "/api/payroll/salaries", auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "manager sí gestiona nómina")
	resp.Body.Close()

	resp = get(t, app, "/api/workers/", auth)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "workers es solo admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El vendedor pasa el filtro de sales pero no el de nómina.
func TestRutasProtegidas_VendedorBloqueadoEnNomina(t *testing.T) {
	app := buildGuardedApp()
	auth := bearerFor(t, entity.RoleSalesperson)

	resp := get(t, app, "/api/sales/", auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, app, "/api/payroll/salaries", auth)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Un token sin claim de rol no alcanza para una ruta filtrada por rol.
func TestRutasProtegidas_TokenSinRol_Retorna401(t *testing.T) {
	app := buildGuardedApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := get(t, app, "/api/workers/", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware — parseo del header y extracción de claims
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RechazaHeadersInvalidos(t *testing.T) {
	app := buildGuardedApp()

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema incorrecto", "Basic abc123", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"firmado con otro secret", func() string {
			tok, _ := pkgjwt.Generate("otro-secret", testUserID, testCompanyID, "admin", testIssuer, testExpMin)
			return "Bearer " + tok
		}(), "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, app, "/api/sales/", tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestAuthMiddleware_CargaClaimsEnLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	resp := get(t, app, "/me", bearerFor(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt — ida y vuelta con el claim de rol
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, companyID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testCompanyID, companyID)
	assert.Equal(t, entity.RoleManager, role)
}
