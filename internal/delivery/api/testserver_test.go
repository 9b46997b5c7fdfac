package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmacy/config"
	apimiddleware "pharmacy/internal/delivery/api/middleware"
	"pharmacy/internal/delivery/api/router"
	"pharmacy/internal/delivery/api/router/handler"
	"pharmacy/internal/infra/auth"
	"pharmacy/internal/infra/cache"
	"pharmacy/internal/infra/persistence/memory"
	"pharmacy/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testTokenSecret = "integration_test_secret_with_enough_bytes"

func newTestConfig(openRegistration bool) *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Auth = &config.AuthConfig{
		BcryptCost:       bcrypt.MinCost,
		OpenRegistration: &openRegistration,
		Token: config.TokenConfig{
			Secret:   testTokenSecret,
			Validity: time.Hour,
		},
	}

	return cfg
}

// newTestEcho wires the real use cases over in-memory repositories.
func newTestEcho(t testing.TB, cfg *config.Config) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := memory.NewUserRepository()
	drugRepo := memory.NewDrugRepository()
	hasher := auth.NewBcryptHasher(cfg)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	rules, err := router.NewRuleSet(cfg)
	require.NoError(t, err)

	params := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			AuthUC: impl.NewAuthService(impl.AuthServiceParams{
				UserRepo:     userRepo,
				Hasher:       hasher,
				TokenService: tokens,
				Logger:       logger,
			}),
			Logger: logger,
		}),
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			UserUC: impl.NewUserService(impl.UserServiceParams{
				UserRepo: userRepo,
				Hasher:   hasher,
				Logger:   logger,
			}),
			Logger: logger,
		}),
		DrugHandler: handler.NewDrugHandler(handler.DrugHandlerParams{
			DrugUC: impl.NewDrugService(impl.DrugServiceParams{
				DrugRepo: drugRepo,
				Cache:    cache.NewNoopDrugCache(),
				Logger:   logger,
			}),
			Logger: logger,
		}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			Rules:        rules,
			TokenService: tokens,
			Logger:       logger,
		}),
	}

	return NewEcho(cfg, logger, params)
}

type testClient struct {
	t testing.TB
	e *echo.Echo
}

func (tc *testClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	tc.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(tc.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	tc.e.ServeHTTP(rec, req)

	return rec
}

func (tc *testClient) register(username, password string) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, "/api/users", "", map[string]string{"username": username, "password": password})
}

func (tc *testClient) login(username, password string) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
}

func (tc *testClient) token(username, password string) string {
	tc.t.Helper()

	rec := tc.login(username, password)
	require.Equal(tc.t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]string
	require.NoError(tc.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(tc.t, body["token"])

	return body["token"]
}

func validDrug(ma string) map[string]any {
	return map[string]any{
		"ma":                        ma,
		"price":                     12.5,
		"brandName":                 "Aspirin",
		"manufacturer":              "Bayer",
		"activeIngredient":          "Acetylsalicylic acid",
		"ndc":                       "1234-5678-90",
		"atcCode":                   "N02BA01",
		"drugForm":                  "tablet",
		"routeOfAdministration":     "oral",
		"prescriptionStatus":        "OTC",
		"controlledSubstanceStatus": "C-V",
		"dosage":                    "500mg",
		"batchNumber":               "B-2024-01",
		"expirationDate":            "2027-05-31",
		"availableCopies":           3,
		"graphicLink":               "https://example.com/aspirin.png",
	}
}

func decodeBody(t testing.TB, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}
