package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/cfg"
	"github.com/dacr-network/dacr-backend/server"
	"github.com/dacr-network/dacr-backend/types"
)

func setupTestRest(t *testing.T) *restServer {
	lgr, err := zap.NewDevelopment()
	assert.Nil(t, err)
	srv, err := server.New(server.Config{
		InitialSupply:   decimal.Zero,
		MinReserveRatio: decimal.NewFromFloat(0.95),
		PegValue:        decimal.NewFromInt(1),
		ReserveWeights: map[types.ReserveType]decimal.Decimal{
			types.ReserveComputational: decimal.NewFromFloat(0.4),
			types.ReserveStorage:       decimal.NewFromFloat(0.3),
			types.ReserveEngagement:    decimal.NewFromFloat(0.3),
		},
		VotingPeriod:    7 * 24 * time.Hour,
		ExecutionDelay:  2 * 24 * time.Hour,
		QuorumThreshold: decimal.NewFromInt(40),
		Logger:          lgr,
	})
	assert.Nil(t, err)
	return &restServer{
		srv: srv,
		cfg: cfg.ReserveConfig{
			JWTSecret:     "test-secret",
			TokenExpiry:   time.Minute,
			AdminUser:     "admin",
			AdminPassword: "letmein",
		},
		logger: lgr,
	}
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issueToken(t *testing.T, rest *restServer) string {
	e := echo.New()
	c, rec := postJSON(e, "/auth/token", `{"username":"admin","password":"letmein"}`)
	assert.Nil(t, rest.Token(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data tokenResponse `json:"data"`
	}
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "bearer", envelope.Data.TokenType)
	return envelope.Data.AccessToken
}

func TestToken_RejectsBadCredentials(t *testing.T) {
	rest := setupTestRest(t)
	e := echo.New()

	c, rec := postJSON(e, "/auth/token", `{"username":"admin","password":"wrong"}`)
	assert.Nil(t, rest.Token(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = postJSON(e, "/auth/token", `{"username":"","password":""}`)
	assert.Nil(t, rest.Token(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireToken_RoundTrip(t *testing.T) {
	rest := setupTestRest(t)
	token := issueToken(t, rest)

	e := echo.New()
	protected := requireToken(rest.cfg.JWTSecret)(func(c echo.Context) error {
		// the subject claim is surfaced to the handler
		assert.Equal(t, "admin", currentUser(c))
		return OK.Build(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	assert.Nil(t, protected(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireToken_RejectsMissingOrMalformed(t *testing.T) {
	rest := setupTestRest(t)
	e := echo.New()
	protected := requireToken(rest.cfg.JWTSecret)(func(c echo.Context) error {
		return OK.Build(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	assert.Nil(t, protected(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec = httptest.NewRecorder()
	assert.Nil(t, protected(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireToken_RejectsForeignSecret(t *testing.T) {
	rest := setupTestRest(t)

	claims := jwt.MapClaims{"sub": "admin", "exp": time.Now().Add(time.Minute).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	assert.Nil(t, err)

	e := echo.New()
	protected := requireToken(rest.cfg.JWTSecret)(func(c echo.Context) error {
		return OK.Build(c)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
	rec := httptest.NewRecorder()
	assert.Nil(t, protected(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireToken_RejectsExpiredToken(t *testing.T) {
	rest := setupTestRest(t)

	claims := jwt.MapClaims{"sub": "admin", "exp": time.Now().Add(-time.Minute).Unix()}
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(rest.cfg.JWTSecret))
	assert.Nil(t, err)

	e := echo.New()
	protected := requireToken(rest.cfg.JWTSecret)(func(c echo.Context) error {
		return OK.Build(c)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+stale)
	rec := httptest.NewRecorder()
	assert.Nil(t, protected(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
