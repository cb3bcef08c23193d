package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/api/auth"
	"github.com/hbomb79/Tubely/internal/api/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer returns an echo instance with a single authenticated route
// which responds with the ID of the requesting user.
func newServer(t *testing.T, secret string) *echo.Echo {
	provider := auth.New(auth.Config{Secret: secret, TokenLifespan: time.Hour})

	ec := echo.New()
	ec.HTTPErrorHandler = util.GetHTTPErrorHandler(ec.DefaultHTTPErrorHandler)
	ec.GET("/whoami", func(ec echo.Context) error {
		userID, err := provider.GetUserIDFromContext(ec)
		require.NoError(t, err)
		return ec.String(http.StatusOK, userID.String())
	}, provider.GetJwtVerifierMiddleware())

	return ec
}

func request(ec *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ec.ServeHTTP(rec, req)
	return rec
}

func TestVerifier_AcceptsGeneratedToken(t *testing.T) {
	secret := random.String(32)
	userID := uuid.New()

	token, exp, err := auth.New(auth.Config{Secret: secret, TokenLifespan: time.Hour}).GenerateToken(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	rec := request(newServer(t, secret), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestVerifier_Rejections(t *testing.T) {
	secret := random.String(32)
	sign := func(claims jwt.Claims, key string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		summary string
		token   string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", sign(&jwt.RegisteredClaims{Subject: uuid.NewString()}, random.String(32))},
		{"expired", sign(&jwt.RegisteredClaims{Subject: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}, secret)},
	}

	ec := newServer(t, secret)
	for _, test := range tests {
		t.Run(test.summary, func(t *testing.T) {
			rec := request(ec, test.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), util.CodeUnauthorized)
		})
	}
}

func TestGetUserIDFromContext_InvalidSubject(t *testing.T) {
	provider := auth.New(auth.Config{Secret: random.String(32), TokenLifespan: time.Hour})
	ec := echo.New()
	ctx := ec.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := provider.GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, auth.ErrNoToken)

	ctx.Set("user", &jwt.Token{Claims: &jwt.RegisteredClaims{Subject: "bob"}})
	_, err = provider.GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, auth.ErrInvalidClaim)
}
