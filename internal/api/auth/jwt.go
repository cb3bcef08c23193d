package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/api/util"
	"github.com/hbomb79/Tubely/pkg/logger"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	TokenIssuer = "tubely"

	contextKey = "user"
)

var (
	ErrNoToken      = errors.New("no verified token found in request context")
	ErrInvalidClaim = errors.New("token subject is not a valid user ID")

	log = logger.Get("Auth")
)

type (
	Config struct {
		Secret        string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true" validate:"min=16"`
		TokenLifespan time.Duration `yaml:"token_lifespan" env:"JWT_TOKEN_LIFESPAN" env-default:"24h"`
	}

	// jwtAuthProvider verifies bearer tokens signed with a shared HS256
	// secret. The 'sub' claim of the token identifies the requesting user.
	jwtAuthProvider struct {
		secret   []byte
		lifespan time.Duration
	}
)

func New(config Config) *jwtAuthProvider {
	return &jwtAuthProvider{secret: []byte(config.Secret), lifespan: config.TokenLifespan}
}

// GetJwtVerifierMiddleware returns an echo middleware which rejects any
// request which does not carry a valid 'Authorization: Bearer' token.
func (auth *jwtAuthProvider) GetJwtVerifierMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    auth.secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    contextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(jwt.RegisteredClaims) },
		ErrorHandler: func(ec echo.Context, err error) error {
			log.Debugf("Rejecting request to %s: %v\n", ec.Request().URL.Path, err)
			return util.ErrAPIUnauthorized
		},
	})
}

// GetUserIDFromContext extracts the ID of the requesting user from the
// token verified by the middleware returned from GetJwtVerifierMiddleware.
func (auth *jwtAuthProvider) GetUserIDFromContext(ec echo.Context) (uuid.UUID, error) {
	token, ok := ec.Get(contextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, ErrNoToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrInvalidClaim
	}

	return userID, nil
}

// GenerateToken returns a signed token identifying the user provided,
// which expires after the configured lifespan.
func (auth *jwtAuthProvider) GenerateToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(auth.lifespan)
	claims := &jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.secret)
	if err != nil {
		return "", now, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}
