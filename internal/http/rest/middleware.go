package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/tracing"
	"github.com/bwise1/court_cases/util/values"
	"github.com/golang-jwt/jwt"
	"github.com/jackc/pgx/v5"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

const defaultRequestSource = "unknown"

var (
	errTokenExpired    = errors.New("token expired")
	errInvalidToken    = errors.New("invalid token")
	errMissingUsername = errors.New("token does not contain username")
)

// RequestTracing handles the request tracing context
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestSource := r.Header.Get(values.HeaderRequestSource)
		if requestSource == "" {
			requestSource = defaultRequestSource
		}

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}
		w.Header().Set(values.HeaderRequestID, requestID)

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: requestSource,
		}

		ctx = context.WithValue(ctx, values.ContextTracingKey, tracingContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// RequireLogin authenticates the bearer token and loads the caller from
// storage. The role is read fresh on every request; tokens carry no role.
func (api *API) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.Split(r.Header.Get("Authorization"), " ")
		if len(authorization) != 2 || authorization[0] != "Bearer" {
			writeErrorResponse(w, errors.New(values.NotAuthorised), values.NotAuthorised, "not-authorized")
			return
		}

		username, err := api.verifyToken(authorization[1])
		if err != nil {
			if errors.Is(err, errTokenExpired) {
				writeErrorResponse(w, err, values.TokenExpired, "token-expired")
				return
			}
			writeErrorResponse(w, err, values.NotAuthorised, "invalid-token")
			return
		}

		user, err := api.GetUserByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeErrorResponse(w, err, values.NotAuthorised, "user-not-found")
				return
			}
			writeErrorResponse(w, err, values.Error, values.SystemErr)
			return
		}

		ctx := util.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifyToken checks signature, expiry and token type, and returns the
// username claim.
func (api *API) verifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(api.Config.JwtSecret), nil
	})

	// Only report expiry when the token is otherwise sound.
	var ve *jwt.ValidationError
	if errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired {
		return "", errTokenExpired
	}

	if err != nil || !token.Valid {
		zap.S().Debugw("error verifying token", "error", err)
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}

	if tokenType, _ := claims["typ"].(string); tokenType != accessTokenType {
		return "", errInvalidToken
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", errMissingUsername
	}

	return username, nil
}
