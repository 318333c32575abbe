package rest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwise1/court_cases/internal/db"
	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/values"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const accessTokenType = "access"

var (
	errUserExists         = errors.New("username already exists")
	errInvalidCredentials = errors.New("invalid credentials")
	errMissingJwtSecret   = errors.New("jwt secret is not configured")
)

// createToken issues an access token bound to username. The role is
// deliberately left out of the claims.
func (api *API) createToken(username string) (string, time.Time, error) {
	if api.Config.JwtSecret == "" {
		return "", time.Time{}, errMissingJwtSecret
	}

	expTime, err := time.ParseDuration(api.Config.JwtExpires)
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	expiresAt := now.Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"sub":      username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"typ":      accessTokenType,
	})

	tokenString, err := token.SignedString([]byte(api.Config.JwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (api *API) SignupUser(ctx context.Context, req model.SignupRequest) (model.AuthResponse, string, string, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateStruct(req); err != nil {
		return model.AuthResponse{}, values.BadRequestBody, "Invalid signup request", err
	}

	exists, err := api.UsernameExists(ctx, req.Username)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error checking username", err
	}
	if exists {
		return model.AuthResponse{}, values.Conflict, "User already exists", errUserExists
	}

	hash, err := util.HashPassword(req.Password, api.Config.BcryptCost)
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error securing password", err
	}

	user := model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}

	err = api.CreateUserRepo(ctx, user)
	if db.IsConstraintViolation(err, db.UniqueViolation, db.UsersPrimaryKey) {
		return model.AuthResponse{}, values.Conflict, "User already exists", errUserExists
	}
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error creating new user", err
	}

	token, _, err := api.createToken(user.Username)
	if err != nil {
		return model.AuthResponse{}, values.Error, values.SystemErr + " [CrTk]", err
	}

	zap.S().Infow("user registered", "username", user.Username, "role", user.Role)

	return model.AuthResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, values.Created, "User registered", nil
}

func (api *API) LoginUser(ctx context.Context, req model.LoginRequest) (model.AuthResponse, string, string, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateStruct(req); err != nil {
		return model.AuthResponse{}, values.BadRequestBody, "Invalid login request", err
	}

	user, err := api.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AuthResponse{}, values.NotAuthorised, "Invalid credentials", errInvalidCredentials
	}
	if err != nil {
		return model.AuthResponse{}, values.Error, "Error fetching user", err
	}

	if !util.VerifyPassword(user.PasswordHash, req.Password) {
		return model.AuthResponse{}, values.NotAuthorised, "Invalid credentials", errInvalidCredentials
	}

	token, _, err := api.createToken(user.Username)
	if err != nil {
		return model.AuthResponse{}, values.Error, values.SystemErr + " [CrTk]", err
	}

	return model.AuthResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, values.Success, "Login successful", nil
}
