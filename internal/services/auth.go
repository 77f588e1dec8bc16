package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"linkconnect/internal/dto"
	"linkconnect/internal/models"
)

const bcryptCost = 12

type Claims struct {
	Role         string `json:"role"`
	TokenVersion int    `json:"tokenVersion"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users             UserStore
	logins            LoginStatStore
	secret            []byte
	tokenTTL          time.Duration
	allowSelfRegister bool
	log               zerolog.Logger
}

func NewAuthService(users UserStore, logins LoginStatStore, secret string, tokenTTL time.Duration, allowSelfRegister bool, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:             users,
		logins:            logins,
		secret:            []byte(secret),
		tokenTTL:          tokenTTL,
		allowSelfRegister: allowSelfRegister,
		log:               log,
	}
}

func HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// Register creates an account via self-registration, when enabled.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, string, error) {
	if !s.allowSelfRegister {
		return models.User{}, "", NewForbidden("self-registration is disabled, please contact an admin")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}
	if existing != nil {
		return models.User{}, "", NewConflict("email already registered")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hashed,
		Role:      req.Role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if req.Role == models.RoleStudent {
		user.RollNumber = strings.TrimSpace(req.RollNumber)
	}

	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return models.User{}, "", NewConflict("email or roll number already registered")
		}
		return models.User{}, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login checks credentials for the requested role, records a login stat and
// returns a token carrying the user's current tokenVersion.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmailAndRole(ctx, email, req.Role)
	if err != nil {
		return models.User{}, "", err
	}
	if user == nil {
		return models.User{}, "", NewUnauthorized("invalid credentials")
	}
	if !user.Active {
		return models.User{}, "", NewForbidden("account is deactivated")
	}
	if !CheckPassword(user.Password, req.Password) {
		return models.User{}, "", NewUnauthorized("invalid credentials")
	}

	now := time.Now().UTC()
	if _, err := s.users.UpdateByID(ctx, user.ID, bson.M{"last_login": now}); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to stamp last login")
	}
	if err := s.logins.Insert(ctx, models.LoginStat{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Status:    "success",
		IPAddress: ip,
		UserAgent: userAgent,
		LoginTime: now,
	}); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record login stat")
	}

	token, err := s.IssueToken(*user)
	if err != nil {
		return models.User{}, "", err
	}
	return *user, token, nil
}

func (s *AuthService) IssueToken(user models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authenticate validates a bearer token and re-checks the account against the
// directory: inactive accounts and stale tokenVersions are rejected even if
// the signature is fine.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, NewUnauthorized("invalid token")
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return Identity{}, NewUnauthorized("invalid token")
	}

	id, err := bson.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, NewUnauthorized("invalid token")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	if user == nil || !user.Active {
		return Identity{}, NewUnauthorized("account inactive or missing")
	}
	if user.TokenVersion != claims.TokenVersion {
		return Identity{}, NewUnauthorized("session expired, please login again")
	}

	return Identity{ID: user.ID, Role: user.Role, TokenVersion: user.TokenVersion}, nil
}

func (s *AuthService) Me(ctx context.Context, actor Identity) (models.User, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, NewNotFound("user not found")
	}
	return *user, nil
}
