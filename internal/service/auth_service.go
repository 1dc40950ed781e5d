package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"epass-service/config"
	"epass-service/internal/logger"
	"epass-service/internal/metrics"
	"epass-service/internal/model"
	"epass-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoPhone   = "1234567890"
	demoAddress = "Demo Address"
)

type sessionClaims struct {
	SessionID string `json:"session_id"`
	UserType  string `json:"user_type"`
	jwt.RegisteredClaims
}

// AuthService owns sessions: it turns credentials into a persisted session and
// a bearer token naming it, and turns tokens back into principals.
type AuthService struct {
	sessions          *repository.SessionRepository
	jwtConfig         config.JWTConfig
	admin             model.Admin
	adminPasswordHash []byte
	now               func() time.Time
	log               *logger.Logger
}

func NewAuthService(sessions *repository.SessionRepository, jwtConfig config.JWTConfig, adminConfig config.AdminConfig, now func() time.Time, log *logger.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminConfig.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		sessions:  sessions,
		jwtConfig: jwtConfig,
		admin: model.Admin{
			ID:       adminConfig.ID,
			Username: adminConfig.Username,
			Email:    adminConfig.Email,
			Role:     model.AdminRoleAdmin,
		},
		adminPasswordHash: hash,
		now:               now,
		log:               log.With("component", "auth_service"),
	}, nil
}

// Login establishes a session. Administrators must match the configured
// credential; citizens only need a non-empty email and password.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	role := req.Role
	if role == "" {
		role = model.UserTypeUser
	}

	var principal model.Principal
	switch role {
	case model.UserTypeAdmin:
		if req.Email != s.admin.Email ||
			bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(req.Password)) != nil {
			metrics.Logins.WithLabelValues(string(role), "failure").Inc()
			return nil, ErrInvalidCredentials
		}
		principal = model.Administrator{Admin: s.admin}
	case model.UserTypeUser:
		if req.Email == "" || req.Password == "" {
			metrics.Logins.WithLabelValues(string(role), "failure").Inc()
			return nil, ErrInvalidCredentials
		}
		principal = model.Citizen{User: model.User{
			ID:        uuid.New().String(),
			Email:     req.Email,
			FullName:  strings.SplitN(req.Email, "@", 2)[0],
			Phone:     demoPhone,
			Address:   demoAddress,
			CreatedAt: s.now(),
		}}
	default:
		metrics.Logins.WithLabelValues("unknown", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	resp, err := s.open(ctx, principal)
	if err != nil {
		return nil, err
	}
	metrics.Logins.WithLabelValues(string(role), "success").Inc()
	return resp, nil
}

// Register always succeeds for a well-formed request and signs the new
// citizen in.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	user := model.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: s.now(),
	}
	return s.open(ctx, model.Citizen{User: user})
}

// Logout clears the stored session. It is unconditional: clearing an already
// anonymous session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info("session cleared", "session_id", sessionID)
	return nil
}

// Session returns the stored state for sessionID, anonymous when cleared.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.sessions.Load(ctx, sessionID)
}

// Resolve verifies token and returns the principal of the session it names.
func (s *AuthService) Resolve(ctx context.Context, token string) (model.Principal, string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, "", err
	}
	session, err := s.sessions.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	return session.Principal(), claims.SessionID, nil
}

func (s *AuthService) open(ctx context.Context, principal model.Principal) (*model.LoginResponse, error) {
	sessionID := uuid.New().String()
	session := model.SessionFor(principal)
	if err := s.sessions.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}
	token, err := s.generateToken(sessionID, principal)
	if err != nil {
		return nil, err
	}
	s.log.Info("session opened", "session_id", sessionID, "user_type", *session.UserType)
	return &model.LoginResponse{Token: token, Session: session}, nil
}

func (s *AuthService) generateToken(sessionID string, principal model.Principal) (string, error) {
	now := s.now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   "epass-service",
		},
	}
	switch p := principal.(type) {
	case model.Citizen:
		claims.UserType = string(model.UserTypeUser)
		claims.Subject = p.User.ID
	case model.Administrator:
		claims.UserType = string(model.UserTypeAdmin)
		claims.Subject = p.Admin.ID
	case model.Anonymous:
		return "", ErrUnauthenticated
	}
	if s.jwtConfig.ExpirationHours > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Duration(s.jwtConfig.ExpirationHours) * time.Hour))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

func (s *AuthService) parseToken(tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
