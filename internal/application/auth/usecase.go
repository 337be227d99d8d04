package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenDenylist guarda los tokens revocados (logout) hasta que expiran.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session datos del token ya validado que el middleware entrega a los handlers.
type Session struct {
	UserID    string
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// AuthUseCase registro, login y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	audit    audit.Recorder
	denylist TokenDenylist
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, recorder audit.Recorder, denylist TokenDenylist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, audit: recorder, denylist: denylist, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con password bcrypt. ErrUsernameTaken / ErrEmailTaken si ya existen.
// La acción se atribuye al actor que llama (anónimo durante el alta: no se registra).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, actor entity.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	existing, err = uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Persistence(err)
	}
	uc.audit.Record(ctx, actor, entity.ActionUserRegistration,
		fmt.Sprintf("Usuario registrado: %s", user.Username))
	out := dto.ToUserResponse(user)
	return &out, nil
}

// Login verifica usuario/password, genera JWT y registra el ingreso a nombre del usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AsUser(user.ID), entity.ActionUserLogin,
		fmt.Sprintf("El usuario %s inició sesión", user.Username))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Authenticate valida el token y verifica que no haya sido revocado.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	return &Session{
		UserID:    claims.UserID,
		Username:  claims.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revoca el token de la sesión hasta su expiración y registra la salida.
func (uc *AuthUseCase) Logout(ctx context.Context, s *Session) error {
	if s == nil || s.UserID == "" {
		return domain.ErrUnauthorized
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl > 0 {
		if err := uc.denylist.Revoke(ctx, s.TokenID, ttl); err != nil {
			return domain.Persistence(err)
		}
	}
	uc.audit.Record(ctx, entity.AsUser(s.UserID), entity.ActionUserLogout,
		fmt.Sprintf("El usuario %s cerró sesión", s.Username))
	return nil
}
