package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/jwt"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// OTPStore guarda códigos de un solo uso con vencimiento.
type OTPStore interface {
	Set(key, code string, ttl time.Duration)
	// Verify consume el código si coincide y no venció.
	Verify(key, code string) bool
}

// Mailer envía el código de recuperación de contraseña.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh, logout y recuperación de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	otps     OTPStore
	mailer   Mailer
	otpTTL   time.Duration
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig, otps OTPStore, mailer Mailer, otpTTL time.Duration, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		otps:     otps,
		mailer:   mailer,
		otpTTL:   otpTTL,
		log:      log.Component("auth"),
	}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrDuplicate si el username ya existe y ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if len(username) < 3 {
		return nil, domain.NewValidationError("username", "mínimo 3 caracteres")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "formato inválido")
	}
	if len(in.Password) < 6 {
		return nil, domain.NewValidationError("password", "mínimo 6 caracteres")
	}

	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", username, domain.ErrDuplicate)
	}
	existing, err = uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("username", username).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica username/password y emite access + refresh token. El refresh queda guardado en el usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueTokens(ctx, user)
}

// Refresh valida el refresh token contra el guardado y rota ambos tokens.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error) {
	id, err := jwt.Parse(uc.jwtCfg.RefreshSecret, in.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(in.RefreshToken)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueTokens(ctx, user)
}

// Logout invalida el refresh token del usuario.
func (uc *AuthUseCase) Logout(ctx context.Context, userID int64) error {
	return uc.userRepo.SetRefreshToken(ctx, userID, "")
}

// ForgotPassword envía un OTP de 6 dígitos al email. Un email desconocido no produce error.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Str("email", email).Msg("recuperación solicitada para email desconocido")
		return nil
	}
	code, err := newOTP()
	if err != nil {
		return err
	}
	uc.otps.Set(email, code, uc.otpTTL)
	if err := uc.mailer.SendOTP(ctx, email, code, uc.otpTTL); err != nil {
		return fmt.Errorf("enviar otp: %w", err)
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("otp de recuperación enviado")
	return nil
}

// ResetPassword cambia la contraseña si el OTP es válido e invalida la sesión activa.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if len(in.NewPassword) < 6 {
		return domain.NewValidationError("new_password", "mínimo 6 caracteres")
	}
	if !uc.otps.Verify(email, strings.TrimSpace(in.OTP)) {
		return domain.ErrInvalidOTP
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidOTP
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.RefreshToken = ""
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return uc.userRepo.SetRefreshToken(ctx, user.ID, "")
}

func (uc *AuthUseCase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	id := jwt.Identity{UserID: user.ID, Username: user.Username, Email: user.Email}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, id, uc.jwtCfg.AccessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.RefreshSecret, uc.jwtCfg.Issuer, id, uc.jwtCfg.RefreshTTL())
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, err
	}
	user.RefreshToken = refresh
	return &dto.TokenResponse{AccessToken: access, RefreshToken: refresh, User: *toUserResponse(user)}, nil
}

func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
