package usecase

import (
	"context"
	"fmt"
	"time"

	"localmarket/internal/data/entity"
	"localmarket/internal/data/repository"
	"localmarket/internal/dto/request"
	"localmarket/internal/dto/response"
	"localmarket/pkg/mail"
	"localmarket/pkg/token"
	"localmarket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	SendOTP(ctx context.Context, req *request.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Session(tokenString string) (*response.SessionUser, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo, roleRepo & otpRepo
	mailer mail.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	mailer mail.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		mailer: mailer,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// SendOTP issues a fresh code for the email. The ledger row is persisted
// before the email goes out, so a send failure leaves a valid row behind
// and the caller simply retries; re-issuing overwrites the previous code.
func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Send OTP validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Generate code and expiry
	code := utils.GenerateOTP(s.config.OTP.Length)
	validity := time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute

	now := time.Now()
	otp := &entity.OTP{
		Email:     req.Email,
		Code:      code,
		Attempts:  0,
		ExpiresAt: now.Add(validity),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 3. Persist before dispatch
	if err := s.repo.OTP.Upsert(ctx, otp); err != nil {
		s.log.Error("Failed to save OTP", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("save OTP: %w", err)
	}

	// 4. Dispatch email
	if err := s.mailer.SendOTP(req.Email, req.Name, code, validity); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("%w: %v", ErrSendOTPEmail, err)
	}

	s.log.Info("OTP sent",
		zap.String("email", req.Email),
		zap.Time("expires_at", otp.ExpiresAt),
	)

	return nil
}

// VerifyOTP checks the submitted code against the ledger and creates the
// identity on match. Order of checks: presence, existence, expiry, attempt
// ceiling, code. An expired row stays in place until the next issuance
// overwrites it.
func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Look up ledger row
	otp, err := s.repo.OTP.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("find OTP: %w", err)
	}
	if otp == nil {
		return ErrOTPNotFound
	}

	// 3. Expiry
	if time.Now().After(otp.ExpiresAt) {
		return ErrOTPExpired
	}

	// 4. Attempt ceiling; locked out until expiry or re-issue
	if otp.Attempts >= s.config.OTP.MaxAttempts {
		return ErrOTPMaxAttempts
	}

	// 5. Code check; failed guesses are counted atomically
	if req.EnteredOTP != otp.Code {
		if err := s.repo.OTP.IncrementAttempts(ctx, req.Email); err != nil {
			s.log.Error("Failed to increment OTP attempts", zap.Error(err), zap.String("email", req.Email))
			return fmt.Errorf("increment OTP attempts: %w", err)
		}
		return ErrOTPInvalid
	}

	// 6. Hash password, resolve role, create identity
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	role, err := s.repo.Role.FindByName(ctx, req.Role)
	if err != nil {
		s.log.Error("Failed to find role", zap.Error(err), zap.String("role", req.Role))
		return fmt.Errorf("find role: %w", err)
	}
	if role == nil {
		return ErrInvalidRole
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Address:      req.Address,
		PasswordHash: hashedPassword,
		RoleID:       role.ID,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("create account: %w", err)
	}

	// 7. Spend the code
	if err := s.repo.OTP.Delete(ctx, req.Email); err != nil {
		s.log.Warn("Failed to delete OTP after verification",
			zap.Error(err), zap.String("email", req.Email))
		// Continue anyway; a re-issue overwrites the row
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", req.Role),
	)

	return nil
}

// Login exchanges credentials for a signed session token. Not-found,
// wrong-role and wrong-password all return ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Single joined lookup: email-or-mobile + role
	user, err := s.repo.User.FindByIdentifier(ctx, req.Email, req.Role)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 3. Password check
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	duration := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	signed, expiresAt, err := token.Generate(
		user.ID.String(), user.Name, user.RoleName, user.Email, user.Address,
		s.config.JWT.Secret, duration,
	)
	if err != nil {
		s.log.Error("Failed to sign session token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.RoleName),
	)

	return &response.LoginResponse{
		User: response.SessionUser{
			ID:      user.ID.String(),
			Name:    user.Name,
			Role:    user.RoleName,
			Email:   user.Email,
			Address: user.Address,
		},
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Session decodes the cookie token. The claims are the source of truth;
// no database read happens, so they can be stale until the token expires.
func (s *authService) Session(tokenString string) (*response.SessionUser, error) {
	claims, err := token.Validate(tokenString, s.config.JWT.Secret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return &response.SessionUser{
		ID:      claims.UserID,
		Name:    claims.Name,
		Role:    claims.Role,
		Email:   claims.Email,
		Address: claims.Address,
	}, nil
}
