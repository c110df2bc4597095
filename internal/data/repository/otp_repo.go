package repository

import (
	"context"
	"fmt"

	"localmarket/internal/data/entity"
	"localmarket/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Upsert(ctx context.Context, otp *entity.OTP) error
	FindByEmail(ctx context.Context, email string) (*entity.OTP, error)
	IncrementAttempts(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

// Upsert writes the ledger row for the email. Re-issuing overwrites the
// code, resets the attempt counter and pushes the expiry forward.
func (r *otpRepository) Upsert(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otp_verifications (email, code, attempts, expires_at, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $4, $4)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code,
		    attempts = 0,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		otp.Email,
		otp.Code,
		otp.ExpiresAt,
		otp.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
		)
		return fmt.Errorf("upsert OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (r *otpRepository) FindByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	query := `
		SELECT email, code, attempts, expires_at, created_at, updated_at
		FROM otp_verifications
		WHERE email = $1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, email).Scan(
		&otp.Email,
		&otp.Code,
		&otp.Attempts,
		&otp.ExpiresAt,
		&otp.CreatedAt,
		&otp.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

// IncrementAttempts is a single read-modify-write statement so concurrent
// failed verifications are counted exactly
func (r *otpRepository) IncrementAttempts(ctx context.Context, email string) error {
	query := `
		UPDATE otp_verifications
		SET attempts = attempts + 1, updated_at = NOW()
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to increment OTP attempts",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("increment OTP attempts for %s: %w", email, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP for %s not found", email)
	}

	return nil
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	query := `DELETE FROM otp_verifications WHERE email = $1`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to delete OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("delete OTP for %s: %w", email, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP for %s not found", email)
	}

	return nil
}
