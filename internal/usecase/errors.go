package usecase

import (
	"errors"
)

// Sentinel errors handlers map to HTTP statuses. Credential failures share
// one message so a caller cannot tell which check rejected them.
var (
	ErrInvalidCredentials = errors.New("invalid email/mobile, password, or role")
	ErrOTPNotFound        = errors.New("OTP not found, please request again")
	ErrOTPExpired         = errors.New("OTP expired, please request a new one")
	ErrOTPMaxAttempts     = errors.New("maximum OTP attempts reached")
	ErrOTPInvalid         = errors.New("invalid OTP")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSendOTPEmail       = errors.New("failed to send OTP email")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
