package xerrors

import "errors"

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)

// OTP verification
var (
	ErrInvalidOTP      = errors.New("invalid otp")
	ErrExpiredOTP      = errors.New("expired otp")
	ErrTooManyAttempts = errors.New("too many otp attempts")
	ErrOTPDelivery     = errors.New("otp delivery failed")
)

// Login / account state
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user inactive")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminInactive      = errors.New("admin inactive")
)

// Tokens
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
