package services

import "errors"

// Closed error taxonomy surfaced to handlers. Unexpected store failures are
// anything outside this set (and repository.ErrNotFound / ErrInvalidID) and
// map to a generic server error without echoing the cause.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrDuplicatePlate      = errors.New("plate number already exists")
	ErrModelNotFound       = errors.New("vehicle model not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrModelInUse          = errors.New("vehicle model is still referenced by vehicles")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrInvalidVerification = errors.New("invalid verification code")
)
