package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation         = "USR001"
	ErrCodeEmailExists        = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeUserNotFound       = "USR004"
	ErrCodeNotApproved        = "USR005"
	ErrCodeStorage            = "USR006"
)

// Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account pending approval")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewValidationError(err error) *UserError {
	return &UserError{
		Code:    ErrCodeValidation,
		Message: "Missing or invalid required fields",
		Err:     err,
	}
}

func NewEmailExistsError() *UserError {
	return &UserError{
		Code:    ErrCodeEmailExists,
		Message: "Email already registered",
		Err:     ErrEmailAlreadyExists,
	}
}

func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
		Err:     ErrInvalidCredentials,
	}
}

func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewNotApprovedError() *UserError {
	return &UserError{
		Code:    ErrCodeNotApproved,
		Message: "Account is awaiting admin approval",
		Err:     ErrNotApproved,
	}
}

func NewStorageError(err error) *UserError {
	return &UserError{
		Code:    ErrCodeStorage,
		Message: "Storage unavailable",
		Err:     err,
	}
}
