package models

import (
	"errors"
	"fmt"
)

// Failure categories. Every error returned by the services wraps exactly one
// of these, so callers can branch with errors.Is without knowing the detail.
var (
	ErrValidation    = errors.New("validation failed")
	ErrUnsupported   = errors.New("operation not supported")
	ErrPersistence   = errors.New("persistence failure")
	ErrDataIntegrity = errors.New("data integrity violation")
)

var (
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrNegativeDeposit     = fmt.Errorf("%w: initial deposit cannot be negative", ErrValidation)
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient funds", ErrValidation)
	ErrBelowMinimumDeposit = fmt.Errorf("%w: initial deposit below minimum", ErrValidation)
	ErrEmploymentRequired  = fmt.Errorf("%w: employer name and address are required for a cheque account", ErrValidation)
	ErrCustomerNotFound    = fmt.Errorf("%w: customer not found", ErrValidation)
	ErrMissingField        = fmt.Errorf("%w: required field is empty", ErrValidation)
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid username or password", ErrValidation)

	ErrWithdrawalNotSupported = fmt.Errorf("%w: savings accounts do not allow withdrawals", ErrUnsupported)

	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrPersistence)

	ErrUnknownAccountKind = fmt.Errorf("%w: unknown account type", ErrDataIntegrity)
	ErrInvalidRoleLink    = fmt.Errorf("%w: credential must link to exactly one customer or employee", ErrDataIntegrity)
)
