package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found within
// the caller's tenant scope. A resource that exists under another tenant is
// reported identically.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrOverdraft indicates that a posting would drive an account that does not
// allow negative balances below zero.
var ErrOverdraft = errors.New("insufficient balance for account")

// ErrInternal indicates an unexpected storage or infrastructure failure.
// Callers may safely retry, all mutating operations are idempotent.
var ErrInternal = errors.New("internal error")
