package apperrors

import (
	"fmt"
	"net/http"
)

// Predefined errors and factories for the authentication and tenancy domain.

// ErrInvalidCredentials is deliberately low-information: a wrong password and
// an unknown email produce the same error.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken covers bad signature, malformed structure and expiry alike.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrInvalidAuthHeader - missing or malformed Authorization header.
var ErrInvalidAuthHeader = New(
	CodeUnauthorized,
	"auth",
	"Authorization header missing or invalid",
	http.StatusUnauthorized,
)

// ErrAccountDisabled always blocks login, administrators included.
var ErrAccountDisabled = New(
	CodeAccountDisabled,
	"auth",
	"Account has been disabled, please contact an administrator",
	http.StatusBadRequest,
)

// ErrRegistrationPending - the approval gate has not passed yet.
var ErrRegistrationPending = New(
	CodeApprovalPending,
	"registration",
	"Your registration request is under review, please wait for approval",
	http.StatusForbidden,
)

// ErrRegistrationRejected - the approval gate resolved against the account.
var ErrRegistrationRejected = New(
	CodeApprovalRejected,
	"registration",
	"Your registration request was rejected, please contact an administrator",
	http.StatusForbidden,
)

// ErrEmailAlreadyRegistered - an account with this email already exists.
var ErrEmailAlreadyRegistered = New(
	CodeAlreadyExists,
	"registration",
	"Email is already registered",
	http.StatusBadRequest,
)

// ErrPendingRequestExists - at most one pending request per email.
var ErrPendingRequestExists = New(
	CodeConflict,
	"registration",
	"A registration request for this email is already pending review",
	http.StatusBadRequest,
)

// ErrRequestAlreadyResolved - resolved requests are immutable except notes.
var ErrRequestAlreadyResolved = New(
	CodeInvalidStatus,
	"registration",
	"Registration request has already been reviewed",
	http.StatusBadRequest,
)

// ErrPasswordTooLong - the hashing back-end truncates at 72 bytes, longer
// input is rejected before it reaches the hasher.
var ErrPasswordTooLong = New(
	CodeValidationFailed,
	"auth",
	"Password too long, maximum 72 bytes",
	http.StatusBadRequest,
)

// ErrMissingCredentials - neither JSON nor form body carried email+password.
var ErrMissingCredentials = New(
	CodeValidationFailed,
	"auth",
	"Missing email or password",
	http.StatusUnprocessableEntity,
)

// ErrAccountNotFound - used on paths where identity is already proven
// (refresh, current-user), never during credential verification.
var ErrAccountNotFound = New(
	CodeNotFound,
	"account",
	"Account not found",
	http.StatusNotFound,
)

// ErrTenantRequired - a tenant-scoped endpoint found no resolved tenant.
var ErrTenantRequired = New(
	CodeUnauthorized,
	"tenant",
	"Unable to resolve tenant, please log in again",
	http.StatusUnauthorized,
)

// ErrTenantNotFound - referenced tenant does not exist.
var ErrTenantNotFound = New(
	CodeNotFound,
	"tenant",
	"Tenant not found",
	http.StatusNotFound,
)

// ErrInsufficientPermissions - caller is authenticated but lacks the role.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// WeakPasswordError carries the specific strength rule that failed.
func WeakPasswordError(message string) *AppError {
	return New(CodeValidationFailed, "registration", message, http.StatusBadRequest)
}

// TenantUserLimitError - tenant max_users bound hit at account creation.
func TenantUserLimitError(maxUsers int) *AppError {
	return New(
		CodeLimitExceeded,
		"tenant",
		fmt.Sprintf("Tenant user limit reached (max %d users)", maxUsers),
		http.StatusBadRequest,
	)
}

// RateLimitError carries the human-readable policy description.
func RateLimitError(description string) *AppError {
	return New(
		CodeRateLimited,
		"rate_limit",
		fmt.Sprintf("Too many requests, please try again later. Limit: %s", description),
		http.StatusTooManyRequests,
	)
}
