// Package errors provides structured error handling for keyforge.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes for the CLI collaborator's translation of core error kinds.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input
	ExitPolicy     = 3 // Policy violation (duplicate name, non-empty group, proof mismatch)
	ExitNotFound   = 4 // Resource not found
	ExitDependency = 5 // Store I/O / transaction failure
)

// KeyforgeError is the structured error type for keyforge.
type KeyforgeError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KeyforgeError) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KeyforgeError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KeyforgeError.
func (e *KeyforgeError) Is(target error) bool {
	var t *KeyforgeError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors, grouped by the taxonomy of spec §7.
var (
	// Input errors.
	ErrInvalidMnemonic   = &KeyforgeError{Code: "INVALID_MNEMONIC", Message: "invalid mnemonic phrase", ExitCode: ExitInput}
	ErrInvalidPath       = &KeyforgeError{Code: "INVALID_DERIVATION_PATH", Message: "invalid derivation path", ExitCode: ExitInput}
	ErrInvalidPrivateKey = &KeyforgeError{Code: "INVALID_PRIVATE_KEY", Message: "invalid private key", ExitCode: ExitInput}
	ErrInvalidAddress    = &KeyforgeError{Code: "INVALID_ADDRESS", Message: "invalid address format", ExitCode: ExitInput}
	ErrUnknownBlockchain = &KeyforgeError{Code: "UNKNOWN_BLOCKCHAIN", Message: "unknown blockchain", ExitCode: ExitInput}

	// Policy errors.
	ErrDuplicateName    = &KeyforgeError{Code: "DUPLICATE_NAME", Message: "name already exists in this scope", ExitCode: ExitPolicy}
	ErrMnemonicMismatch = &KeyforgeError{
		Code: "MNEMONIC_MISMATCH", Message: "supplied mnemonic does not match the stored master secret", ExitCode: ExitPolicy,
	}
	ErrPrivateKeyMismatch = &KeyforgeError{
		Code: "PRIVATE_KEY_MISMATCH", Message: "supplied private key does not match the stored value", ExitCode: ExitPolicy,
	}
	ErrNotEmpty = &KeyforgeError{Code: "NOT_EMPTY", Message: "entity has children and cannot be removed", ExitCode: ExitPolicy}
	ErrUnsupportedDepth = &KeyforgeError{
		Code: "UNSUPPORTED_DEPTH", Message: "this chain does not support the requested hierarchy depth", ExitCode: ExitPolicy,
	}
	ErrUnsupportedBip = &KeyforgeError{
		Code: "UNSUPPORTED_BIP", Message: "this chain does not expose the requested BIP", ExitCode: ExitPolicy,
	}

	// Dependency errors.
	ErrStoreIO = &KeyforgeError{Code: "STORE_IO", Message: "store I/O failed", ExitCode: ExitDependency}
	ErrTransactionFailed = &KeyforgeError{
		Code: "TRANSACTION_FAILED", Message: "store transaction failed and was rolled back", ExitCode: ExitDependency,
	}

	// Not-implemented.
	ErrNotImplemented = &KeyforgeError{
		Code: "NOT_IMPLEMENTED", Message: "operation not implemented for this chain", ExitCode: ExitGeneral,
	}

	// Not-found.
	ErrAccountNotFound      = &KeyforgeError{Code: "ACCOUNT_NOT_FOUND", Message: "account not found", ExitCode: ExitNotFound}
	ErrWalletGroupNotFound  = &KeyforgeError{Code: "WALLET_GROUP_NOT_FOUND", Message: "wallet group not found", ExitCode: ExitNotFound}
	ErrWalletNotFound       = &KeyforgeError{Code: "WALLET_NOT_FOUND", Message: "wallet not found", ExitCode: ExitNotFound}
	ErrAddressGroupNotFound = &KeyforgeError{Code: "ADDRESS_GROUP_NOT_FOUND", Message: "address group not found", ExitCode: ExitNotFound}
	ErrSubwalletNotFound    = &KeyforgeError{Code: "SUBWALLET_NOT_FOUND", Message: "subwallet not found", ExitCode: ExitNotFound}
)

// New creates a new KeyforgeError with the given code and message.
func New(code, message string) *KeyforgeError {
	return &KeyforgeError{Code: code, Message: message, ExitCode: ExitGeneral}
}

// Wrap wraps an error with additional context, preserving its code/exit-code
// if it is already a KeyforgeError.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KeyforgeError
	if errors.As(err, &ke) {
		return &KeyforgeError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeyforgeError{Code: "GENERAL_ERROR", Message: msg, Cause: err, ExitCode: ExitGeneral}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KeyforgeError
	if errors.As(err, &ke) {
		return &KeyforgeError{
			Code: ke.Code, Message: ke.Message, Details: details,
			Suggestion: ke.Suggestion, Cause: ke.Cause, ExitCode: ke.ExitCode,
		}
	}

	return &KeyforgeError{Code: "GENERAL_ERROR", Message: err.Error(), Details: details, Cause: err, ExitCode: ExitGeneral}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KeyforgeError
	if errors.As(err, &ke) {
		return &KeyforgeError{
			Code: ke.Code, Message: ke.Message, Details: ke.Details,
			Suggestion: suggestion, Cause: ke.Cause, ExitCode: ke.ExitCode,
		}
	}

	return &KeyforgeError{Code: "GENERAL_ERROR", Message: err.Error(), Suggestion: suggestion, Cause: err, ExitCode: ExitGeneral}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ke *KeyforgeError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ke *KeyforgeError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
