package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidID     ErrorCode = "VALIDATION_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound ErrorCode = "TRANSACTION_001"
	TransactionNotOwned ErrorCode = "TRANSACTION_002"
)

// Mapping rule error codes (RULE_*)
const (
	RuleNotFound     ErrorCode = "RULE_001"
	RuleInvalidScope ErrorCode = "RULE_002"
	RuleTextRequired ErrorCode = "RULE_003"
)

// Budget category error codes (CATEGORY_*)
const (
	CategoryNotFound     ErrorCode = "CATEGORY_001"
	CategoryUnresolvable ErrorCode = "CATEGORY_002"
)

// Suggestion pipeline error codes (SUGGESTION_*)
const (
	SuggestionNotFound    ErrorCode = "SUGGESTION_001"
	SuggestionPartialFail ErrorCode = "SUGGESTION_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_003"
	SystemServiceUnavailable ErrorCode = "SYSTEM_004"
	SystemPartialWrite       ErrorCode = "SYSTEM_005"
)

var errorMessages = map[ErrorCode]string{
	ValidationGeneral:       "Request validation failed",
	ValidationRequiredField: "A required field is missing",
	ValidationInvalidFormat: "A field has an invalid format",
	ValidationInvalidID:     "Invalid identifier",

	TransactionNotFound: "Transaction not found",
	TransactionNotOwned: "Transaction belongs to another owner",

	RuleNotFound:     "Mapping rule not found",
	RuleInvalidScope: "Invalid rule scope",
	RuleTextRequired: "Rule match text is required",

	CategoryNotFound:     "Budget category not found",
	CategoryUnresolvable: "Category reference cannot be resolved",

	SuggestionNotFound:    "No pending suggestion for this transaction",
	SuggestionPartialFail: "Some suggestions could not be processed",

	SystemInternalError:      "An internal error occurred",
	SystemDatabaseError:      "A storage error occurred",
	SystemRateLimitExceeded:  "Too many requests",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemPartialWrite:       "A bulk write was only partially applied",
}

// GetErrorMessage returns the default message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if message, ok := errorMessages[code]; ok {
		return message
	}
	return "An unexpected error occurred"
}

// IsValidErrorCode checks whether the code is known
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
