package constants

import "fmt"

// ============================================================================
// AUTHENTICATION & SESSION ERRORS
// ============================================================================

const (
	ErrMissingUserID    = "user_id is required in the request"
	ErrInvalidSession   = "Your session has expired or is invalid. Please login again"
	ErrInvalidCreds     = "Invalid credentials."
	ErrAllFieldsNeeded  = "All fields are required."
	ErrAccountExists    = "Username or Email already exists."
	ErrSignupFailed     = "Signup failed. Please try again"
	ErrMaxUsersReached  = "Maximum concurrent users reached"
	ErrSessionNotFound  = "Session not found"
	ErrMethodNotAllowed = "Method Not Allowed"
)

// ============================================================================
// FILE UPLOAD ERRORS
// ============================================================================

const (
	ErrNoFilesUploaded     = "No files uploaded."
	ErrSelectAtLeastOne    = "Please select at least one file."
	ErrFailedToParseForm   = "Failed to parse upload form"
	ErrUnsupportedFileType = "Unsupported file type: %s"
	ErrFileProcessing      = "Error in %s: %v"
)

// ============================================================================
// RECONCILIATION & EXPORT ERRORS
// ============================================================================

const (
	ErrNoValidFiles      = "No valid files processed."
	ErrExportFailed      = "Failed to save the result file. Please try again"
	ErrNoResultAvailable = "No result file available."
)

// ============================================================================
// GENERAL ERRORS
// ============================================================================

const (
	ErrInternalServer = "Internal server error. Please contact support"
	ErrInvalidJSON    = "Invalid JSON"
)

// FormatError formats an error message template with its arguments.
func FormatError(baseError string, args ...interface{}) string {
	if len(args) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, args...)
}
