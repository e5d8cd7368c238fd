// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Upload Request Errors (SCR001-SCR002)
//
//	SCR001 - No file: No file was included in the request
//	         Action: Choose a file to screen and try again
//	         Patterns: "no file uploaded"
//
//	SCR002 - Unnamed file: The uploaded file has no name
//	         Action: Select a file before submitting the form
//	         Patterns: "no file selected"
//
// # File Errors (SCR003-SCR005, SCR007)
//
//	SCR003 - Unreadable file: The file could not be read
//	         Action: Make sure the file is a valid CSV or Excel workbook
//	         Patterns: "error reading file", "parse delimited text",
//	         "open workbook", "read sheet"
//
//	SCR004 - Empty file: The uploaded file contains no data
//	         Action: Check that the file has a header row and data rows
//	         Patterns: "empty file"
//
//	SCR005 - Ragged rows: A row has more columns than the header
//	         Action: Check the file for stray delimiters or unquoted values
//	         Patterns: "fields, saw"
//
//	SCR007 - File too large: File exceeds the maximum upload size
//	         Action: Split the list into smaller files
//	         Patterns: "request body too large", "file too large"
//
// # Screening Errors (SCR006, SCR008-SCR009)
//
//	SCR006 - System busy: Too many screenings in progress
//	         Action: Please wait a moment and try again
//	         Patterns: "too many screenings"
//
//	SCR008 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	SCR009 - Request timeout: Request timed out
//	         Action: Try a smaller file or check your connection
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are defined
// before general ones: an empty file surfaced through the upload path reads
// "Error reading file: ... empty file", and must map to SCR004, not SCR003.

package screening

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Patterns are matched using strings.Contains, so partial matches
// work. The first matching pattern wins, so order matters:
//   - More specific patterns come before general ones
//   - Multiple patterns can map to the same error code
var errorPatterns = []errorPattern{
	// =========================================================================
	// Upload Request Errors (SCR001-SCR002)
	// The request form was incomplete.
	// =========================================================================
	{
		pattern: "no file uploaded",
		msg: UserMessage{
			Message: "No file was included in the request",
			Action:  "Choose a file to screen and try again",
			Code:    "SCR001",
		},
	},
	{
		pattern: "no file selected",
		msg: UserMessage{
			Message: "The uploaded file has no name",
			Action:  "Select a file before submitting the form",
			Code:    "SCR002",
		},
	},

	// =========================================================================
	// File Errors (SCR003-SCR005, SCR007)
	// The uploaded file could not be processed. Specific parse failures
	// come before the general "error reading file" wrapper pattern.
	// =========================================================================
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the list into smaller files",
			Code:    "SCR007",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the list into smaller files",
			Code:    "SCR007",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file contains no data",
			Action:  "Check that the file has a header row and data rows",
			Code:    "SCR004",
		},
	},
	{
		pattern: "fields, saw",
		msg: UserMessage{
			Message: "A row has more columns than the header",
			Action:  "Check the file for stray delimiters or unquoted values",
			Code:    "SCR005",
		},
	},
	{
		pattern: "error reading file",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Make sure the file is a valid CSV or Excel workbook",
			Code:    "SCR003",
		},
	},
	{
		pattern: "parse delimited text",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Make sure the file is a valid CSV or Excel workbook",
			Code:    "SCR003",
		},
	},
	{
		pattern: "open workbook",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Make sure the file is a valid CSV or Excel workbook",
			Code:    "SCR003",
		},
	},
	{
		pattern: "read sheet",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Make sure the file is a valid CSV or Excel workbook",
			Code:    "SCR003",
		},
	},

	// =========================================================================
	// Screening Errors (SCR006, SCR008-SCR009)
	// The screening itself could not run to completion.
	// =========================================================================
	{
		pattern: "too many screenings",
		msg: UserMessage{
			Message: "Too many screenings in progress",
			Action:  "Please wait a moment and try again",
			Code:    "SCR006",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "SCR008",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "SCR009",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// Request throttling kicked in.
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be
// shown to users. Returns true if the error matches a specific pattern
// (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean
// message for display.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a
// user-friendly message. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
