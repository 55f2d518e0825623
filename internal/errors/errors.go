// Package errors provides standardized error types for the inicfg parser and CLI.
//
// The errors package defines structured error types so callers can tell a
// missing section from a missing option or a broken interpolation chain
// without matching on message text.
//
// # Error Types
//
// IniError is the primary error type, containing:
//   - Code: Categorizes the error (NO_SECTION, NO_OPTION, PARSE, etc.)
//   - Message: Human-readable error description
//   - Section, Option: The names involved (if applicable)
//   - File, Line: Source position for parse errors
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Every code has a pre-defined sentinel:
//
//	errors.ErrNoSection           // section does not exist
//	errors.ErrNoOption            // option does not exist
//	errors.ErrDuplicateSection    // explicit add of an existing section
//	errors.ErrInterpolationMissing // %(name) could not be resolved
//	errors.ErrInterpolationCycle  // %(name) chain never terminates
//	errors.ErrParse               // malformed input
//
// # Usage
//
//	return errors.NoSection("server")
//	return errors.MissingOption("server", "url", "host")
//	return errors.Parse("app.ini", 12, "option outside of a section")
//	return errors.Wrap(errors.ErrCodeIO, "failed to open include", err)
//
// # Error Checking
//
// Comparison is by code, so any NO_OPTION error matches ErrNoOption:
//
//	if errors.Is(err, errors.ErrNoOption) {
//	    // fall back to a default
//	}
//
//	var iniErr *errors.IniError
//	if errors.As(err, &iniErr) {
//	    fmt.Printf("%s at %s:%d\n", iniErr.Code, iniErr.File, iniErr.Line)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNoSection            ErrorCode = "NO_SECTION"            // Section not found
	ErrCodeNoOption             ErrorCode = "NO_OPTION"             // Option not found
	ErrCodeDuplicateSection     ErrorCode = "DUPLICATE_SECTION"     // Section already exists
	ErrCodeInterpolationMissing ErrorCode = "INTERPOLATION_MISSING" // %(name) unresolvable
	ErrCodeInterpolationCycle   ErrorCode = "INTERPOLATION_CYCLE"   // %(name) never terminates
	ErrCodeParse                ErrorCode = "PARSE"                 // Malformed input
	ErrCodeIncludeDepth         ErrorCode = "INCLUDE_DEPTH"         // Include nesting too deep
	ErrCodeIO                   ErrorCode = "IO"                    // Underlying I/O failure
	ErrCodeValidation           ErrorCode = "VALIDATION"            // Argument validation failed
	ErrCodeConfig               ErrorCode = "CONFIG"                // CLI settings error
)

// IniError represents a structured error with context about the failing lookup or parse.
type IniError struct {
	Code    ErrorCode
	Message string
	Section string
	Option  string
	File    string
	Line    int
	Err     error
}

// Error implements the error interface.
func (e *IniError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	switch {
	case e.Section != "" && e.Option != "":
		fmt.Fprintf(&b, ": [%s] %s", e.Section, e.Option)
	case e.Section != "":
		fmt.Fprintf(&b, ": [%s]", e.Section)
	case e.Option != "":
		fmt.Fprintf(&b, ": %s", e.Option)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain traversal.
func (e *IniError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *IniError) Is(target error) bool {
	t, ok := target.(*IniError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors, one per code. Use these with errors.Is().
var (
	ErrNoSection            = &IniError{Code: ErrCodeNoSection, Message: "no such section"}
	ErrNoOption             = &IniError{Code: ErrCodeNoOption, Message: "no such option"}
	ErrDuplicateSection     = &IniError{Code: ErrCodeDuplicateSection, Message: "duplicate section"}
	ErrInterpolationMissing = &IniError{Code: ErrCodeInterpolationMissing, Message: "interpolation missing option"}
	ErrInterpolationCycle   = &IniError{Code: ErrCodeInterpolationCycle, Message: "interpolation does not terminate"}
	ErrParse                = &IniError{Code: ErrCodeParse, Message: "invalid file format"}
	ErrIncludeDepth         = &IniError{Code: ErrCodeIncludeDepth, Message: "include nesting too deep"}
	ErrIO                   = &IniError{Code: ErrCodeIO, Message: "i/o error"}
	ErrValidation           = &IniError{Code: ErrCodeValidation, Message: "invalid argument"}
	ErrConfig               = &IniError{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// NoSection creates an error for a section that doesn't exist.
func NoSection(section string) error {
	return &IniError{Code: ErrCodeNoSection, Message: "no such section", Section: section}
}

// NoOption creates an error for an option missing from an existing section.
func NoOption(section, option string) error {
	return &IniError{Code: ErrCodeNoOption, Message: "no such option", Section: section, Option: option}
}

// DuplicateSection creates an error for an explicit add of an existing section.
func DuplicateSection(section string) error {
	return &IniError{Code: ErrCodeDuplicateSection, Message: "section already exists", Section: section}
}

// MissingOption reports that name, referenced from section/option, resolved nowhere.
func MissingOption(section, option, name string) error {
	return &IniError{
		Code:    ErrCodeInterpolationMissing,
		Message: fmt.Sprintf("bad interpolation variable reference %%(%s)", name),
		Section: section,
		Option:  option,
	}
}

// Cycle reports that resolving section/option reached %(name) again while
// depth references were being expanded.
func Cycle(section, option, name string, depth int) error {
	return &IniError{
		Code:    ErrCodeInterpolationCycle,
		Message: fmt.Sprintf("recursive reference %%(%s) at depth %d", name, depth),
		Section: section,
		Option:  option,
	}
}

// Parse creates a malformed-input error carrying the source position.
func Parse(file string, line int, msg string) error {
	return &IniError{Code: ErrCodeParse, Message: msg, File: file, Line: line}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &IniError{Code: ErrCodeValidation, Message: msg}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &IniError{Code: code, Message: msg, Err: err}
}

// WrapAt is Wrap with a source position.
func WrapAt(code ErrorCode, file string, line int, msg string, err error) error {
	return &IniError{Code: code, Message: msg, File: file, Line: line, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
