package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrSchema          = errors.New("invalid question schema")
	ErrIndex           = errors.New("index out of range")
	ErrAuthRequired    = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
	ErrNotFound        = errors.New("not found")
	ErrNetwork         = errors.New("network error")
	ErrServer          = errors.New("server error")
	ErrNoRatingAnswers = errors.New(NoRatingQuestionsMessage)
	ErrNoRatingSurveys = errors.New(NoRatingSurveysMessage)
)

// Respondent-facing texts for the two feedback failures
const (
	NoRatingQuestionsMessage = "No rating questions found in this survey."
	NoRatingSurveysMessage   = "You have not taken any rating surveys yet."
)

// SchemaError reports a question that violates its variant's shape
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrSchema, e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// IndexError reports an out-of-range question or option position
type IndexError struct {
	What  string // "question" or "option"
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %s %d (len %d)", ErrIndex, e.What, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndex }

// ValidationError collects per-field problems found before a save or submit
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems: %v", ErrValidation, len(e.Problems), e.Problems)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// APIError carries the status and message returned by the survey API
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Kind }
