// Package types provides type definitions for structured data used throughout the calendar-agent system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// SearchResult is a single organic web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// CalendarRequest holds the user inputs that drive a calendar generation run.
// The character hints mirror the input form (industry 100, audience/goals 200)
// but only presence is enforced server-side.
type CalendarRequest struct {
	Industry       string `json:"industry" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	ContentGoals   string `json:"content_goals" validate:"required"`
}

// Validate validates the CalendarRequest using the validator.
func (r *CalendarRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
