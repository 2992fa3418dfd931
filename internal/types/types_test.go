package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRequest_Validate(t *testing.T) {
	req := CalendarRequest{
		Industry:       "Fitness",
		TargetAudience: "busy professionals",
		ContentGoals:   "increase engagement",
	}
	assert.NoError(t, req.Validate())
}

func TestCalendarRequest_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  CalendarRequest
	}{
		{"empty", CalendarRequest{}},
		{"missing industry", CalendarRequest{TargetAudience: "a", ContentGoals: "g"}},
		{"missing audience", CalendarRequest{Industry: "i", ContentGoals: "g"}},
		{"missing goals", CalendarRequest{Industry: "i", TargetAudience: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.req.Validate())
		})
	}
}
