//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, IsValidStatus(s), "status %q should be valid", s)
	}

	assert.False(t, IsValidStatus("ghosted"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("Applied")) // case sensitive
}

func TestIsValidPriority(t *testing.T) {
	assert.True(t, IsValidPriority(PriorityHigh))
	assert.True(t, IsValidPriority(PriorityMedium))
	assert.True(t, IsValidPriority(PriorityLow))
	assert.False(t, IsValidPriority("urgent"))
	assert.False(t, IsValidPriority(""))
}

func TestIsValidInterviewType(t *testing.T) {
	assert.True(t, IsValidInterviewType(InterviewPhone))
	assert.True(t, IsValidInterviewType(InterviewVideo))
	assert.True(t, IsValidInterviewType(InterviewOnsite))
	assert.False(t, IsValidInterviewType("carrier-pigeon"))
}

func TestStatusGroups(t *testing.T) {
	// Active statuses drive follow-up reminders; responded statuses
	// drive the response rate. They must not overlap.
	for _, active := range ActiveStatuses {
		for _, responded := range RespondedStatuses {
			assert.NotEqual(t, active, responded)
		}
	}

	for _, s := range append(append([]string{}, ActiveStatuses...), RespondedStatuses...) {
		assert.True(t, IsValidStatus(s))
	}
}
