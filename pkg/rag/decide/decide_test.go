package decide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldGround(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"hi", false},
		{"Hello!", false},
		{"hey there", false},
		{"thanks", false},
		{"Good morning", false},
		{"how are you?", false},
		{"", false},
		{"   ", false},
		{"hi, how do I apply for a TA position?", true},
		{"What is the stipend for TAs?", true},
		{"attendance policy", true},
		{"ok so about the lab booking", true},
		{"Hello, I need help with reimbursement", true},
	}

	for _, tt := range tests {
		got := ShouldGround(tt.message)
		assert.Equal(t, tt.want, got.NeedRetrieval, "message %q (%s)", tt.message, got.Reason)
	}
}
