package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectImageRequest(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"Generate image of the TA application process", true},
		{"can you show me a diagram of lab booking?", true},
		{"Draw the reimbursement workflow", true},
		{"I need an illustration of the grading scale", true},
		{"Create Image of campus map", true},
		{"What is the TA stipend?", false},
		{"how do I book a lab", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectImageRequest(tt.message), "message %q", tt.message)
	}
}

func TestBuildPromptStripsCommandWords(t *testing.T) {
	out := BuildPrompt("Show me a diagram of the TA application process?", "University campus setting.")

	assert.Contains(t, out, "Professional clean infographic diagram:")
	assert.Contains(t, out, "the ta application process")
	assert.Contains(t, out, "University campus setting.")
	assert.Contains(t, out, "Navy blue and gold color scheme.")
	assert.NotContains(t, out, "show me")
	assert.NotContains(t, out, "diagram of")
	assert.NotContains(t, out, "?")
}

func TestBuildPromptWithoutCampusContext(t *testing.T) {
	out := BuildPrompt("draw the grading scale", "")
	assert.Contains(t, out, "the grading scale")
	assert.Contains(t, out, "Modern flat design. No text overlays. High quality.")
}
