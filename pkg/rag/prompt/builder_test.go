package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGrounded(t *testing.T) {
	knowledge := "**TA Application Guidelines** [academic, Relevance: 91%]\nCGPA minimum 7.5"
	out := NewSystemBuilder("You are a campus assistant.").
		WithKnowledgeContext(knowledge).
		Build()

	assert.True(t, strings.HasPrefix(out, "You are a campus assistant.\n\n"))
	assert.Contains(t, out, "<knowledge_base>\n"+knowledge+"\n</knowledge_base>")
	assert.Contains(t, out, "Answer using the knowledge base entries above")
	assert.NotContains(t, out, "No knowledge base entries matched")
}

func TestBuildUngrounded(t *testing.T) {
	out := NewSystemBuilder("You are a campus assistant.").Build()

	assert.NotContains(t, out, "<knowledge_base>")
	assert.Contains(t, out, "No knowledge base entries matched this question")
	assert.Contains(t, out, "not backed by official campus documents")
}

func TestBuildAlwaysCarriesResponsePrinciples(t *testing.T) {
	for _, knowledge := range []string{"", "some entry"} {
		out := NewSystemBuilder("persona").WithKnowledgeContext(knowledge).Build()
		assert.Contains(t, out, "Response principles:")
		assert.Contains(t, out, "Never invent deadlines, fees, room numbers, or contact details")
		assert.True(t, strings.HasSuffix(out, "</guidelines>"))
	}
}
