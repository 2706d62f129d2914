package prompt

import (
	"strings"
)

// SystemBuilder assembles the system prompt handed to the generation backend:
// persona, response guidelines, and the retrieved knowledge block when
// grounding is active.
type SystemBuilder struct {
	persona      string
	knowledgeCtx string
}

// NewSystemBuilder creates a builder for the given persona. The knowledge
// context is optional; without it the prompt instructs the model to answer
// from general campus knowledge and say when it is unsure.
func NewSystemBuilder(persona string) *SystemBuilder {
	return &SystemBuilder{persona: persona}
}

// WithKnowledgeContext attaches the retrieved document block.
func (b *SystemBuilder) WithKnowledgeContext(knowledgeCtx string) *SystemBuilder {
	b.knowledgeCtx = knowledgeCtx
	return b
}

// Build renders the final system prompt.
func (b *SystemBuilder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeKnowledge(&prompt)
	b.writeGuidelines(&prompt)

	return prompt.String()
}

func (b *SystemBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString(b.persona)
	prompt.WriteString("\n\n")
}

func (b *SystemBuilder) writeKnowledge(prompt *strings.Builder) {
	if b.knowledgeCtx == "" {
		return
	}

	prompt.WriteString("<knowledge_base>\n")
	prompt.WriteString(b.knowledgeCtx)
	prompt.WriteString("\n</knowledge_base>\n\n")
}

func (b *SystemBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	if b.knowledgeCtx != "" {
		prompt.WriteString("Answer using the knowledge base entries above:\n")
		prompt.WriteString("- Ground every factual claim in the provided entries\n")
		prompt.WriteString("- Mention the source document when you quote a deadline, fee, or policy\n")
		prompt.WriteString("- If the entries do not cover the question, say so and suggest who to contact\n")
	} else {
		prompt.WriteString("No knowledge base entries matched this question:\n")
		prompt.WriteString("- Answer from general knowledge of how universities operate\n")
		prompt.WriteString("- Be explicit that the answer is not backed by official campus documents\n")
		prompt.WriteString("- Point the student to the relevant office when you are unsure\n")
	}
	prompt.WriteString("\n")
	prompt.WriteString("Response principles:\n")
	prompt.WriteString("1. Be concise and direct - students want answers, not essays\n")
	prompt.WriteString("2. Use plain formatting; short lists are fine, walls of text are not\n")
	prompt.WriteString("3. Never invent deadlines, fees, room numbers, or contact details\n")
	prompt.WriteString("4. Keep the conversation in the language the student is using\n")
	prompt.WriteString("</guidelines>")
}
