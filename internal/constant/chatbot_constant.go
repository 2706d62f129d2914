package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// AssistantPersona is the identity block of every system prompt. The
	// retrieval guidelines are appended per request by the prompt builder.
	AssistantPersona = `You are Campus SmartAssist, the official AI assistant for campus student services.

You help students with questions about academics, administration, campus facilities, events, and university policies. You answer from the official knowledge base whenever entries are provided, and you are honest about the limits of what you know.

Hard rules:
1. Never invent deadlines, fees, room numbers, or contact details.
2. When you state a policy fact, name the document it came from.
3. If you cannot answer from official information, say so and point the student to the right office.`

	// SessionTitleMaxLength bounds auto-generated session titles taken from
	// the first user message.
	SessionTitleMaxLength = 60

	// Ollama defaults
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaChatEndpoint   = "/api/chat"
)
