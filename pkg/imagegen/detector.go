package imagegen

import "strings"

var imageKeywords = []string{
	"generate image", "create image", "show image", "picture of",
	"image of", "draw", "generate a picture", "show me a picture",
	"illustration", "generate diagram", "create diagram",
	"show me a diagram", "visual",
}

// Detector reports whether a message is asking for a generated image.
type Detector func(message string) bool

// DetectImageRequest is the default detector: keyword containment over the
// lowercased message.
func DetectImageRequest(message string) bool {
	msg := strings.ToLower(message)
	for _, k := range imageKeywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

var promptFiller = []string{
	"show me", "generate", "create", "draw", "visualize",
	"diagram of", "image of", "picture of", "illustration of",
	"flowchart of", "workflow for", "flow of",
}

// BuildPrompt turns a user request into an image generation prompt. Command
// words are stripped so the model sees the subject, then a consistent campus
// infographic style is appended.
func BuildPrompt(query, campusContext string) string {
	subject := strings.ToLower(query)
	for _, w := range promptFiller {
		subject = strings.ReplaceAll(subject, w, "")
	}
	subject = strings.TrimRight(strings.TrimSpace(subject), "?")

	var sb strings.Builder
	sb.WriteString("Professional clean infographic diagram: ")
	sb.WriteString(subject)
	sb.WriteString(". ")
	if campusContext != "" {
		sb.WriteString(campusContext)
		sb.WriteString(" ")
	}
	sb.WriteString("Navy blue and gold color scheme. White background. ")
	sb.WriteString("Modern flat design. No text overlays. High quality.")
	return sb.String()
}
