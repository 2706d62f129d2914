package decide

import (
	"strings"
)

// Decision records whether retrieval should run for a message.
type Decision struct {
	NeedRetrieval bool
	Reason        string
}

var smalltalk = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true,
	"thanks": true, "thank you": true, "thx": true,
	"ok": true, "okay": true, "bye": true, "goodbye": true,
	"good morning": true, "good afternoon": true, "good evening": true,
	"how are you": true, "who are you": true,
}

// ShouldGround decides whether a message needs knowledge base retrieval.
// Pure greetings and pleasantries skip retrieval; anything with substance
// goes through it. This is a cheap lexical check, not an LLM call, so it
// errs on the side of retrieving.
func ShouldGround(message string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.Trim(normalized, ".,!?")

	if normalized == "" {
		return Decision{NeedRetrieval: false, Reason: "empty message"}
	}

	if smalltalk[normalized] {
		return Decision{NeedRetrieval: false, Reason: "smalltalk"}
	}

	// Short messages that start with a greeting and carry nothing else are
	// still smalltalk ("hi there", "hello!").
	if len(normalized) < 16 {
		for phrase := range smalltalk {
			if strings.HasPrefix(normalized, phrase) {
				rest := strings.TrimSpace(strings.TrimPrefix(normalized, phrase))
				if rest == "" || smalltalk[rest] || rest == "there" {
					return Decision{NeedRetrieval: false, Reason: "smalltalk"}
				}
			}
		}
	}

	return Decision{NeedRetrieval: true, Reason: "substantive question"}
}
