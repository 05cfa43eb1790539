// Package language provides the heuristic that picks the conversational
// role for a session. It is a substring-count heuristic, not a language
// model; misclassification is possible and accepted.
package language

import (
	"strings"

	"github.com/sells-group/intake-engine/internal/model"
)

// spanishWords is the fixed set of common Spanish function and content
// words checked against incoming text.
var spanishWords = []string{
	"hola", "necesito", "ayuda", "accidente", "abogado",
	"tengo", "por favor", "gracias", "buenas", "días",
}

// Classifier detects the conversational language of a message.
type Classifier struct {
	words []string
}

// NewClassifier returns a classifier using the default Spanish word set.
func NewClassifier() *Classifier {
	return &Classifier{words: spanishWords}
}

// Classify returns Spanish when at least two distinct words from the set
// match the lower-cased input, English otherwise. Deterministic, no side
// effects.
func (c *Classifier) Classify(text string) model.Language {
	lower := strings.ToLower(text)
	count := 0
	for _, w := range c.words {
		if strings.Contains(lower, w) {
			count++
			if count >= 2 {
				return model.LanguageSpanish
			}
		}
	}
	return model.LanguageEnglish
}
