// Package chunk splits contract text into pieces small enough for a single
// completion request. The cap is a character heuristic: 1 token is roughly
// 4 characters, so a maxTokens budget allows maxTokens*3/4 characters of
// space-joined words per chunk.
package chunk

import "strings"

// DefaultMaxTokens is the per-request token budget used when none is configured.
const DefaultMaxTokens = 4000

// Split breaks text into word-granular chunks. Words are whitespace-delimited;
// a chunk is sealed only after a whole word pushes its space-joined length
// past the cap, so a chunk may overshoot by up to one word. Order is the
// original text order, and re-joining the chunks with single spaces
// reproduces the whitespace-normalized word sequence. Empty input yields nil.
func Split(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	limit := maxTokens * 3 / 4

	var chunks []string
	var current []string
	currentLen := 0 // space-joined length of current

	for _, word := range strings.Fields(text) {
		if currentLen > 0 {
			currentLen++ // joining space
		}
		current = append(current, word)
		currentLen += len(word)

		if currentLen > limit {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			currentLen = 0
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
