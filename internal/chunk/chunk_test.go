package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks := Split("This agreement is made between the parties.", 4000)

	require.Len(t, chunks, 1)
	assert.Equal(t, "This agreement is made between the parties.", chunks[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Nil(t, Split("", 4000))
	assert.Nil(t, Split("   \n\t  ", 4000))
}

func TestSplit_PreservesWordSequence(t *testing.T) {
	words := make([]string, 0, 2000)
	for i := 0; i < 2000; i++ {
		words = append(words, "clause")
	}
	text := strings.Join(words, " ")

	chunks := Split(text, 100)
	require.Greater(t, len(chunks), 1)

	rejoined := strings.Fields(strings.Join(chunks, " "))
	assert.Equal(t, words, rejoined)
}

func TestSplit_NormalizesWhitespace(t *testing.T) {
	chunks := Split("one\t\ttwo\n\nthree   four", 4000)

	require.Len(t, chunks, 1)
	assert.Equal(t, "one two three four", chunks[0])
}

func TestSplit_ChunkOvershootBoundedByOneWord(t *testing.T) {
	// limit = 40*3/4 = 30 characters per chunk
	word := strings.Repeat("x", 8)
	text := strings.Join([]string{word, word, word, word, word, word, word, word}, " ")

	chunks := Split(text, 40)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		// A chunk may exceed the limit only by the word that sealed it.
		assert.LessOrEqual(t, len(c), 30+1+len(word))
	}
}

func TestSplit_ZeroMaxTokensUsesDefault(t *testing.T) {
	chunks := Split("short text", 0)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplit_SingleOversizedWord(t *testing.T) {
	long := strings.Repeat("a", 500)

	chunks := Split(long, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, long, chunks[0])
}
