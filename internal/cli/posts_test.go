package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "hello world", summarize("hello\nworld", 100))
}

func TestSummarizeTruncatesLongContent(t *testing.T) {
	got := summarize(strings.Repeat("a", 150), 100)
	assert.Equal(t, strings.Repeat("a", 100)+"...", got)
}

func TestSummarizeKeepsRunesWhole(t *testing.T) {
	// Multi-byte content longer than the limit must not be cut mid-rune
	got := summarize(strings.Repeat("é", 150), 100)
	assert.Equal(t, strings.Repeat("é", 100)+"...", got)
	require.True(t, strings.HasSuffix(got, "é..."))
}
