package moderation

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// Dictionary words are picked so they never hide inside ordinary words.
func TestModerator_Inspect(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator([]string{"spam", "scam", "troll"}, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Single word keeps spacing",
			input:    "Stop the spam now",
			expected: "Stop the **** now",
			words:    []string{"spam"},
		},
		{
			name:     "Repeated word",
			input:    "spam spam spam",
			expected: "**** **** ****",
			words:    []string{"spam", "spam", "spam"},
		},
		{
			name:     "Leet speak with inner punctuation",
			input:    "Pure $.c.4.m !",
			expected: "Pure ******* !",
			words:    []string{"scam"},
		},
		{
			name:     "Upper case and separators",
			input:    "T-R-O-L-L or S.P.A.M",
			expected: "********* or *******",
			words:    []string{"troll", "spam"},
		},
		{
			name:     "Accented text around a match",
			input:    "Un été sans spam",
			expected: "Un été sans ****",
			words:    []string{"spam"},
		},
		{
			name:     "Trailing punctuation is kept",
			input:    "No scam!",
			expected: "No ****!",
			words:    []string{"scam"},
		},
		{
			name:     "Clean message",
			input:    "Chat-Relay is great",
			expected: "Chat-Relay is great",
			words:    nil,
		},
		{
			name:     "Empty message",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.Inspect(tt.input)
			req.Equal(tt.expected, content, "test=%s", tt.name)
			req.Equal(tt.words, words, "expected=%s,words=%s", tt.expected, words)
			req.Equal(tt.expected, mod.Censor(tt.input))
		})
	}
}

func TestModerator_Ignores_Noise_Only_Entries(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a dictionary polluted with punctuation and blanks
	mod, err := NewModerator([]string{"...", ",,,", "", "spam"}, replacementChar, log)
	req.NoError(err)

	// Then real words are still censored
	content, words := mod.Inspect("No spam here")
	req.Equal("No **** here", content)
	req.Equal([]string{"spam"}, words)

	// And punctuation stays untouched
	content, words = mod.Inspect("Hello ...")
	req.Equal("Hello ...", content)
	req.Nil(words)
}

func BenchmarkModerator_Censor(b *testing.B) {
	log := logs.GetLoggerFromLevel(slog.LevelError)
	dictionary := make([]string, 0, 10_000)
	for i := 0; i < 10_000; i++ {
		dictionary = append(dictionary, fmt.Sprintf("forbidden%d", i))
	}
	mod, err := NewModerator(dictionary, replacementChar, log)
	if err != nil {
		b.Fatal(err)
	}
	content := strings.Repeat("a perfectly ordinary chat message ", 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mod.Censor(content)
	}
}
