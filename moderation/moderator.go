// Package moderation masks censored words in chat content.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// leet maps look-alike characters back to the letter they imitate.
var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e', '€': 'e',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o',
	'5': 's', '$': 's',
}

// Moderator matches a fixed dictionary with an Aho-Corasick automaton.
// It is safe for concurrent use once built.
type Moderator struct {
	log         *slog.Logger
	matcher     *goahocorasick.Machine
	replacement rune
}

// folded is the searchable form of a text: letters only, lower case,
// each rune remembering its position in the original.
type folded struct {
	runes     []rune
	positions []int
}

func NewModerator(words []string, replacement rune, log *slog.Logger) (*Moderator, error) {
	patterns := make([][]rune, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		f := fold([]rune(word))
		if _, dup := seen[string(f.runes)]; dup || len(f.runes) == 0 {
			continue
		}
		seen[string(f.runes)] = struct{}{}
		patterns = append(patterns, f.runes)
	}

	if len(patterns) == 0 {
		return &Moderator{log: log, replacement: replacement}, nil
	}
	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{log: log, matcher: machine, replacement: replacement}, nil
}

// Censor returns content with every match replaced, spacing preserved.
func (m *Moderator) Censor(content string) string {
	censored, _ := m.Inspect(content)
	return censored
}

// Inspect censors content and reports the dictionary words it found.
// Noise between letters ("b.a.d") is masked together with the word.
func (m *Moderator) Inspect(content string) (string, []string) {
	original := []rune(content)
	f := fold(original)
	if m.matcher == nil || len(f.runes) == 0 {
		return content, nil
	}

	terms := m.matcher.MultiPatternSearch(f.runes, false)
	if len(terms) == 0 {
		return content, nil
	}

	found := make([]string, 0, len(terms))
	for _, term := range terms {
		end := term.Pos + len(term.Word)
		if term.Pos < 0 || end > len(f.positions) {
			continue
		}
		for i := f.positions[term.Pos]; i <= f.positions[end-1]; i++ {
			original[i] = m.replacement
		}
		found = append(found, string(term.Word))
	}
	m.log.Debug("Content censored", "matches", len(found))
	return string(original), found
}

func fold(input []rune) folded {
	f := folded{runes: make([]rune, 0, len(input)), positions: make([]int, 0, len(input))}
	for i, r := range input {
		if alias, ok := leet[r]; ok {
			r = alias
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		f.runes = append(f.runes, unicode.ToLower(r))
		f.positions = append(f.positions, i)
	}
	return f
}
