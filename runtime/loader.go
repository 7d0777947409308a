package runtime

import (
	"bufio"
	"chat-relay/errors"
	"io/fs"
	"path"
	"strings"

	"github.com/samber/lo"
)

// CensoredWords is what a dictionary directory holds: one word per line,
// one file per language.
type CensoredWords struct {
	Words     []string
	Languages []string
}

// CensoredLoader reads dictionaries from any filesystem (os.DirFS in the
// server, fstest.MapFS in tests).
type CensoredLoader struct {
	fsys fs.FS
}

func NewCensoredLoader(fsys fs.FS) *CensoredLoader {
	return &CensoredLoader{fsys: fsys}
}

// LoadAll reads every .txt file under dir. Blank lines are skipped and
// duplicates across languages are merged.
func (l *CensoredLoader) LoadAll(dir string) (*CensoredWords, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, err
	}

	var languages, words []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		file, err := l.fsys.Open(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		// Scanner copes with \r\n endings
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				words = append(words, line)
			}
		}
		_ = file.Close()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	words = lo.Uniq(words)
	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}
	return &CensoredWords{Words: words, Languages: languages}, nil
}
