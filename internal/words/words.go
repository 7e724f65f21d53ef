// internal/words/words.go
//
// Vocabulary loading for the game session.
//
// Sources:
//   - path == "": the embedded default list (assets/words.txt).
//   - otherwise: a file with one word per line (WORDS_FILE).
//
// Normalization:
//   • Lines are trimmed and lowercased; blank lines and "#" comments skipped.
//   • Words containing anything but a–z are dropped.
//   • Duplicates are removed, keeping the first occurrence.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/scramble/assets"
)

var ErrEmpty = errors.New("words: vocabulary is empty")

// Load reads the vocabulary from path, or the embedded default when path is empty.
func Load(path string) ([]string, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if path == "" {
		rc, err = assets.Vocabulary()
	} else {
		rc, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer rc.Close()

	list, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %q: %w", path, err)
	}
	log.Debug().Str("source", sourceName(path)).Int("words", len(list)).Msg("vocabulary loaded")
	return list, nil
}

// Parse reads one word per line from r and normalizes the result.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isAlpha(w) {
			log.Debug().Str("word", w).Msg("skipping non-alphabetic word")
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	out = lo.Uniq(out)
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
