package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

// ReadWords reads one word per line, trimming and lowercasing each.
// Blank lines and lines starting with # are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// StartList returns the bundled root word candidates.
func StartList() ([]string, error) {
	return readLines("start.txt")
}

// DictionaryList returns the bundled English word list.
func DictionaryList() ([]string, error) {
	return readLines("dictionary.txt")
}
