// Package idlist reads the identifier list that drives a batch run.
package idlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// List is the parsed identifier list.
type List struct {
	IDs []string
	// Duplicates counts lines dropped because the id appeared earlier.
	Duplicates int
}

// Load reads path, or standard input when path is "-".
func Load(path string) (List, error) {
	if strings.TrimSpace(path) == "" {
		return List{}, fmt.Errorf("identifier list: no file given")
	}
	if path == Stdin {
		return Read(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return List{}, fmt.Errorf("open identifier list: %w", err)
	}
	defer file.Close()
	list, err := Read(file)
	if err != nil {
		return List{}, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Read parses one identifier per line. UTF-8 is assumed unless a byte order
// mark says otherwise. Surrounding whitespace is trimmed; blank lines and
// lines starting with '#' are skipped; repeated ids keep their first position.
func Read(r io.Reader) (List, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var list List
	seen := map[string]struct{}{}
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		if _, ok := seen[id]; ok {
			list.Duplicates++
			continue
		}
		seen[id] = struct{}{}
		list.IDs = append(list.IDs, id)
	}
	if err := scanner.Err(); err != nil {
		return List{}, fmt.Errorf("read identifier list: %w", err)
	}
	return list, nil
}
