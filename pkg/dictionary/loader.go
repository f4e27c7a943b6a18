// Package dictionary loads word-frequency lists used by the correction
// helper and the CLI.
//
// The format is one entry per line: a word optionally followed by an
// integer frequency, separated by whitespace. Lines starting with '#'
// are skipped. Words without a frequency default to 1.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Load reads a word list from path.
func Load(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	words := make(map[string]int)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		freq := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				log.Warnf("line %d: bad frequency %q, using 1", lineNo, fields[1])
			} else {
				freq = parsed
			}
		}
		words[fields[0]] = freq
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	log.Debugf("Loaded %d dictionary entries from %s", len(words), path)
	return words, nil
}

// LoadChoices reads a plain candidate list (one choice per line, '#'
// comments skipped), preserving input order.
func LoadChoices(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening choices: %w", err)
	}
	defer f.Close()

	var choices []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		choices = append(choices, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading choices: %w", err)
	}
	return choices, nil
}
