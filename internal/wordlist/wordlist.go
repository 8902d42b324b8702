package wordlist

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a wordlist file and returns its entries in file order,
// whitespace-trimmed with blank lines removed. Duplicates are kept:
// every entry is probed independently, exactly as listed.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result, nil
}
