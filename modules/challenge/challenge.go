// Package challenge loads the challenge values a run proves against:
// the grid's input feed and the output values the program is expected
// to produce.
package challenge

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Challenge is the external challenge document.
type Challenge struct {
	Inputs   []uint32 `json:"inputs"`
	Expected []uint32 `json:"expected"`
}

// Load reads a challenge document from a JSON file.
func Load(path string) (*Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading challenge file: %w", err)
	}

	var ch Challenge
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, fmt.Errorf("parsing challenge file %s: %w", path, err)
	}

	return &ch, nil
}

// ParseValueList parses a comma-separated list of decimal values, the
// inline flag form of the challenge document. An empty string is an empty
// list, and whitespace around entries is tolerated.
func ParseValueList(s string) ([]uint32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]uint32, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid challenge value %q: %w", part, err)
		}
		values = append(values, uint32(v))
	}

	return values, nil
}
