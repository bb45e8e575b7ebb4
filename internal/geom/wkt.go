package geom

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT parses one WKT geometry per non-empty line.
func ParseWKT(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	var d Data
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return Data{}, fmt.Errorf("wkt line %d: %w", i+1, err)
		}
		d.add(g, map[string]any{"wkt": line})
	}
	if len(d.Features) == 0 {
		return Data{}, ErrEmptyData
	}
	return d, nil
}

// LoadWKT reads a file of WKT geometries.
func LoadWKT(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseWKT(string(b))
}
