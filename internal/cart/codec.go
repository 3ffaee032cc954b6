package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"padelmania/internal/models"
)

var errCorrupt = errors.New("corrupt cart data")

// Encode serializes lines in order. An empty cart encodes as "[]".
func Encode(lines []models.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return json.Marshal(lines)
}

// Decode is the inverse of Encode. Any structural problem (bad JSON, empty
// id, non-positive quantity, repeated id) makes the whole blob corrupt.
func Decode(data []byte) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: invalid line %+v", errCorrupt, l)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %q", errCorrupt, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return lines, nil
}
