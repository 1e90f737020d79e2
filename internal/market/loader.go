package market

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON reads a bar history from a JSON array file. Dates must be strictly
// increasing; a misordered file is rejected rather than silently resorted.
func LoadJSON(path string) ([]Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer file.Close()

	var bars []Bar
	if err := json.NewDecoder(file).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return nil, fmt.Errorf("bars out of order at index %d (%s before %s)",
				i, bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return bars, nil
}
