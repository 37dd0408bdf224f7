package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"VolSentinel/internal/model"
)

// LoadState reads the regime state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*model.RegimeState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.RegimeState{Symbols: map[string]model.RegimeSnapshot{}}, nil
		}
		return nil, err
	}
	var state model.RegimeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Symbols == nil {
		state.Symbols = map[string]model.RegimeSnapshot{}
	}
	return &state, nil
}

// SaveState writes the regime state to a JSON file, creating its directory if needed.
func SaveState(filePath string, state *model.RegimeState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
