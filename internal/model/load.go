package model

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSongMetadata reads a v1 metadata.yml file. Unknown keys are ignored.
func LoadSongMetadata(path string) (*LegacySongMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read song metadata: %w", err)
	}
	var meta LegacySongMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse song metadata %s: %w", path, err)
	}
	return &meta, nil
}

// LoadChart reads a v1 per-difficulty chart JSON file.
func LoadChart(path string) (*LegacyChart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart: %w", err)
	}
	var chart LegacyChart
	if err := json.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse chart %s: %w", path, err)
	}
	return &chart, nil
}

// LoadArena reads a v1 arena YAML file.
func LoadArena(path string) (*LegacyArena, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena: %w", err)
	}
	var arena LegacyArena
	if err := yaml.Unmarshal(data, &arena); err != nil {
		return nil, fmt.Errorf("failed to parse arena %s: %w", path, err)
	}
	return &arena, nil
}
