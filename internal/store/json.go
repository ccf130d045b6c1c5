package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// WriteJSON writes records as an indented JSON array
func WriteJSON(path string, records []model.AnnotatedRecord) error {
	if records == nil {
		records = []model.AnnotatedRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// ReadJSON reads a dataset written by WriteJSON
func ReadJSON(path string) ([]model.AnnotatedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read JSON: %w", err)
	}
	var records []model.AnnotatedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return records, nil
}
