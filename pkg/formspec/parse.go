package formspec

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a form template from a byte slice
func Parse(data []byte) (*Form, error) {
	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}

	if err := Validate(&form); err != nil {
		return nil, err
	}

	return &form, nil
}

// ParseFile parses a form template from disk
func ParseFile(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form template: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a Form to JSON bytes
func (f *Form) ToJSON() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
