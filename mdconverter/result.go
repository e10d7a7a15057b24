package mdconverter

import (
	"encoding/json"
	"fmt"

	"github.com/rgonek/lark-block-converter/blocks"
)

// Result holds the output of a conversion.
type Result struct {
	Content  blocks.Content   `json:"content"`
	Warnings []blocks.Warning `json:"warnings,omitempty"`
}

// JSON marshals the block tree in the platform's wire shape.
func (r Result) JSON() ([]byte, error) {
	data, err := json.Marshal(r.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal block JSON: %w", err)
	}
	return data, nil
}

// IndentedJSON is JSON with two-space indentation.
func (r Result) IndentedJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal block JSON: %w", err)
	}
	return data, nil
}
