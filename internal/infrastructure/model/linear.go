// Package model loads and evaluates the persisted personalization model.
// The artifact is a JSON-serialized linear estimator exported by the
// offline training pipeline: an intercept, a weight per numeric feature
// column, and a weight per one-hot product category.
package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// LinearModel predicts a suitability score from a single tabular row.
type LinearModel struct {
	Intercept       float64            `json:"intercept"`
	Weights         map[string]float64 `json:"weights"`
	CategoryWeights map[string]float64 `json:"category_weights"`
}

// Load reads and validates a model artifact from disk.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model artifact %s has no feature weights", path)
	}
	return &m, nil
}

// Predict evaluates the model over one feature row. Every weighted column
// must be present in the row; a missing column is an inference error.
func (m *LinearModel) Predict(category string, row map[string]float64) (float64, error) {
	score := m.Intercept
	for column, weight := range m.Weights {
		value, ok := row[column]
		if !ok {
			return 0, fmt.Errorf("missing feature column %q", column)
		}
		score += weight * value
	}
	score += m.CategoryWeights[category]
	return score, nil
}
