package score

import (
	"errors"
	"fmt"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// ErrNotTrained is returned when an untrained model is asked for predictions
var ErrNotTrained = errors.New("scorer not trained")

// NeuralScorer is the placeholder for a learned scorer. Fit records that
// training happened; predictions are zeros until a real model is plugged in.
type NeuralScorer struct {
	trained bool
}

// NewNeuralScorer creates an untrained scorer
func NewNeuralScorer() *NeuralScorer {
	return &NeuralScorer{}
}

// Name returns the scorer name
func (n *NeuralScorer) Name() string {
	return "neural"
}

// Fit checks the training set shape and marks the scorer trained
func (n *NeuralScorer) Fit(x []model.FeatureRecord, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("fit: %d feature records but %d targets", len(x), len(y))
	}
	n.trained = true
	return nil
}

// IsTrained reports whether Fit has been called
func (n *NeuralScorer) IsTrained() bool {
	return n.trained
}

// Predict returns one placeholder score per record
func (n *NeuralScorer) Predict(x []model.FeatureRecord) ([]float64, error) {
	if !n.trained {
		return nil, ErrNotTrained
	}
	return make([]float64, len(x)), nil
}

// Score returns the placeholder score for one record
func (n *NeuralScorer) Score(model.FeatureRecord) float64 {
	return 0.0
}
