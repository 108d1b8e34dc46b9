package models

import "time"

// ModelInfo describes the loaded classifier, or its absence
type ModelInfo struct {
	Loaded      bool      `json:"loaded"`
	Version     string    `json:"version,omitempty"`
	NumTrees    int       `json:"num_trees,omitempty"`
	NumFeatures int       `json:"num_features,omitempty"`
	Features    []string  `json:"features,omitempty"`
	Accuracy    float64   `json:"accuracy,omitempty"`
	TrainedAt   time.Time `json:"trained_at,omitempty"`
}

// TrainingMetrics records how the classifier performed on the held-out
// split at training time.
type TrainingMetrics struct {
	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	TrainSize   int     `json:"train_size"`
	TestSize    int     `json:"test_size"`
}
