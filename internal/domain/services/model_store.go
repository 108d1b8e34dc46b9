package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// ModelBundle is the persisted classifier artifact. The feature list
// records the input order the trees were grown against; prediction must
// order its input vector by this list.
type ModelBundle struct {
	Version   string                 `json:"version"`
	Features  []string               `json:"features"`
	Trees     []*TreeNode            `json:"trees"`
	Metrics   models.TrainingMetrics `json:"metrics"`
	TrainedAt time.Time              `json:"trained_at"`
}

// SaveModelBundle writes the bundle to path as JSON, creating parent
// directories as needed.
func SaveModelBundle(path string, bundle *ModelBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encoding model bundle: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating model directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model bundle: %w", err)
	}
	return nil
}

// LoadModelBundle reads a bundle from path
func LoadModelBundle(path string) (*ModelBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model bundle: %w", err)
	}
	var bundle ModelBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("decoding model bundle: %w", err)
	}
	if len(bundle.Trees) == 0 {
		return nil, fmt.Errorf("model bundle %s contains no trees", path)
	}
	if len(bundle.Features) == 0 {
		return nil, fmt.Errorf("model bundle %s lists no features", path)
	}
	return &bundle, nil
}

// ForestClassifier adapts a loaded model bundle to the scorer's
// Classifier interface. It is read-only after construction and safe for
// concurrent use.
type ForestClassifier struct {
	forest   *RandomForest
	features []string
	version  string
	info     models.ModelInfo
}

// NewForestClassifier builds a classifier from a loaded bundle
func NewForestClassifier(bundle *ModelBundle, log *logger.Logger) *ForestClassifier {
	forest := NewRandomForestFromTrees(bundle.Trees, bundle.Features, log)
	return &ForestClassifier{
		forest:   forest,
		features: bundle.Features,
		version:  bundle.Version,
		info: models.ModelInfo{
			Loaded:      true,
			Version:     bundle.Version,
			NumTrees:    len(bundle.Trees),
			NumFeatures: len(bundle.Features),
			Features:    bundle.Features,
			Accuracy:    bundle.Metrics.Accuracy,
			TrainedAt:   bundle.TrainedAt,
		},
	}
}

// LoadForestClassifier loads the bundle at path and wraps it. A missing
// file is not an error to the caller beyond the nil return; the scorer
// runs heuristics when no classifier is present.
func LoadForestClassifier(path string, log *logger.Logger) (*ForestClassifier, error) {
	bundle, err := LoadModelBundle(path)
	if err != nil {
		return nil, err
	}
	return NewForestClassifier(bundle, log), nil
}

// PredictProbability orders the vector by the bundle's stored feature
// list and runs the forest.
func (c *ForestClassifier) PredictProbability(fv models.FeatureVector) (float64, float64, error) {
	return c.forest.PredictProbability(fv.ByName(c.features))
}

// Version returns the bundle's version tag
func (c *ForestClassifier) Version() string {
	return c.version
}

// Info describes the loaded model
func (c *ForestClassifier) Info() models.ModelInfo {
	return c.info
}
