package services

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"profileguard/pkg/logger"
)

// Binary class indices used throughout the forest.
const (
	classReal  = 0
	classFake  = 1
	numClasses = 2
)

// TreeNode is a node of a serialized decision tree. Interior nodes carry
// a split; leaves carry the class distribution observed at training time.
type TreeNode struct {
	Feature   int       `json:"f,omitempty"`
	Threshold float64   `json:"t,omitempty"`
	Left      *TreeNode `json:"l,omitempty"`
	Right     *TreeNode `json:"r,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	ProbFake  float64   `json:"p,omitempty"`
}

// RandomForest is a binary random forest classifier distinguishing
// authentic from fake profiles. It is safe for concurrent prediction.
type RandomForest struct {
	trees          []*TreeNode
	numTrees       int
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int
	featureNames   []string
	trained        bool
	trainedAt      time.Time
	trainingSize   int
	accuracy       float64
	rng            *rand.Rand
	mu             sync.RWMutex
	logger         *logger.Logger
}

// RandomForestConfig holds forest hyperparameters
type RandomForestConfig struct {
	NumTrees       int
	MaxDepth       int
	MinSamplesLeaf int
	MaxFeatures    int // 0 means sqrt(num features)
	RandomSeed     int64
}

// DefaultRandomForestConfig returns the parameters used by the trainer
func DefaultRandomForestConfig() RandomForestConfig {
	return RandomForestConfig{
		NumTrees:       100,
		MaxDepth:       10,
		MinSamplesLeaf: 5,
		MaxFeatures:    0,
		RandomSeed:     time.Now().UnixNano(),
	}
}

// NewRandomForest creates an untrained forest
func NewRandomForest(config RandomForestConfig, log *logger.Logger) *RandomForest {
	if config.NumTrees <= 0 {
		config.NumTrees = 100
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = 10
	}
	if config.MinSamplesLeaf <= 0 {
		config.MinSamplesLeaf = 5
	}

	return &RandomForest{
		numTrees:       config.NumTrees,
		maxDepth:       config.MaxDepth,
		minSamplesLeaf: config.MinSamplesLeaf,
		maxFeatures:    config.MaxFeatures,
		rng:            rand.New(rand.NewSource(config.RandomSeed)),
		logger:         log.WithComponent("random-forest"),
	}
}

// NewRandomForestFromTrees reconstructs a forest from serialized trees,
// as loaded from a model bundle.
func NewRandomForestFromTrees(trees []*TreeNode, featureNames []string, log *logger.Logger) *RandomForest {
	return &RandomForest{
		trees:        trees,
		numTrees:     len(trees),
		featureNames: featureNames,
		trained:      len(trees) > 0,
		trainedAt:    time.Now(),
		logger:       log.WithComponent("random-forest"),
	}
}

// Train fits the forest on labeled feature rows. Labels are 0 for
// authentic and 1 for fake.
func (rf *RandomForest) Train(data [][]float64, labels []int, featureNames []string) error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	startTime := time.Now()
	n := len(data)

	if n == 0 || len(labels) != n {
		return errors.New("training data and labels must be non-empty and equal length")
	}

	rf.featureNames = featureNames

	numFeatures := len(data[0])
	if rf.maxFeatures <= 0 {
		rf.maxFeatures = int(math.Sqrt(float64(numFeatures)))
		if rf.maxFeatures < 1 {
			rf.maxFeatures = 1
		}
	}

	rf.trees = make([]*TreeNode, rf.numTrees)
	for i := 0; i < rf.numTrees; i++ {
		sampleData, sampleLabels := rf.bootstrapSample(data, labels)
		rf.trees[i] = rf.buildNode(sampleData, sampleLabels, 0, numFeatures)
	}

	correct := 0
	for i, row := range data {
		_, pFake := rf.vote(row)
		pred := classReal
		if pFake >= 0.5 {
			pred = classFake
		}
		if pred == labels[i] {
			correct++
		}
	}
	rf.accuracy = float64(correct) / float64(n)

	rf.trained = true
	rf.trainedAt = time.Now()
	rf.trainingSize = n

	rf.logger.Info().
		Int("trees", rf.numTrees).
		Int("training_size", n).
		Float64("accuracy", rf.accuracy).
		Dur("duration", time.Since(startTime)).
		Msg("random forest trained")

	return nil
}

// PredictProbability returns the probability of the profile being
// authentic and of it being fake, in that order.
func (rf *RandomForest) PredictProbability(features []float64) (float64, float64, error) {
	rf.mu.RLock()
	defer rf.mu.RUnlock()

	if !rf.trained || len(rf.trees) == 0 {
		return 0, 0, errors.New("model not trained")
	}

	pReal, pFake := rf.vote(features)
	return pReal, pFake, nil
}

// vote averages the per-tree leaf distributions. Caller holds the lock.
func (rf *RandomForest) vote(features []float64) (pReal, pFake float64) {
	for _, tree := range rf.trees {
		pFake += treePredict(tree, features)
	}
	pFake /= float64(len(rf.trees))
	return 1 - pFake, pFake
}

// treePredict walks a single tree to its leaf probability
func treePredict(node *TreeNode, features []float64) float64 {
	for node != nil && !node.Leaf {
		if node.Feature < len(features) && features[node.Feature] < node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.ProbFake
}

// buildNode recursively grows a tree
func (rf *RandomForest) buildNode(data [][]float64, labels []int, depth, numFeatures int) *TreeNode {
	n := len(data)

	classCounts := make([]int, numClasses)
	for _, label := range labels {
		classCounts[label]++
	}

	if depth >= rf.maxDepth || n <= rf.minSamplesLeaf || isPure(classCounts) {
		return createLeaf(classCounts, n)
	}

	bestFeature, bestThreshold, bestGain := rf.findBestSplit(data, labels, classCounts, numFeatures)
	if bestGain <= 0 {
		return createLeaf(classCounts, n)
	}

	leftData, leftLabels, rightData, rightLabels := splitData(data, labels, bestFeature, bestThreshold)
	if len(leftData) == 0 || len(rightData) == 0 {
		return createLeaf(classCounts, n)
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      rf.buildNode(leftData, leftLabels, depth+1, numFeatures),
		Right:     rf.buildNode(rightData, rightLabels, depth+1, numFeatures),
	}
}

func createLeaf(classCounts []int, total int) *TreeNode {
	probFake := 0.0
	if total > 0 {
		probFake = float64(classCounts[classFake]) / float64(total)
	}
	return &TreeNode{
		Leaf:     true,
		ProbFake: probFake,
	}
}

// findBestSplit searches the random feature subset for the split with
// the largest Gini gain.
func (rf *RandomForest) findBestSplit(data [][]float64, labels []int, classCounts []int, numFeatures int) (int, float64, float64) {
	n := len(data)
	if n == 0 || len(data[0]) == 0 {
		return 0, 0, 0
	}

	dims := len(data[0])
	currentGini := giniImpurity(classCounts, n)

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	for _, feature := range rf.selectRandomFeatures(dims) {
		values := make([]float64, n)
		for i, point := range data {
			values[i] = point[feature]
		}
		sort.Float64s(values)

		for i := 0; i < n-1; i++ {
			if values[i] == values[i+1] {
				continue
			}
			threshold := (values[i] + values[i+1]) / 2

			leftCounts := make([]int, numClasses)
			rightCounts := make([]int, numClasses)
			leftTotal := 0
			rightTotal := 0

			for j, point := range data {
				if point[feature] < threshold {
					leftCounts[labels[j]]++
					leftTotal++
				} else {
					rightCounts[labels[j]]++
					rightTotal++
				}
			}

			if leftTotal == 0 || rightTotal == 0 {
				continue
			}

			leftGini := giniImpurity(leftCounts, leftTotal)
			rightGini := giniImpurity(rightCounts, rightTotal)
			weightedGini := (float64(leftTotal)*leftGini + float64(rightTotal)*rightGini) / float64(n)

			gain := currentGini - weightedGini
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

func giniImpurity(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}

	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func isPure(classCounts []int) bool {
	nonZero := 0
	for _, count := range classCounts {
		if count > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func splitData(data [][]float64, labels []int, feature int, threshold float64) ([][]float64, []int, [][]float64, []int) {
	var leftData, rightData [][]float64
	var leftLabels, rightLabels []int

	for i, point := range data {
		if point[feature] < threshold {
			leftData = append(leftData, point)
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightData = append(rightData, point)
			rightLabels = append(rightLabels, labels[i])
		}
	}

	return leftData, leftLabels, rightData, rightLabels
}

// selectRandomFeatures picks maxFeatures feature indices without
// replacement.
func (rf *RandomForest) selectRandomFeatures(numFeatures int) []int {
	if rf.maxFeatures >= numFeatures {
		features := make([]int, numFeatures)
		for i := range features {
			features[i] = i
		}
		return features
	}

	indices := make([]int, numFeatures)
	for i := range indices {
		indices[i] = i
	}

	for i := 0; i < rf.maxFeatures; i++ {
		j := i + rf.rng.Intn(numFeatures-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return indices[:rf.maxFeatures]
}

func (rf *RandomForest) bootstrapSample(data [][]float64, labels []int) ([][]float64, []int) {
	n := len(data)
	sampleData := make([][]float64, n)
	sampleLabels := make([]int, n)

	for i := 0; i < n; i++ {
		idx := rf.rng.Intn(n)
		sampleData[i] = data[idx]
		sampleLabels[i] = labels[idx]
	}

	return sampleData, sampleLabels
}

// IsTrained reports whether the forest can serve predictions
func (rf *RandomForest) IsTrained() bool {
	rf.mu.RLock()
	defer rf.mu.RUnlock()
	return rf.trained
}

// Trees returns the serialized trees for persistence
func (rf *RandomForest) Trees() []*TreeNode {
	rf.mu.RLock()
	defer rf.mu.RUnlock()
	return rf.trees
}

// FeatureNames returns the feature order the forest was trained against
func (rf *RandomForest) FeatureNames() []string {
	rf.mu.RLock()
	defer rf.mu.RUnlock()
	return rf.featureNames
}

// TrainingAccuracy returns the accuracy measured on the training set
func (rf *RandomForest) TrainingAccuracy() float64 {
	rf.mu.RLock()
	defer rf.mu.RUnlock()
	return rf.accuracy
}

// NumTrees returns the forest size
func (rf *RandomForest) NumTrees() int {
	rf.mu.RLock()
	defer rf.mu.RUnlock()
	return len(rf.trees)
}
