package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"profileguard/internal/domain/models"
	"profileguard/internal/domain/services"
	"profileguard/pkg/logger"
)

func main() {
	var (
		samples    = flag.Int("samples", 2000, "number of synthetic profiles to generate")
		trees      = flag.Int("trees", 100, "number of trees in the forest")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "random seed for data generation and training")
		version    = flag.String("version", "rf-1.0.0", "version tag stored in the model bundle")
		output     = flag.String("output", "models/classifier.json", "model bundle output path")
		csvPath    = flag.String("csv", "", "optional path to also dump the dataset as CSV")
		trainSplit = flag.Float64("split", 0.8, "fraction of samples used for training")
	)
	flag.Parse()

	log := logger.NewDevelopment().WithComponent("trainer")

	log.Info().
		Int("samples", *samples).
		Int("trees", *trees).
		Int64("seed", *seed).
		Msg("generating synthetic dataset")

	gen := services.NewDatasetGenerator(*seed)
	dataset := gen.Generate(*samples)
	train, test := dataset.Split(*trainSplit)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, dataset); err != nil {
			log.Fatal().Err(err).Str("path", *csvPath).Msg("failed to write dataset CSV")
		}
		log.Info().Str("path", *csvPath).Msg("dataset written")
	}

	forest := services.NewRandomForest(services.RandomForestConfig{
		NumTrees:   *trees,
		RandomSeed: *seed,
	}, log)

	if err := forest.Train(train.Features, train.Labels, models.FeatureNames); err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	metrics := evaluate(forest, test)
	metrics.TrainSize = len(train.Features)
	metrics.TestSize = len(test.Features)

	log.Info().
		Float64("accuracy", metrics.Accuracy).
		Float64("precision", metrics.Precision).
		Float64("recall", metrics.Recall).
		Msg("held-out evaluation complete")

	bundle := &services.ModelBundle{
		Version:   *version,
		Features:  models.FeatureNames,
		Trees:     forest.Trees(),
		Metrics:   metrics,
		TrainedAt: time.Now().UTC(),
	}

	if err := services.SaveModelBundle(*output, bundle); err != nil {
		log.Fatal().Err(err).Str("path", *output).Msg("failed to save model bundle")
	}

	log.Info().
		Str("path", *output).
		Str("version", *version).
		Msg("model bundle saved")
}

// evaluate measures accuracy, precision, and recall on the held-out
// split, treating the fake class as positive.
func evaluate(forest *services.RandomForest, test services.Dataset) models.TrainingMetrics {
	var correct, truePos, falsePos, falseNeg int

	for i, row := range test.Features {
		_, pFake, err := forest.PredictProbability(row)
		if err != nil {
			continue
		}
		pred := 0
		if pFake >= 0.5 {
			pred = 1
		}

		if pred == test.Labels[i] {
			correct++
		}
		switch {
		case pred == 1 && test.Labels[i] == 1:
			truePos++
		case pred == 1 && test.Labels[i] == 0:
			falsePos++
		case pred == 0 && test.Labels[i] == 1:
			falseNeg++
		}
	}

	metrics := models.TrainingMetrics{}
	if n := len(test.Features); n > 0 {
		metrics.Accuracy = float64(correct) / float64(n)
	}
	if truePos+falsePos > 0 {
		metrics.Precision = float64(truePos) / float64(truePos+falsePos)
	}
	if truePos+falseNeg > 0 {
		metrics.Recall = float64(truePos) / float64(truePos+falseNeg)
	}
	return metrics
}

func writeCSV(path string, ds services.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append(append([]string{}, models.FeatureNames...), "is_fake")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range ds.Features {
		record := make([]string, 0, len(row)+1)
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		record = append(record, strconv.Itoa(ds.Labels[i]))
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Error(); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}
