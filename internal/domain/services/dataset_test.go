package services

import (
	"testing"

	"profileguard/internal/domain/models"
)

func TestDatasetGenerate(t *testing.T) {
	g := NewDatasetGenerator(7)
	ds := g.Generate(200)

	if len(ds.Features) != 200 {
		t.Fatalf("len(Features) = %d, want 200", len(ds.Features))
	}
	if len(ds.Labels) != 200 {
		t.Fatalf("len(Labels) = %d, want 200", len(ds.Labels))
	}

	fakes := 0
	for i, label := range ds.Labels {
		if label == classFake {
			fakes++
		} else if label != classReal {
			t.Fatalf("Labels[%d] = %d, want 0 or 1", i, label)
		}
	}
	if fakes != 100 {
		t.Errorf("fake samples = %d, want exactly half", fakes)
	}

	for i, row := range ds.Features {
		if len(row) != len(models.FeatureNames) {
			t.Fatalf("Features[%d] has %d values, want %d", i, len(row), len(models.FeatureNames))
		}
		for j, v := range row {
			if v < 0 {
				t.Errorf("Features[%d][%d] = %v, counts and flags must be non-negative", i, j, v)
			}
		}
	}
}

func TestDatasetGenerateShuffles(t *testing.T) {
	g := NewDatasetGenerator(7)
	ds := g.Generate(200)

	// A shuffled half/half set should not keep all authentic samples in
	// the first half.
	firstHalfFakes := 0
	for _, label := range ds.Labels[:100] {
		if label == classFake {
			firstHalfFakes++
		}
	}
	if firstHalfFakes == 0 || firstHalfFakes == 100 {
		t.Errorf("first half contains %d fakes, labels do not appear shuffled", firstHalfFakes)
	}
}

func TestDatasetDeterministicSeed(t *testing.T) {
	a := NewDatasetGenerator(99).Generate(50)
	b := NewDatasetGenerator(99).Generate(50)

	for i := range a.Features {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("Labels[%d] differ for identical seeds", i)
		}
		for j := range a.Features[i] {
			if a.Features[i][j] != b.Features[i][j] {
				t.Fatalf("Features[%d][%d] differ for identical seeds", i, j)
			}
		}
	}
}

func TestDatasetSplit(t *testing.T) {
	ds := NewDatasetGenerator(3).Generate(100)
	train, test := ds.Split(0.8)

	if len(train.Features) != 80 || len(train.Labels) != 80 {
		t.Errorf("train size = %d/%d, want 80/80", len(train.Features), len(train.Labels))
	}
	if len(test.Features) != 20 || len(test.Labels) != 20 {
		t.Errorf("test size = %d/%d, want 20/20", len(test.Features), len(test.Labels))
	}
}

func TestDatasetPopulationsDiffer(t *testing.T) {
	g := NewDatasetGenerator(11)
	ds := g.Generate(1000)

	var realFollowers, fakeFollowers float64
	var realCount, fakeCount int
	for i, row := range ds.Features {
		if ds.Labels[i] == classReal {
			realFollowers += row[0]
			realCount++
		} else {
			fakeFollowers += row[0]
			fakeCount++
		}
	}

	realMean := realFollowers / float64(realCount)
	fakeMean := fakeFollowers / float64(fakeCount)
	if realMean <= fakeMean {
		t.Errorf("mean followers: real %v, fake %v; authentic accounts should have more", realMean, fakeMean)
	}
}
