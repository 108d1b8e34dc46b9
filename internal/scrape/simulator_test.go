package scrape

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

func TestSimulatedFetchDeterministic(t *testing.T) {
	f := NewSimulatedFetcher(logger.NewDefault())
	ctx := context.Background()

	a, err := f.Fetch(ctx, "jane_doe", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	b, err := f.Fetch(ctx, "jane_doe", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated fetches differ (-first +second):\n%s", diff)
	}
}

func TestSimulatedFetchVariesByPlatform(t *testing.T) {
	f := NewSimulatedFetcher(logger.NewDefault())
	ctx := context.Background()

	ig, _ := f.Fetch(ctx, "jane_doe", models.PlatformInstagram)
	tw, _ := f.Fetch(ctx, "jane_doe", models.PlatformTwitter)

	if ig.Followers == tw.Followers && ig.Following == tw.Following && ig.Posts == tw.Posts {
		t.Error("different platforms produced identical attributes, seed should include the platform")
	}
}

func TestSimulatedFetchSuspiciousUsername(t *testing.T) {
	f := NewSimulatedFetcher(logger.NewDefault())

	got, err := f.Fetch(context.Background(), "user19875432", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got.Followers >= 100 {
		t.Errorf("Followers = %d, digit-heavy username should draw a thin profile", got.Followers)
	}
	if got.Following < 1000 {
		t.Errorf("Following = %d, digit-heavy username should follow aggressively", got.Following)
	}
	if got.Posts >= 5 {
		t.Errorf("Posts = %d, digit-heavy username should have few posts", got.Posts)
	}
	if got.Bio != "" {
		t.Errorf("Bio = %q, digit-heavy username should have an empty bio", got.Bio)
	}
}

func TestSimulatedFetchHealthyUsername(t *testing.T) {
	f := NewSimulatedFetcher(logger.NewDefault())

	got, err := f.Fetch(context.Background(), "jane_doe", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got.Followers < 50 {
		t.Errorf("Followers = %d, want at least 50", got.Followers)
	}
	if got.Posts < 10 {
		t.Errorf("Posts = %d, want at least 10", got.Posts)
	}
	if !got.HasProfilePic {
		t.Error("healthy simulated profile should have a picture")
	}
	if got.DataSource != "simulated" {
		t.Errorf("DataSource = %q, want simulated", got.DataSource)
	}
	if got.Warning == "" {
		t.Error("simulated attributes should carry a warning")
	}
}

func TestDigitCount(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"jane_doe", 0},
		{"user123", 3},
		{"007", 3},
		{"a1b2", 2},
	}

	for _, tt := range tests {
		if got := digitCount(tt.s); got != tt.want {
			t.Errorf("digitCount(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}
