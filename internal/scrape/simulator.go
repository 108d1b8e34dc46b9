package scrape

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// SimulatedFetcher generates plausible profile attributes when live
// acquisition is disabled or has failed. Output is deterministic per
// username so repeated analyses of the same profile agree.
type SimulatedFetcher struct {
	logger *logger.Logger
}

// NewSimulatedFetcher creates a simulated fetcher
func NewSimulatedFetcher(log *logger.Logger) *SimulatedFetcher {
	return &SimulatedFetcher{
		logger: log.WithComponent("simulated-fetcher"),
	}
}

// Name identifies the fetcher in logs
func (f *SimulatedFetcher) Name() string { return "simulated" }

// Fetch synthesizes attributes seeded by the username. Usernames that
// look bot-generated (digit-heavy) draw from a thinner distribution.
func (f *SimulatedFetcher) Fetch(_ context.Context, username string, platform models.Platform) (models.ProfileAttributes, error) {
	h := fnv.New64a()
	h.Write([]byte(string(platform) + ":" + username))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	suspicious := digitCount(username) >= 3

	var attrs models.ProfileAttributes
	if suspicious {
		attrs = models.ProfileAttributes{
			Followers:      rng.Intn(90) + 10,
			Following:      rng.Intn(4000) + 1000,
			Posts:          rng.Intn(5),
			AccountAgeDays: rng.Intn(180),
			Bio:            "",
			HasProfilePic:  rng.Float64() < 0.4,
		}
	} else {
		attrs = models.ProfileAttributes{
			Followers:      rng.Intn(4950) + 50,
			Following:      rng.Intn(950) + 50,
			Posts:          rng.Intn(490) + 10,
			AccountAgeDays: rng.Intn(3285) + 365,
			Bio:            fmt.Sprintf("Hi, I'm %s. Welcome to my page!", username),
			HasProfilePic:  true,
		}
	}

	attrs.Username = username
	attrs.Platform = platform
	attrs.DataSource = f.Name()
	attrs.Warning = "Live profile data unavailable; simulated attributes were used"
	return attrs, nil
}

func digitCount(s string) int {
	return len(s) - len(strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s))
}
