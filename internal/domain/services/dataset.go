package services

import (
	"math"
	"math/rand"

	"profileguard/internal/domain/models"
)

// Dataset is a labeled training set in canonical feature order. Labels
// are 0 for authentic profiles and 1 for fake ones.
type Dataset struct {
	Features [][]float64
	Labels   []int
}

// DatasetGenerator produces synthetic labeled profiles. Authentic and
// fake populations are drawn from distinct distributions: authentic
// accounts have organically large follower counts, older accounts, and
// fuller bios; fake accounts follow far more than they are followed,
// are young, and frequently lack a picture.
type DatasetGenerator struct {
	rng *rand.Rand
}

// NewDatasetGenerator creates a generator with the given seed
func NewDatasetGenerator(seed int64) *DatasetGenerator {
	return &DatasetGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate returns n samples, half authentic and half fake, shuffled
func (g *DatasetGenerator) Generate(n int) Dataset {
	half := n / 2

	ds := Dataset{
		Features: make([][]float64, 0, n),
		Labels:   make([]int, 0, n),
	}

	for i := 0; i < half; i++ {
		ds.Features = append(ds.Features, g.realProfile())
		ds.Labels = append(ds.Labels, classReal)
	}
	for i := 0; i < n-half; i++ {
		ds.Features = append(ds.Features, g.fakeProfile())
		ds.Labels = append(ds.Labels, classFake)
	}

	g.rng.Shuffle(len(ds.Features), func(i, j int) {
		ds.Features[i], ds.Features[j] = ds.Features[j], ds.Features[i]
		ds.Labels[i], ds.Labels[j] = ds.Labels[j], ds.Labels[i]
	})

	return ds
}

// Split partitions the dataset into train and test portions
func (ds Dataset) Split(trainFraction float64) (train, test Dataset) {
	cut := int(float64(len(ds.Features)) * trainFraction)
	train = Dataset{Features: ds.Features[:cut], Labels: ds.Labels[:cut]}
	test = Dataset{Features: ds.Features[cut:], Labels: ds.Labels[cut:]}
	return train, test
}

func (g *DatasetGenerator) realProfile() []float64 {
	followers := g.logNormal(6, 1.5)
	following := g.logNormal(5, 1)
	posts := g.exponential(50) + 10
	accountAge := 365 + g.rng.Float64()*(3650-365)
	bioLength := 10 + g.rng.Float64()*140
	hasProfilePic := 1.0
	usernameHasDigits := g.bernoulli(0.2)

	return buildSample(followers, following, posts, accountAge, bioLength, hasProfilePic, usernameHasDigits)
}

func (g *DatasetGenerator) fakeProfile() []float64 {
	followers := g.logNormal(3, 1)
	following := g.logNormal(6, 1)
	posts := g.exponential(5)
	accountAge := g.rng.Float64() * 365
	bioLength := g.rng.Float64() * 20
	hasProfilePic := g.bernoulli(0.4)
	usernameHasDigits := g.bernoulli(0.7)

	return buildSample(followers, following, posts, accountAge, bioLength, hasProfilePic, usernameHasDigits)
}

// buildSample assembles a row in canonical feature order, deriving the
// follower ratio the same way the extractor does.
func buildSample(followers, following, posts, accountAge, bioLength, hasProfilePic, usernameHasDigits float64) []float64 {
	followers = math.Floor(followers)
	following = math.Floor(following)
	posts = math.Floor(posts)

	fv := models.FeatureVector{
		Followers:         followers,
		Following:         following,
		Posts:             posts,
		AccountAge:        math.Floor(accountAge),
		BioLength:         math.Floor(bioLength),
		HasProfilePic:     hasProfilePic,
		UsernameHasDigits: usernameHasDigits,
		FollowerRatio:     followers / (following + 1),
	}
	return fv.Values()
}

func (g *DatasetGenerator) logNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*g.rng.NormFloat64())
}

func (g *DatasetGenerator) exponential(mean float64) float64 {
	return g.rng.ExpFloat64() * mean
}

func (g *DatasetGenerator) bernoulli(p float64) float64 {
	if g.rng.Float64() < p {
		return 1
	}
	return 0
}
