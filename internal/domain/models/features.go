package models

// FeatureNames lists the classifier input features in their canonical
// order. Trained model bundles record this list; reordering or renaming
// entries breaks compatibility with previously trained models.
var FeatureNames = []string{
	"followers",
	"following",
	"posts",
	"account_age",
	"bio_length",
	"has_profile_pic",
	"username_has_digits",
	"follower_ratio",
}

// FeatureVector is a profile projected onto the classifier feature space.
type FeatureVector struct {
	Followers         float64 `json:"followers"`
	Following         float64 `json:"following"`
	Posts             float64 `json:"posts"`
	AccountAge        float64 `json:"account_age"`
	BioLength         float64 `json:"bio_length"`
	HasProfilePic     float64 `json:"has_profile_pic"`
	UsernameHasDigits float64 `json:"username_has_digits"`
	FollowerRatio     float64 `json:"follower_ratio"`
}

// Values returns the vector in canonical feature order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.Followers,
		f.Following,
		f.Posts,
		f.AccountAge,
		f.BioLength,
		f.HasProfilePic,
		f.UsernameHasDigits,
		f.FollowerRatio,
	}
}

// ByName returns the vector ordered by the given feature names, so a
// model trained against a stored feature list always receives its
// inputs in the order it expects.
func (f FeatureVector) ByName(names []string) []float64 {
	byName := map[string]float64{
		"followers":           f.Followers,
		"following":           f.Following,
		"posts":               f.Posts,
		"account_age":         f.AccountAge,
		"bio_length":          f.BioLength,
		"has_profile_pic":     f.HasProfilePic,
		"username_has_digits": f.UsernameHasDigits,
		"follower_ratio":      f.FollowerRatio,
	}
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = byName[n]
	}
	return out
}
