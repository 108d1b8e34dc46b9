package scrape

import (
	"context"
	"net/url"
	"strings"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// Fetcher acquires public profile attributes for a username. A fetcher
// may fail; the chain tries the next method.
type Fetcher interface {
	Fetch(ctx context.Context, username string, platform models.Platform) (models.ProfileAttributes, error)
	Name() string
}

// Chain tries each fetcher in order and returns the first success.
// When every method fails it returns degraded fallback attributes, not
// an error: the scoring pipeline treats degraded data as valid input.
type Chain struct {
	fetchers []Fetcher
	logger   *logger.Logger
}

// NewChain builds a fetcher chain
func NewChain(log *logger.Logger, fetchers ...Fetcher) *Chain {
	return &Chain{
		fetchers: fetchers,
		logger:   log.WithComponent("scrape-chain"),
	}
}

// Fetch runs the chain for the username
func (c *Chain) Fetch(ctx context.Context, username string, platform models.Platform) (models.ProfileAttributes, error) {
	for _, f := range c.fetchers {
		attrs, err := f.Fetch(ctx, username, platform)
		if err == nil {
			c.logger.Debug().
				Str("username", username).
				Str("method", f.Name()).
				Msg("profile acquired")
			return attrs, nil
		}
		c.logger.Warn().
			Err(err).
			Str("username", username).
			Str("method", f.Name()).
			Msg("acquisition method failed, trying next")
	}

	c.logger.Warn().
		Str("username", username).
		Msg("all acquisition methods failed, returning fallback attributes")
	return FallbackAttributes(username, platform), nil
}

// Name identifies the chain in logs
func (c *Chain) Name() string { return "chain" }

// FallbackAttributes is the degraded profile returned when no
// acquisition method succeeds. All counts are zero and the account is
// marked private so downstream scoring treats the data as thin, not
// missing.
func FallbackAttributes(username string, platform models.Platform) models.ProfileAttributes {
	return models.ProfileAttributes{
		Username:   username,
		Platform:   platform,
		IsPrivate:  true,
		DataSource: "fallback",
		Warning:    "Profile data could not be retrieved; analysis is based on defaults",
	}
}

// ExtractUsername normalizes a raw username or profile URL to a bare
// username. "https://instagram.com/some_user/" and "@some_user" both
// yield "some_user".
func ExtractUsername(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "://") || strings.Contains(raw, ".com/") {
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		if u, err := url.Parse(raw); err == nil {
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) > 0 && parts[0] != "" {
				raw = parts[0]
			}
		}
	}

	raw = strings.TrimPrefix(raw, "@")
	return strings.ToLower(strings.TrimSpace(raw))
}
