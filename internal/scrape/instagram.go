package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

const webProfileEndpoint = "https://www.instagram.com/api/v1/users/web_profile_info/?username=%s"

// InstagramFetcher pulls public profile data from Instagram's web
// profile endpoint. It needs no credentials but is rate limited
// aggressively upstream, so transient failures are expected and the
// chain falls through to the simulator.
type InstagramFetcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
	appID     string
	logger    *logger.Logger
}

// InstagramConfig configures the Instagram fetcher. Endpoint is a
// format string taking the username; it defaults to the public web
// profile API.
type InstagramConfig struct {
	Endpoint       string
	RequestTimeout time.Duration
	UserAgent      string
	AppID          string
}

// NewInstagramFetcher creates an Instagram fetcher
func NewInstagramFetcher(cfg InstagramConfig, log *logger.Logger) *InstagramFetcher {
	if cfg.Endpoint == "" {
		cfg.Endpoint = webProfileEndpoint
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Instagram 76.0.0.15.395 Android"
	}
	if cfg.AppID == "" {
		cfg.AppID = "936619743392459"
	}

	return &InstagramFetcher{
		client:    &http.Client{Timeout: cfg.RequestTimeout},
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		appID:     cfg.AppID,
		logger:    log.WithComponent("instagram-fetcher"),
	}
}

// Name identifies the fetcher in logs
func (f *InstagramFetcher) Name() string { return "public-api" }

type webProfileResponse struct {
	Data struct {
		User *struct {
			FullName       string `json:"full_name"`
			Biography      string `json:"biography"`
			ProfilePicURL  string `json:"profile_pic_url_hd"`
			IsPrivate      bool   `json:"is_private"`
			IsVerified     bool   `json:"is_verified"`
			IsBusiness     bool   `json:"is_business_account"`
			EdgeFollowedBy struct {
				Count int `json:"count"`
			} `json:"edge_followed_by"`
			EdgeFollow struct {
				Count int `json:"count"`
			} `json:"edge_follow"`
			EdgeOwnerToTimelineMedia struct {
				Count int `json:"count"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

// Fetch retrieves the profile from the public endpoint
func (f *InstagramFetcher) Fetch(ctx context.Context, username string, platform models.Platform) (models.ProfileAttributes, error) {
	if platform != models.PlatformInstagram {
		return models.ProfileAttributes{}, fmt.Errorf("platform %s not supported by %s fetcher", platform, f.Name())
	}

	body, err := f.get(ctx, fmt.Sprintf(f.endpoint, username))
	if err != nil {
		return models.ProfileAttributes{}, err
	}

	var resp webProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.ProfileAttributes{}, fmt.Errorf("decoding profile response: %w", err)
	}
	if resp.Data.User == nil {
		return models.ProfileAttributes{}, errors.New("profile not found or hidden")
	}

	u := resp.Data.User
	return models.ProfileAttributes{
		Username:      username,
		Platform:      platform,
		FullName:      u.FullName,
		Bio:           u.Biography,
		Followers:     u.EdgeFollowedBy.Count,
		Following:     u.EdgeFollow.Count,
		Posts:         u.EdgeOwnerToTimelineMedia.Count,
		ProfilePicURL: u.ProfilePicURL,
		HasProfilePic: u.ProfilePicURL != "",
		IsVerified:    u.IsVerified,
		IsBusiness:    u.IsBusiness,
		IsPrivate:     u.IsPrivate,
		DataSource:    f.Name(),
	}, nil
}

// get performs the HTTP request with a single retry on transient errors
func (f *InstagramFetcher) get(ctx context.Context, url string) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", f.userAgent)
			req.Header.Set("X-IG-App-ID", f.appID)

			resp, err := f.client.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return nil, &httpStatusError{status: resp.StatusCode, url: url}
			}

			return io.ReadAll(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(300*time.Millisecond),
		retry.MaxJitter(150*time.Millisecond),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Debug().
				Err(err).
				Uint("attempt", n+1).
				Msg("retrying profile request")
		}),
	)
}

type httpStatusError struct {
	status int
	url    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.status, e.url)
}

// isRetryable reports whether the request is worth retrying. Client
// errors other than rate limiting are permanent.
func isRetryable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.status == http.StatusTooManyRequests || statusErr.status >= 500
	}
	return true
}
