package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRepository is the upstream fastText repository.
	DefaultRepository = "facebookresearch/fastText"

	// maxPerPage is the largest page size the releases endpoint accepts.
	maxPerPage = 100
)

// Config configures a release Lister.
type Config struct {
	// Repository is "owner/name". Defaults to DefaultRepository.
	Repository string

	// Token is an optional personal access token.
	Token string

	// BaseURL overrides the API endpoint, for GitHub Enterprise or tests.
	BaseURL string
}

// Lister lists releases of one repository.
type Lister struct {
	gh          *gh.Client
	owner       string
	repo        string
	rateLimiter *RateLimiter
	log         *zap.Logger
}

// Ensure Lister implements the interface.
var _ driven.ReleaseLister = (*Lister)(nil)

// NewLister creates a release lister. A non-empty token authenticates
// requests through oauth2.
func NewLister(cfg Config, log *zap.Logger) (*Lister, error) {
	if log == nil {
		log = zap.NewNop()
	}

	repository := cfg.Repository
	if repository == "" {
		repository = DefaultRepository
	}
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepository, repository)
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = DefaultTimeout

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &Lister{
		gh:          client,
		owner:       owner,
		repo:        repo,
		rateLimiter: NewRateLimiter(),
		log:         log.Named("github"),
	}, nil
}

// ListReleases returns up to limit releases, newest first.
// Drafts are skipped. A limit <= 0 means every release.
func (l *Lister) ListReleases(ctx context.Context, limit int) ([]domain.Release, error) {
	perPage := maxPerPage
	if limit > 0 && limit < perPage {
		perPage = limit
	}
	opts := &gh.ListOptions{PerPage: perPage}

	var releases []domain.Release
	for {
		select {
		case <-ctx.Done():
			return releases, ctx.Err()
		default:
		}

		if err := l.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		page, resp, err := l.gh.Repositories.ListReleases(ctx, l.owner, l.repo, opts)
		l.rateLimiter.UpdateFromResponse(responseOf(resp))
		if err != nil {
			return nil, l.wrapError(err, "list releases")
		}

		l.log.Debug("listed releases",
			zap.Int("page", opts.Page),
			zap.Int("count", len(page)),
			zap.Int("remaining", l.rateLimiter.Remaining()))

		for _, r := range page {
			if r.GetDraft() {
				continue
			}
			releases = append(releases, toDomain(r))
			if limit > 0 && len(releases) == limit {
				return releases, nil
			}
		}

		if resp == nil || resp.NextPage == 0 {
			return releases, nil
		}
		opts.Page = resp.NextPage
	}
}

func responseOf(resp *gh.Response) *http.Response {
	if resp == nil {
		return nil
	}
	return resp.Response
}

func toDomain(r *gh.RepositoryRelease) domain.Release {
	return domain.Release{
		Tag:         r.GetTagName(),
		Name:        r.GetName(),
		Prerelease:  r.GetPrerelease(),
		PublishedAt: r.GetPublishedAt().Time,
		URL:         r.GetHTMLURL(),
	}
}

// wrapError converts GitHub errors to package error types.
func (l *Lister) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
