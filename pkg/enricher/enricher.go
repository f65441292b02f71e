// Package enricher fills in display metadata for a classified URL.
//
// The values assigned here are placeholders keyed by domain. Nothing is
// fetched; counts such as likes and reading time are uniform random
// draws and carry no meaning beyond giving the dashboard something to
// render.
package enricher

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/classifier"
)

// Enricher expands partial metadata using the first matching profile.
type Enricher struct {
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithRand sets the random source for mock counts.
func WithRand(rng *rand.Rand) Option {
	return func(e *Enricher) { e.rng = rng }
}

// WithSeed is shorthand for WithRand with a PCG source seeded by seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithClock sets the clock used for date fields.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

// WithLogger sets the logger for swallowed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) { e.logger = logger }
}

// New creates an Enricher. Without WithRand or WithSeed the random
// source is seeded from the clock.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(e.now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return e
}

// Enrich returns partial with profile fields, domain and sourceUrl
// filled in. It never fails: input that does not parse yields partial
// unchanged.
func (e *Enricher) Enrich(rawURL string, partial models.Metadata) models.Metadata {
	u, err := classifier.ParseStrict(rawURL)
	if err != nil {
		e.logger.Warn("enrichment skipped", "url", rawURL, "error", err)
		return partial
	}

	enriched := partial.Clone()
	domain := strings.ToLower(u.Hostname())

	if p, ok := matchProfile(domain); ok {
		e.logger.Debug("applying enrichment profile", "domain", domain, "profile", p.name)
		details := p.build(e, domain)
		enriched.Details = mergeDetails(enriched.Details, details, e.logger, domain)
	}

	enriched.Domain = domain
	enriched.SourceURL = rawURL
	return enriched
}

// EnrichContext is Enrich with cancellation. A done context yields
// partial unchanged, the same as a malformed URL.
func (e *Enricher) EnrichContext(ctx context.Context, rawURL string, partial models.Metadata) models.Metadata {
	if err := ctx.Err(); err != nil {
		e.logger.Warn("enrichment cancelled", "url", rawURL, "error", err)
		return partial
	}
	return e.Enrich(rawURL, partial)
}

// intn draws uniformly from [0, n).
func (e *Enricher) intn(n int) int {
	return e.rng.IntN(n)
}

func (e *Enricher) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

// mergeDetails lays profile fields over the partial details. A profile
// of a different kind than the partial is dropped: the discriminant set
// by classification wins.
func mergeDetails(base, profile models.Details, logger *slog.Logger, domain string) models.Details {
	if base == nil {
		return profile
	}
	if base.Kind() != profile.Kind() {
		logger.Debug("enrichment profile does not match content type",
			"domain", domain, "kind", base.Kind(), "profile", profile.Kind())
		return base
	}

	switch b := base.(type) {
	case *models.BookDetails:
		p := profile.(*models.BookDetails)
		p.ISBN = firstNonEmpty(b.ISBN, p.ISBN)
		p.BookCover = firstNonEmpty(b.BookCover, p.BookCover)
		return p
	case *models.ProductDetails:
		p := profile.(*models.ProductDetails)
		p.OriginalPrice = firstNonEmpty(b.OriginalPrice, p.OriginalPrice)
		p.Designer = firstNonEmpty(b.Designer, p.Designer)
		return p
	case *models.PropertyDetails:
		return profile
	case *models.TweetDetails:
		p := profile.(*models.TweetDetails)
		p.TweetID = firstNonEmpty(b.TweetID, p.TweetID)
		return p
	case *models.TVShowDetails:
		p := profile.(*models.TVShowDetails)
		p.Poster = firstNonEmpty(b.Poster, p.Poster)
		return p
	case *models.ArticleDetails:
		p := profile.(*models.ArticleDetails)
		if p.WordCount == 0 {
			p.WordCount = b.WordCount
		}
		return p
	}
	return profile
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
