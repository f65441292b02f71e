// Package classifier decides what kind of content a URL points at.
//
// Classification runs three stages in order and returns from the first
// one that recognises the URL:
//
//   - pattern:   structural regexes per content type (confidence 0.9)
//   - domain:    known hostnames per content type (confidence 0.7)
//   - heuristic: weak path keywords, else website (0.6 / 0.5)
//
// The stage and confidence are reported so callers can tell how a label
// was chosen. Nothing is fetched over the network.
package classifier

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dtnitsch/mindsync/models"
)

// Confidence reported by each stage.
const (
	PatternConfidence   = 0.9
	DomainConfidence    = 0.7
	HeuristicConfidence = 0.6
	DefaultConfidence   = 0.5
	FallbackConfidence  = 0.3
)

// Stage names which step of the ladder produced a Result.
type Stage string

const (
	StagePattern   Stage = "pattern"
	StageDomain    Stage = "domain"
	StageHeuristic Stage = "heuristic"
	StageFallback  Stage = "fallback"
)

// Result is the outcome of a classification.
type Result struct {
	ContentType models.ContentType `json:"content_type" yaml:"content_type"`
	Confidence  float64            `json:"confidence" yaml:"confidence"`
	Stage       Stage              `json:"stage" yaml:"stage"`
	Metadata    models.Metadata    `json:"metadata" yaml:"-"`
}

// ErrInvalidURL matches every *InvalidURLError via errors.Is.
var ErrInvalidURL = errors.New("invalid URL")

// InvalidURLError reports input that does not parse as an absolute URL.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("invalid URL %q", e.URL)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

type patternRule struct {
	contentType models.ContentType
	patterns    []*regexp.Regexp
}

type domainRule struct {
	contentType models.ContentType
	domains     []string
}

// patternTable is checked in order and the first hit wins. Product must
// stay ahead of book: Amazon B-ASINs also match the generic /dp/ shape.
var patternTable = []patternRule{
	{models.ContentProduct, []*regexp.Regexp{
		regexp.MustCompile(`amazon\.com/.*/dp/[B][A-Z0-9]+`),
		regexp.MustCompile(`etsy\.com/listing/`),
		regexp.MustCompile(`shopify\.com`),
		regexp.MustCompile(`nike\.com/.*/product`),
		regexp.MustCompile(`adidas\.com/.*/product`),
		regexp.MustCompile(`zara\.com/.*/product`),
	}},
	{models.ContentBook, []*regexp.Regexp{
		regexp.MustCompile(`amazon\.com/.*/dp/[A-Z0-9]+`),
		regexp.MustCompile(`goodreads\.com/book/show`),
		regexp.MustCompile(`barnesandnoble\.com/w/`),
		regexp.MustCompile(`bookdepository\.com/.*/book/`),
	}},
	{models.ContentArticle, []*regexp.Regexp{
		regexp.MustCompile(`medium\.com/@.*/.*-[a-f0-9]+`),
		regexp.MustCompile(`substack\.com/p/`),
		regexp.MustCompile(`.*\.com/blog/`),
		regexp.MustCompile(`.*\.com/article/`),
		regexp.MustCompile(`.*\.com/.*/\d{4}/\d{2}/\d{2}/`),
	}},
	{models.ContentProperty, []*regexp.Regexp{
		regexp.MustCompile(`zillow\.com/homedetails/`),
		regexp.MustCompile(`realtor\.com/realestateandhomes-detail/`),
		regexp.MustCompile(`redfin\.com/.*/home/`),
		regexp.MustCompile(`apartments\.com/.*/\d+`),
	}},
	{models.ContentTVShow, []*regexp.Regexp{
		regexp.MustCompile(`netflix\.com/title/`),
		regexp.MustCompile(`imdb\.com/title/tt\d+`),
		regexp.MustCompile(`hulu\.com/watch/`),
		regexp.MustCompile(`disney\.com/.*/movies`),
		regexp.MustCompile(`hbo\.com/.*/movies`),
	}},
	{models.ContentTweet, []*regexp.Regexp{
		regexp.MustCompile(`twitter\.com/.*/status/\d+`),
		regexp.MustCompile(`x\.com/.*/status/\d+`),
	}},
}

// domainTable is matched by substring against the lowercased hostname.
var domainTable = []domainRule{
	{models.ContentBook, []string{"amazon.com", "goodreads.com", "barnesandnoble.com", "bookdepository.com"}},
	{models.ContentProduct, []string{"etsy.com", "shopify.com", "nike.com", "adidas.com", "zara.com"}},
	{models.ContentArticle, []string{"medium.com", "substack.com"}},
	{models.ContentProperty, []string{"zillow.com", "realtor.com", "redfin.com", "apartments.com"}},
	{models.ContentTVShow, []string{"netflix.com", "imdb.com", "hulu.com", "disney.com", "hbo.com"}},
	{models.ContentTweet, []string{"twitter.com", "x.com"}},
}

var (
	productKeywords = []string{"/product", "/item", "shop"}
	articleKeywords = []string{"/article", "/blog", "/news"}

	asinPattern        = regexp.MustCompile(`/dp/([A-Z0-9]+)`)
	productASINPattern = regexp.MustCompile(`/dp/([B][A-Z0-9]+)`)
	tweetIDPattern     = regexp.MustCompile(`status/(\d+)`)
)

// Classifier runs the classification ladder. The zero value is not
// usable; call New.
type Classifier struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithClock sets the clock used for date fields (tweet dates).
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) { c.now = now }
}

// WithLogger sets the logger used for fallback reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) { c.logger = logger }
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Classify classifies rawURL with the default classifier.
func Classify(rawURL string) (Result, error) {
	return defaultClassifier.Classify(rawURL)
}

// ParseStrict parses rawURL and requires a scheme and a host.
func ParseStrict(rawURL string) (*url.URL, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, &InvalidURLError{URL: rawURL, Err: err}
	}
	if u.Scheme == "" || u.Host == "" || u.Hostname() == "" {
		return nil, &InvalidURLError{URL: rawURL, Err: errors.New("missing scheme or host")}
	}
	return u, nil
}

// Classify returns the content type of rawURL. It fails only with an
// *InvalidURLError.
func (c *Classifier) Classify(rawURL string) (Result, error) {
	u, err := ParseStrict(rawURL)
	if err != nil {
		return Result{}, err
	}
	domain := strings.ToLower(u.Hostname())

	res, ok := c.byPattern(rawURL, domain)
	if !ok {
		res, ok = byDomain(domain)
	}
	if !ok {
		res = byHeuristic(rawURL, domain)
	}
	return withVariant(res), nil
}

// withVariant gives the result an empty details variant of its own
// content type when no stage extracted one, so enrichment can only fill
// in details of that kind.
func withVariant(res Result) Result {
	if res.Metadata.Details == nil {
		res.Metadata.Details = models.NewDetails(res.ContentType)
	}
	return res
}

// ClassifyOrDefault never fails. Input that does not parse is reported
// as a website with FallbackConfidence and whatever hostname could be
// recovered.
func (c *Classifier) ClassifyOrDefault(rawURL string) Result {
	res, err := c.Classify(rawURL)
	if err == nil {
		return res
	}

	c.logger.Warn("classification fell back to website", "url", rawURL, "error", err)
	return withVariant(Result{
		ContentType: models.ContentWebsite,
		Confidence:  FallbackConfidence,
		Stage:       StageFallback,
		Metadata:    models.Metadata{Domain: LooseHostname(rawURL)},
	})
}

// LooseHostname extracts a hostname without the strict checks, returning
// "" when none can be found.
func LooseHostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (c *Classifier) byPattern(rawURL, domain string) (Result, bool) {
	for _, rule := range patternTable {
		for _, re := range rule.patterns {
			if re.MatchString(rawURL) {
				return Result{
					ContentType: rule.contentType,
					Confidence:  PatternConfidence,
					Stage:       StagePattern,
					Metadata:    c.extractBasicMetadata(rawURL, domain, rule.contentType),
				}, true
			}
		}
	}
	return Result{}, false
}

func byDomain(domain string) (Result, bool) {
	for _, rule := range domainTable {
		for _, d := range rule.domains {
			if strings.Contains(domain, d) {
				return Result{
					ContentType: rule.contentType,
					Confidence:  DomainConfidence,
					Stage:       StageDomain,
					Metadata:    models.Metadata{Domain: domain},
				}, true
			}
		}
	}
	return Result{}, false
}

func byHeuristic(rawURL, domain string) Result {
	res := Result{
		ContentType: models.ContentWebsite,
		Confidence:  DefaultConfidence,
		Stage:       StageHeuristic,
		Metadata:    models.Metadata{Domain: domain},
	}

	switch {
	case containsAny(rawURL, productKeywords):
		res.ContentType = models.ContentProduct
		res.Confidence = HeuristicConfidence
	case containsAny(rawURL, articleKeywords):
		res.ContentType = models.ContentArticle
		res.Confidence = HeuristicConfidence
	}
	return res
}

// extractBasicMetadata pulls what it can from the URL itself.
func (c *Classifier) extractBasicMetadata(rawURL, domain string, ct models.ContentType) models.Metadata {
	md := models.Metadata{
		Domain:    domain,
		SourceURL: rawURL,
	}

	switch ct {
	case models.ContentBook:
		if m := asinPattern.FindStringSubmatch(rawURL); len(m) > 1 {
			md.Details = &models.BookDetails{ISBN: m[1]}
		}
	case models.ContentProduct:
		if productASINPattern.MatchString(rawURL) {
			// B-prefixed ASINs are assumed to be electronics.
			md.Details = &models.ProductDetails{Category: "electronics"}
		}
	case models.ContentTweet:
		if m := tweetIDPattern.FindStringSubmatch(rawURL); len(m) > 1 {
			md.Details = &models.TweetDetails{
				TweetID:   m[1],
				TweetDate: c.now().UTC().Format(time.RFC3339),
			}
		}
	case models.ContentProperty:
		if strings.Contains(rawURL, "zillow.com") {
			md.Details = &models.PropertyDetails{PropertyType: "residential"}
		}
	}

	return md
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
