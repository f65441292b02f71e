// Package bookmark saves URLs as classified, enriched content items.
//
// The Service owns no state of its own: storage and the current user
// are injected, and the classifier, enricher and generators are pure.
package bookmark

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/classifier"
	"github.com/dtnitsch/mindsync/pkg/enricher"
	"github.com/dtnitsch/mindsync/pkg/generator"
)

// SaveRequest is the input to SaveBookmark. Only URL is required.
// A non-zero CreatedAt is kept by the store, e.g. the date an imported
// bookmark was originally added.
type SaveRequest struct {
	URL       string
	Title     string
	Tags      []string
	Notes     string
	CreatedAt time.Time
}

// Service runs the save pipeline and the CRUD operations around it.
type Service struct {
	store      Store
	users      UserResolver
	classifier *classifier.Classifier
	enricher   *enricher.Enricher
	languages  generator.LanguageDetector
	logger     *slog.Logger
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classifier.Classifier) Option {
	return func(s *Service) { s.classifier = c }
}

// WithEnricher replaces the default enricher.
func WithEnricher(e *enricher.Enricher) Option {
	return func(s *Service) { s.enricher = e }
}

// WithLanguageDetector enables lang:xx AI tags.
func WithLanguageDetector(d generator.LanguageDetector) Option {
	return func(s *Service) { s.languages = d }
}

// WithIDGenerator replaces uuid-based item IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service on top of store and users.
func NewService(store Store, users UserResolver, opts ...Option) *Service {
	s := &Service{
		store:  store,
		users:  users,
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.classifier == nil {
		s.classifier = classifier.New(classifier.WithLogger(s.logger))
	}
	if s.enricher == nil {
		s.enricher = enricher.New(enricher.WithLogger(s.logger))
	}
	return s
}

// Analyze classifies and enriches rawURL without saving anything.
func (s *Service) Analyze(rawURL string) (classifier.Result, models.Metadata) {
	res := s.classifier.ClassifyOrDefault(rawURL)
	return res, s.enricher.Enrich(rawURL, res.Metadata)
}

// Assemble builds the item SaveBookmark would persist for userID.
func (s *Service) Assemble(userID string, req SaveRequest) models.ContentItem {
	rawURL := strings.TrimSpace(req.URL)
	res, metadata := s.Analyze(rawURL)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = generator.Title(rawURL, res.ContentType)
	}

	content := generator.Preview(rawURL, res.ContentType)
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		content += "\n\n" + notes
	}

	aiTags := generator.AITags(res.ContentType, rawURL)
	if tag := generator.LanguageTag(s.languages, strings.TrimSpace(req.Title), strings.TrimSpace(req.Notes)); tag != "" {
		aiTags = append(aiTags, tag)
	}

	s.logger.Debug("assembled bookmark",
		"url", rawURL,
		"content_type", res.ContentType,
		"confidence", res.Confidence,
		"stage", res.Stage,
	)

	item := models.ContentItem{
		ID:       s.newID(),
		UserID:   userID,
		Type:     res.ContentType,
		Title:    title,
		Content:  content,
		URL:      rawURL,
		ImageURL: generator.ImageURL(rawURL, metadata),
		Tags:     generator.DedupeTags(req.Tags),
		AITags:   generator.DedupeTags(aiTags),
		Metadata: metadata,
	}
	if !req.CreatedAt.IsZero() {
		item.CreatedAt = req.CreatedAt.UTC()
	}
	return item
}

// SaveBookmark classifies, enriches and stores a URL. It fails with a
// *SaveError: AuthRequired when there is no user, PersistenceFailed
// when the store rejects the item. Store errors are not retried.
func (s *Service) SaveBookmark(ctx context.Context, req SaveRequest) (models.ContentItem, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return models.ContentItem{}, err
	}

	item := s.Assemble(userID, req)
	saved, err := s.store.Insert(ctx, item)
	if err != nil {
		s.logger.Error("failed to save bookmark", "url", item.URL, "error", err)
		return models.ContentItem{}, persistenceFailed("save", err)
	}

	s.logger.Info("bookmark saved", "id", saved.ID, "type", saved.Type, "url", saved.URL)
	return saved, nil
}

// QuickSave saves a URL with an optional title and nothing else.
func (s *Service) QuickSave(ctx context.Context, rawURL, title string) (models.ContentItem, error) {
	return s.SaveBookmark(ctx, SaveRequest{URL: rawURL, Title: title})
}

// GetBookmark returns one of the current user's items.
func (s *Service) GetBookmark(ctx context.Context, id string) (models.ContentItem, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return models.ContentItem{}, err
	}
	item, err := s.store.Get(ctx, userID, id)
	if err != nil {
		return models.ContentItem{}, storeError("get", id, err)
	}
	return item, nil
}

// ListBookmarks returns a page of the current user's items.
func (s *Service) ListBookmarks(ctx context.Context, params models.SearchParams) (models.SearchResult, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return models.SearchResult{}, err
	}
	res, err := s.store.List(ctx, userID, params.Normalized())
	if err != nil {
		return models.SearchResult{}, persistenceFailed("list", err)
	}
	return res, nil
}

// UpdateBookmark changes the editable fields of an item.
func (s *Service) UpdateBookmark(ctx context.Context, id string, patch models.ContentPatch) (models.ContentItem, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return models.ContentItem{}, err
	}
	if patch.IsEmpty() {
		return s.GetBookmark(ctx, id)
	}
	if patch.Tags != nil {
		patch.Tags = generator.DedupeTags(patch.Tags)
	}

	item, err := s.store.Update(ctx, userID, id, patch)
	if err != nil {
		return models.ContentItem{}, storeError("update", id, err)
	}
	s.logger.Info("bookmark updated", "id", id)
	return item, nil
}

// DeleteBookmark removes one of the current user's items.
func (s *Service) DeleteBookmark(ctx context.Context, id string) error {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, userID, id); err != nil {
		return storeError("delete", id, err)
	}
	s.logger.Info("bookmark deleted", "id", id)
	return nil
}

// Subscribe calls fn with a fresh listing after every store change until
// ctx is done. It blocks.
func (s *Service) Subscribe(ctx context.Context, params models.SearchParams, fn func([]models.ContentItem)) error {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	w, ok := s.store.(Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	events, err := w.Watch(ctx, userID)
	if err != nil {
		return persistenceFailed("watch", err)
	}

	params = params.Normalized()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.logger.Debug("store change", "type", ev.Type, "id", ev.ID)

			res, err := s.store.List(ctx, userID, params)
			if err != nil {
				s.logger.Error("failed to refresh bookmarks", "error", err)
				continue
			}
			fn(res.Items)
		}
	}
}

// Import saves imported bookmarks in order, adding the folder as a tag
// and keeping the original add date. It stops at the first failure and
// returns how many were saved.
func (s *Service) Import(ctx context.Context, entries []models.ImportedBookmark) (int, error) {
	saved := 0
	for _, entry := range entries {
		tags := append([]string{}, entry.Tags...)
		if folder := strings.ToLower(strings.TrimSpace(entry.Folder)); folder != "" {
			tags = append(tags, folder)
		}

		req := SaveRequest{URL: entry.URL, Title: entry.Title, Tags: tags, CreatedAt: entry.AddedAt}
		if _, err := s.SaveBookmark(ctx, req); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

func (s *Service) currentUser(ctx context.Context) (string, error) {
	if s.users == nil {
		return "", authRequired(errors.New("no user resolver configured"))
	}
	userID, err := s.users.CurrentUser(ctx)
	if err != nil {
		return "", authRequired(err)
	}
	if strings.TrimSpace(userID) == "" {
		return "", authRequired(nil)
	}
	return userID, nil
}
