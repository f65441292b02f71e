package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/mindsync/models"
)

// frontmatter is the YAML header of a bookmark file. The body below it
// is the item content.
type frontmatter struct {
	ID        string             `yaml:"id"`
	Type      models.ContentType `yaml:"type"`
	Title     string             `yaml:"title"`
	URL       string             `yaml:"url,omitempty"`
	ImageURL  string             `yaml:"image_url,omitempty"`
	Tags      []string           `yaml:"tags"`
	AITags    []string           `yaml:"ai_tags"`
	CreatedAt time.Time          `yaml:"created_at"`
	UpdatedAt time.Time          `yaml:"updated_at"`
	Metadata  map[string]any     `yaml:"metadata,omitempty"`
}

// encodeDocument renders item as a Markdown file with YAML frontmatter.
func encodeDocument(item models.ContentItem) ([]byte, error) {
	md, err := metadataToMap(item.Metadata)
	if err != nil {
		return nil, err
	}

	fm := frontmatter{
		ID:        item.ID,
		Type:      item.Type,
		Title:     item.Title,
		URL:       item.URL,
		ImageURL:  item.ImageURL,
		Tags:      nonNil(item.Tags),
		AITags:    nonNil(item.AITags),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Metadata:  md,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString("---\n")
	buf.WriteString(item.Content)
	return buf.Bytes(), nil
}

// decodeDocument parses a file written by encodeDocument. userID comes
// from the directory the file lives in.
func decodeDocument(data []byte, userID string) (models.ContentItem, error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return models.ContentItem{}, errors.New("missing frontmatter")
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) == 1 {
		return models.ContentItem{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	md, err := metadataFromMap(fm.Metadata)
	if err != nil {
		return models.ContentItem{}, err
	}

	content := strings.TrimPrefix(string(parts[1]), "\r")
	content = strings.TrimPrefix(content, "\n")

	return models.ContentItem{
		ID:        fm.ID,
		UserID:    userID,
		Type:      fm.Type,
		Title:     fm.Title,
		Content:   content,
		URL:       fm.URL,
		ImageURL:  fm.ImageURL,
		Tags:      nonNil(fm.Tags),
		AITags:    nonNil(fm.AITags),
		CreatedAt: fm.CreatedAt.UTC(),
		UpdatedAt: fm.UpdatedAt.UTC(),
		Metadata:  md,
	}, nil
}

// Metadata goes through its JSON form so the kind/details envelope is
// the same on disk as everywhere else.
func metadataToMap(md models.Metadata) (map[string]any, error) {
	if md.IsZero() {
		return nil, nil
	}
	raw, err := json.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to convert metadata: %w", err)
	}
	return out, nil
}

func metadataFromMap(m map[string]any) (models.Metadata, error) {
	var md models.Metadata
	if len(m) == 0 {
		return md, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return md, fmt.Errorf("failed to convert metadata: %w", err)
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return md, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return md, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
