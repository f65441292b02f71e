package classify

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mindsync/internal/bookmarks"
	"github.com/dtnitsch/mindsync/internal/common"
	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/classifier"
)

// Result is what the classify and enrich commands print per URL.
type Result struct {
	URL         string             `json:"url"`
	ContentType models.ContentType `json:"contentType"`
	DisplayName string             `json:"displayName"`
	Icon        string             `json:"icon"`
	Confidence  float64            `json:"confidence"`
	Stage       classifier.Stage   `json:"stage"`
	Error       string             `json:"error,omitempty"`
	Metadata    *models.Metadata   `json:"metadata,omitempty"`
}

// ClassifyAction classifies URLs without saving them.
func ClassifyAction(c *cli.Context) error {
	return run(c, false)
}

// EnrichAction classifies and enriches URLs without saving them.
func EnrichAction(c *cli.Context) error {
	return run(c, true)
}

func run(c *cli.Context, enrich bool) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	logger := common.NewLogger(c)
	cfg, err := bookmarks.LoadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cls, enr := bookmarks.NewPipeline(cfg, logger)

	results := make([]map[string]interface{}, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		rawURL := common.SanitizeURL(arg)

		res, classifyErr := cls.Classify(rawURL)
		if classifyErr != nil {
			res = cls.ClassifyOrDefault(rawURL)
		}

		out := Result{
			URL:         rawURL,
			ContentType: res.ContentType,
			DisplayName: res.ContentType.DisplayName(),
			Icon:        res.ContentType.Icon(),
			Confidence:  res.Confidence,
			Stage:       res.Stage,
		}
		if classifyErr != nil {
			out.Error = classifyErr.Error()
		}
		if enrich {
			md := enr.EnrichContext(c.Context, rawURL, res.Metadata)
			out.Metadata = &md
		}

		results = append(results, common.FilterResultFields(out, c.String("fields")))
	}

	if len(results) == 1 {
		return common.PrintOutput(c, results[0])
	}
	return common.PrintOutput(c, results)
}
