package bookmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mindsync/internal/common"
	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/bookmark"
	"github.com/dtnitsch/mindsync/pkg/importer"
	"github.com/dtnitsch/mindsync/pkg/insights"
)

// SaveAction saves one or more URLs.
func SaveAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	var saved []map[string]interface{}
	for _, arg := range c.Args().Slice() {
		item, err := e.service.SaveBookmark(c.Context, bookmark.SaveRequest{
			URL:   common.SanitizeURL(arg),
			Title: c.String("title"),
			Tags:  c.StringSlice("tag"),
			Notes: c.String("note"),
		})
		if err != nil {
			return err
		}
		saved = append(saved, common.FilterResultFields(item, c.String("fields")))
	}

	if len(saved) == 1 {
		return common.PrintOutput(c, saved[0])
	}
	return common.PrintOutput(c, saved)
}

// ListAction lists bookmarks matching the filter flags.
func ListAction(c *cli.Context) error {
	params, err := searchParams(c)
	if err != nil {
		return err
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.service.ListBookmarks(c.Context, params)
	if err != nil {
		return err
	}

	return common.PrintOutput(c, map[string]interface{}{
		"items":      filterItems(res.Items, c.String("fields")),
		"totalCount": res.TotalCount,
		"hasMore":    res.HasMore,
	})
}

func searchParams(c *cli.Context) (models.SearchParams, error) {
	params := models.SearchParams{
		Query:  c.String("query"),
		Tags:   c.StringSlice("tag"),
		Limit:  c.Int("limit"),
		Offset: c.Int("offset"),
	}
	for _, raw := range c.StringSlice("type") {
		ct, err := models.ParseContentType(raw)
		if err != nil {
			return params, err
		}
		params.ContentTypes = append(params.ContentTypes, ct)
	}
	return params, nil
}

func filterItems(items []models.ContentItem, fields string) []map[string]interface{} {
	out := make([]map[string]interface{}, len(items))
	for i, item := range items {
		out[i] = common.FilterResultFields(item, fields)
	}
	return out
}

// GetAction prints one bookmark.
func GetAction(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("bookmark id is required")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	item, err := e.service.GetBookmark(c.Context, id)
	if err != nil {
		return err
	}
	return common.PrintOutput(c, common.FilterResultFields(item, c.String("fields")))
}

// UpdateAction edits the title, content, image or tags of a bookmark.
func UpdateAction(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("bookmark id is required")
	}

	var patch models.ContentPatch
	if c.IsSet("title") {
		v := c.String("title")
		patch.Title = &v
	}
	if c.IsSet("content") {
		v := c.String("content")
		patch.Content = &v
	}
	if c.IsSet("image") {
		v := c.String("image")
		patch.ImageURL = &v
	}
	switch {
	case c.Bool("clear-tags"):
		patch.Tags = []string{}
	case c.IsSet("tag"):
		patch.Tags = c.StringSlice("tag")
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update: use --title, --content, --image, --tag or --clear-tags")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	item, err := e.service.UpdateBookmark(c.Context, id, patch)
	if err != nil {
		return err
	}
	return common.PrintOutput(c, common.FilterResultFields(item, c.String("fields")))
}

// DeleteAction removes bookmarks by id.
func DeleteAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("bookmark id is required")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, id := range c.Args().Slice() {
		if err := e.service.DeleteBookmark(c.Context, id); err != nil {
			return err
		}
	}
	return common.PrintOutput(c, map[string]interface{}{"deleted": c.Args().Slice()})
}

// WatchAction prints the listing every time the store changes, until
// interrupted.
func WatchAction(c *cli.Context) error {
	params, err := searchParams(c)
	if err != nil {
		return err
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if e.config.Store == models.StoreSQLite {
		e.logger.Warn("the sqlite store only reports changes made by this process; use --store=vault to follow edits from elsewhere")
	}
	e.logger.Info("watching for changes", "store", e.config.Store)
	return e.service.Subscribe(ctx, params, func(items []models.ContentItem) {
		if err := common.PrintOutput(c, map[string]interface{}{
			"items": filterItems(items, c.String("fields")),
		}); err != nil {
			e.logger.Error("failed to print listing", "error", err)
		}
	})
}

// ImportAction saves every link of a browser bookmark export.
func ImportAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("bookmark file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open bookmark file: %w", err)
	}
	defer f.Close()

	entries, err := importer.ParseNetscape(f)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].URL = common.SanitizeURL(entries[i].URL)
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := e.service.Import(c.Context, entries)
	e.logger.Info("import finished", "imported", n, "found", len(entries))
	if err != nil {
		return fmt.Errorf("import stopped after %d of %d bookmarks: %w", n, len(entries), err)
	}
	return common.PrintOutput(c, map[string]interface{}{"imported": n, "found": len(entries)})
}

// StatsAction prints facet counts over every bookmark.
func StatsAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.Close()

	items, err := allItems(c.Context, e.service)
	if err != nil {
		return err
	}
	return common.PrintOutput(c, insights.Compute(items).Summarize(c.Int("top")))
}

// allItems pages through the whole listing.
func allItems(ctx context.Context, svc *bookmark.Service) ([]models.ContentItem, error) {
	var items []models.ContentItem
	params := models.SearchParams{Limit: 200}
	for {
		res, err := svc.ListBookmarks(ctx, params)
		if err != nil {
			return nil, err
		}
		items = append(items, res.Items...)
		if !res.HasMore || len(res.Items) == 0 {
			return items, nil
		}
		params.Offset += len(res.Items)
	}
}
