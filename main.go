package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mindsync/internal/bookmarks"
	"github.com/dtnitsch/mindsync/internal/classify"
	"github.com/dtnitsch/mindsync/models"
	"github.com/dtnitsch/mindsync/pkg/help"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	fieldsFlag := &cli.StringFlag{
		Name:  "fields",
		Usage: "comma-separated output fields (e.g. id,title,url)",
	}
	tagFlag := &cli.StringSliceFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "tag (repeatable or comma-separated)",
	}
	filterFlags := []cli.Flag{
		&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "substring match on title, content, url and tags"},
		&cli.StringSliceFlag{Name: "type", Usage: "content type filter (repeatable)"},
		tagFlag,
		&cli.IntFlag{Name: "limit", Value: models.DefaultSearchLimit, Usage: "page size"},
		&cli.IntFlag{Name: "offset", Usage: "items to skip"},
		fieldsFlag,
	}

	return &cli.App{
		Name:  "mindsync",
		Usage: "save URLs as classified, enriched bookmarks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "mindsync.yaml", Usage: "YAML config file (optional)", EnvVars: []string{"MINDSYNC_CONFIG"}},
			&cli.StringFlag{Name: "store", Usage: "storage backend: sqlite or vault", EnvVars: []string{"MINDSYNC_STORE"}},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path", EnvVars: []string{"MINDSYNC_DB"}},
			&cli.StringFlag{Name: "vault", Usage: "vault directory", EnvVars: []string{"MINDSYNC_VAULT"}},
			&cli.StringFlag{Name: "user", Usage: "user that owns saved bookmarks", EnvVars: []string{"MINDSYNC_USER"}},
			&cli.Uint64Flag{Name: "seed", Usage: "seed for generated enrichment values (0 = time based)", EnvVars: []string{"MINDSYNC_SEED"}},
			&cli.BoolFlag{Name: "detect-language", Usage: "add lang:xx AI tags from title and notes"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of YAML"},
			&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
			&cli.BoolFlag{Name: "verbose", Usage: "log debug output"},
		},
		Commands: []*cli.Command{
			{
				Name:      "classify",
				Usage:     "Detect the content type of URLs",
				ArgsUsage: "<url>...",
				Flags:     []cli.Flag{fieldsFlag},
				Action:    classify.ClassifyAction,
			},
			{
				Name:      "enrich",
				Usage:     "Classify URLs and show the enriched metadata",
				ArgsUsage: "<url>...",
				Flags:     []cli.Flag{fieldsFlag},
				Action:    classify.EnrichAction,
			},
			{
				Name:      "save",
				Usage:     "Save URLs as bookmarks",
				ArgsUsage: "<url>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "title (generated when empty)"},
					&cli.StringFlag{Name: "note", Aliases: []string{"n"}, Usage: "notes appended to the preview"},
					tagFlag,
					fieldsFlag,
				},
				Action: bookmarks.SaveAction,
			},
			{
				Name:   "list",
				Usage:  "List bookmarks, newest first",
				Flags:  filterFlags,
				Action: bookmarks.ListAction,
			},
			{
				Name:      "get",
				Usage:     "Show one bookmark",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{fieldsFlag},
				Action:    bookmarks.GetAction,
			},
			{
				Name:      "update",
				Usage:     "Edit a bookmark",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "content"},
					&cli.StringFlag{Name: "image", Usage: "image URL"},
					tagFlag,
					&cli.BoolFlag{Name: "clear-tags", Usage: "remove all user tags"},
					fieldsFlag,
				},
				Action: bookmarks.UpdateAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete bookmarks",
				ArgsUsage: "<id>...",
				Action:    bookmarks.DeleteAction,
			},
			{
				Name:   "watch",
				Usage:  "Print the listing whenever bookmarks change",
				Flags:  filterFlags,
				Action: bookmarks.WatchAction,
			},
			{
				Name:      "import",
				Usage:     "Import a browser bookmark export (Netscape HTML)",
				ArgsUsage: "<file>",
				Action:    bookmarks.ImportAction,
			},
			{
				Name:  "stats",
				Usage: "Show counts by type, tag, site and title keyword",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "top", Value: 10, Usage: "entries per facet"},
				},
				Action: bookmarks.StatsAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
		},
	}
}
