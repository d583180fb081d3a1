package cmd

import (
	"fmt"
	"time"

	"github.com/matheuskafuri/newsai/internal/feed"
	"github.com/spf13/cobra"
)

// maxLimit is the largest page the API accepts.
const maxLimit = 100

type listOptions struct {
	limit    int
	offset   int
	search   string
	category string
	json     bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	o := &listOptions{}

	c := &cobra.Command{
		Use:   "list",
		Short: "Print one page of articles",
		Long: `Fetch one page of articles and print it.

--search and --category filter the fetched page the same way the reader does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.limit < 0 || o.limit > maxLimit {
				return fmt.Errorf("--limit must be between 1 and %d", maxLimit)
			}
			if o.offset < 0 {
				return fmt.Errorf("--offset must not be negative")
			}

			s, err := root.open()
			if err != nil {
				return err
			}
			defer s.close()

			limit := o.limit
			if limit == 0 {
				limit = s.cfg.GetPageSize()
			}
			page, err := s.client.ListArticles(cmd.Context(), limit, o.offset)
			if err != nil {
				return fmt.Errorf("listing articles: %w", err)
			}
			page = feed.Filter(page, o.search, o.category)

			if o.json {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			return writeList(cmd.OutOrStdout(), page, time.Now())
		},
	}

	f := c.Flags()
	f.IntVarP(&o.limit, "limit", "n", 0, "articles per page (default page_size from config)")
	f.IntVar(&o.offset, "offset", 0, "number of articles to skip")
	f.StringVarP(&o.search, "search", "s", "", "only show articles whose title or summary contains this text")
	f.StringVarP(&o.category, "category", "c", "", "only show articles in this category")
	f.BoolVar(&o.json, "json", false, "print JSON instead of a table")
	return c
}
