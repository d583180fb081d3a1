package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matheuskafuri/newsai/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 4

type articleGetter interface {
	GetArticle(ctx context.Context, id int64) (api.Article, error)
}

func newShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID...",
		Short: "Print the full details of one or more articles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			s, err := root.open()
			if err != nil {
				return err
			}
			defer s.close()

			articles, err := fetchArticles(cmd.Context(), s.client, ids)
			if err != nil {
				return err
			}

			now := time.Now()
			for i, a := range articles {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := writeDetail(cmd.OutOrStdout(), a, now); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid article id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchArticles gets every id concurrently. The result is in the order of
// ids; the first failure cancels the rest.
func fetchArticles(ctx context.Context, c articleGetter, ids []int64) ([]api.Article, error) {
	out := make([]api.Article, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		g.Go(func() error {
			a, err := c.GetArticle(ctx, id)
			if api.IsNotFound(err) {
				return fmt.Errorf("article %d not found", id)
			}
			if err != nil {
				return fmt.Errorf("fetching article %d: %w", id, err)
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
