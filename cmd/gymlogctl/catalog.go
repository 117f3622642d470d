package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the exercise catalog",
	}

	cmd.AddCommand(newCatalogSearchCmd(opts))

	return cmd
}

func newCatalogSearchCmd(opts *rootOptions) *cobra.Command {
	var file, muscle string
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search exercises by name, muscle or equipment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises, err := opts.loadExercises(cmd.Context(), file)
			if err != nil {
				return err
			}
			c, err := catalog.New(exercises, 0, nil)
			if err != nil {
				return err
			}

			params := catalog.SearchParams{
				Muscle: muscle,
				Limit:  limit,
			}
			if len(args) == 1 {
				params.Query = args[0]
			}

			page := c.Search(params)
			for _, e := range page.Exercises {
				cmd.Printf("%-32s %-28s %s\n", e.ID, e.Name, strings.Join(e.PrimaryMuscles, ", "))
			}
			cmd.Printf("%d of %d\n", len(page.Exercises), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "catalog JSON file, overrides the configured source")
	cmd.Flags().StringVar(&muscle, "muscle", "", "only exercises working this muscle")
	cmd.Flags().IntVar(&limit, "limit", catalog.DefaultPageSize, "max results")

	return cmd
}

func (o *rootOptions) loadExercises(ctx context.Context, file string) ([]catalog.Exercise, error) {
	if file != "" {
		return catalog.LoadFile(file)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.CatalogURL != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		return catalog.Download(ctx, &http.Client{Timeout: 30 * time.Second}, cfg.CatalogURL)
	}
	return catalog.LoadFile(cfg.CatalogPath)
}
