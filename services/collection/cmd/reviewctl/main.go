// Command reviewctl works the collection review queue from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"collection-hub/pkg/config"
	"collection-hub/pkg/database"
	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"
	collectionCache "collection-hub/services/collection/internal/repo/cache"
	"collection-hub/services/collection/internal/repo/persistent"
	"collection-hub/services/collection/internal/usecase"

	"github.com/spf13/cobra"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	store := persistent.NewStore(db)
	catalog, err := usecase.NewCatalogUseCase(store, log)
	if err != nil {
		log.Error("Failed to build catalog: %v", err)
		os.Exit(1)
	}
	reviews := usecase.NewReviewUseCase(store, catalog, nil, log)
	collections := usecase.NewCollectionUseCase(store, catalog, collectionCache.NewCollectionCache(nil, 0, log), nil, log)

	if err := newRootCmd(reviews, collections).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(reviews usecase.ReviewUseCase, collections usecase.CollectionUseCase) *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Inspect and moderate collection drafts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newPendingCmd(reviews),
		newApproveCmd(reviews),
		newRejectCmd(reviews),
		newSlugCmd(collections),
	)
	return root
}

func newPendingCmd(reviews usecase.ReviewUseCase) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List drafts waiting for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := reviews.ListDrafts(cmd.Context(), entity.ReviewStatusPending, limit, offset)
			if err != nil {
				return err
			}
			return printDrafts(cmd.OutOrStdout(), drafts)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum drafts to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "drafts to skip")
	return cmd
}

func newApproveCmd(reviews usecase.ReviewUseCase) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "approve <draft-id>",
		Short: "Publish a pending draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := reviews.ApproveDraft(cmd.Context(), args[0], actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved %s: published collection %s (%s)\n", args[0], collection.ID, collection.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "reviewer user id")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func newRejectCmd(reviews usecase.ReviewUseCase) *cobra.Command {
	var actor, notes string

	cmd := &cobra.Command{
		Use:   "reject <draft-id>",
		Short: "Reject a pending draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			review, err := reviews.RejectDraft(cmd.Context(), args[0], notes, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rejected %s (%s)\n", review.ID, review.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "reviewer user id")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the submitter")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func newSlugCmd(collections usecase.CollectionUseCase) *cobra.Command {
	var exclude string

	cmd := &cobra.Command{
		Use:   "slug <name>",
		Short: "Show the slug a name maps to and whether it is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, available, err := collections.CheckSlug(cmd.Context(), args[0], exclude)
			if err != nil {
				return err
			}
			state := "taken"
			if available {
				state = "available"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", slug, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", "", "draft or collection id whose slug should not count")
	return cmd
}

func printDrafts(out io.Writer, drafts []*entity.CollectionReview) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tNAME\tPRODUCTS\tSUBMITTED")
	for _, d := range drafts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Slug, d.Name, len(d.Products), d.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
