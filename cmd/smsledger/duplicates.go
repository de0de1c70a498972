package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilbhatia/smsledger/internal/cli"
	"github.com/nikhilbhatia/smsledger/internal/dedup"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

func duplicatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Review and resolve duplicate transactions",
	}
	cmd.AddCommand(duplicatesListCmd())
	cmd.AddCommand(duplicatesResolveCmd())
	return cmd
}

func duplicatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups of transactions sharing a fingerprint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			groups, err := dedup.NewDetector(store).FindDuplicateGroups(ctx, currentUser())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No duplicates found."))
				return nil
			}

			for _, group := range groups {
				fmt.Fprintln(out, cli.TitleStyle.Render("Fingerprint "+shortFingerprint(group)))
				for _, txn := range group.Transactions {
					fmt.Fprintf(out, "  %s  %s %s %s  %s\n",
						txn.ID, txn.Type, txn.Currency, txn.Amount,
						txn.Date.Format("2006-01-02"),
					)
				}
			}
			return nil
		},
	}
}

func duplicatesResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <keep-id>",
		Short: "Keep one transaction of a duplicate group and delete the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keepID := args[0]

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			detector := dedup.NewDetector(store)
			groups, err := detector.FindDuplicateGroups(ctx, currentUser())
			if err != nil {
				return err
			}

			group, ok := groupContaining(groups, keepID)
			if !ok {
				return fmt.Errorf("transaction %s is not part of any duplicate group", keepID)
			}

			if err := detector.Resolve(ctx, group, keepID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf(
				"Kept %s, removed %d duplicate(s).", keepID, len(group.Transactions)-1,
			)))
			return nil
		},
	}
}

func groupContaining(groups []model.DuplicateGroup, id string) (model.DuplicateGroup, bool) {
	for _, group := range groups {
		if group.Contains(id) {
			return group, true
		}
	}
	return model.DuplicateGroup{}, false
}

func shortFingerprint(group model.DuplicateGroup) string {
	if len(group.Fingerprint) > 12 {
		return group.Fingerprint[:12]
	}
	return group.Fingerprint
}
