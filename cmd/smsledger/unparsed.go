package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilbhatia/smsledger/internal/cli"
)

func unparsedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unparsed",
		Short: "Manage messages awaiting manual classification",
	}
	cmd.AddCommand(unparsedListCmd())
	cmd.AddCommand(unparsedResolveCmd())
	cmd.AddCommand(unparsedDiscardCmd())
	return cmd
}

func unparsedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued unparsed messages",
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

			msgs, err := store.ListUnparsedMessages(ctx, currentUser())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Nothing awaiting review."))
				return nil
			}

			for _, msg := range msgs {
				fmt.Fprintf(out, "%s  %s  %s\n  %s\n",
					msg.ID,
					msg.Message.ReceivedAt.Format("2006-01-02 15:04"),
					cli.SubtleStyle.Render(string(msg.Reason)),
					msg.Message.Body,
				)
			}
			return nil
		},
	}
}

func unparsedResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Interactively classify queued messages",
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

			user := currentUser()
			msgs, err := store.ListUnparsedMessages(ctx, user)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Nothing awaiting review."))
				return nil
			}

			resolver := cli.NewResolver(cmd.InOrStdin(), cmd.OutOrStdout(), buildEngine(store))
			return resolver.Run(ctx, user, msgs)
		},
	}
}

func unparsedDiscardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <id>",
		Short: "Discard a queued message without recording a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			if err := buildEngine(store).DiscardUnparsed(ctx, currentUser(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Discarded."))
			return nil
		},
	}
}
