package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nikhilbhatia/smsledger/internal/cli"
	"github.com/nikhilbhatia/smsledger/internal/engine"
	"github.com/nikhilbhatia/smsledger/internal/smsbackup"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.xml>",
		Short: "Replay an Android SMS backup through the parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := smsbackup.ReadFile(args[0], currentUser())
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				return fmt.Errorf("no messages found in %s", args[0])
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			eng := buildEngine(store)
			bar := progressbar.Default(int64(len(msgs)), "parsing")

			var accepted, duplicates, unparsed int
			for _, msg := range msgs {
				outcome, procErr := eng.Process(ctx, msg)
				if procErr != nil {
					return procErr
				}
				switch outcome.Status {
				case engine.StatusAccepted:
					accepted++
				case engine.StatusDuplicate:
					duplicates++
				case engine.StatusUnparsed:
					unparsed++
				}
				_ = bar.Add(1)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.TitleStyle.Render("Import summary"))
			fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf("  accepted:   %d", accepted)))
			fmt.Fprintln(out, cli.WarningStyle.Render(fmt.Sprintf("  duplicates: %d", duplicates)))
			fmt.Fprintln(out, cli.ErrorStyle.Render(fmt.Sprintf("  unparsed:   %d", unparsed)))
			if unparsed > 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Run 'smsledger unparsed resolve' to review queued messages."))
			}
			return nil
		},
	}
}
