package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikhilbhatia/smsledger/internal/cli"
	"github.com/nikhilbhatia/smsledger/internal/engine"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

func parseCmd() *cobra.Command {
	var sender string

	cmd := &cobra.Command{
		Use:   "parse [message text]",
		Short: "Parse a single pasted SMS into a transaction",
		Long: `Parse one SMS notification and record the extracted transaction.
The message text is taken from the argument, or from stdin when no
argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := messageBody(args)
			if err != nil {
				return err
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
			outcome, err := eng.Process(ctx, model.RawMessage{
				Sender:      sender,
				Body:        body,
				ReceivedAt:  time.Now(),
				OwnerUserID: currentUser(),
			})
			if err != nil {
				return err
			}

			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "originating short code or phone number")
	return cmd
}

func messageBody(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read message from stdin: %w", err)
	}
	body := strings.TrimSpace(string(data))
	if body == "" {
		return "", fmt.Errorf("no message text provided")
	}
	return body, nil
}

func printOutcome(w io.Writer, outcome *engine.Outcome) {
	switch outcome.Status {
	case engine.StatusAccepted:
		txn := outcome.Transaction
		fmt.Fprintln(w, cli.SuccessStyle.Render(fmt.Sprintf(
			"Accepted: %s %s %s (%s) on %s [%s]",
			txn.Type, txn.Currency, txn.Amount,
			merchantOrDash(txn.Merchant),
			txn.Date.Format("2006-01-02"),
			outcome.BankID,
		)))
	case engine.StatusDuplicate:
		fmt.Fprintln(w, cli.WarningStyle.Render(fmt.Sprintf(
			"Duplicate of transaction %s; nothing recorded.",
			outcome.DuplicateOf,
		)))
	case engine.StatusUnparsed:
		fmt.Fprintln(w, cli.ErrorStyle.Render(fmt.Sprintf(
			"Could not parse (%s); queued for manual review as %s.",
			outcome.Reason, outcome.UnparsedID,
		)))
	}
}

func merchantOrDash(merchant string) string {
	if merchant == "" {
		return "-"
	}
	return merchant
}
