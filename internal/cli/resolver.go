package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nikhilbhatia/smsledger/internal/engine"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

// Resolver walks the unparsed-message queue interactively, letting the
// user turn each entry into a transaction or discard it.
type Resolver struct {
	reader *bufio.Reader
	writer io.Writer
	engine *engine.Engine
}

// NewResolver creates a resolver reading prompts from r and writing to w.
// Nil arguments default to stdin/stdout.
func NewResolver(r io.Reader, w io.Writer, eng *engine.Engine) *Resolver {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Resolver{
		reader: bufio.NewReader(r),
		writer: w,
		engine: eng,
	}
}

// Run presents each queued message in turn. Returns early on context
// cancellation or when the user quits.
func (r *Resolver) Run(ctx context.Context, userID string, msgs []model.UnparsedMessage) error {
	for i, msg := range msgs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.printMessage(i+1, len(msgs), msg)

		action, err := r.prompt("[r]esolve, [d]iscard, [s]kip, [q]uit: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(action) {
		case "r", "resolve":
			if err := r.resolve(ctx, userID, msg); err != nil {
				fmt.Fprintln(r.writer, ErrorStyle.Render(err.Error()))
			}
		case "d", "discard":
			if err := r.engine.DiscardUnparsed(ctx, userID, msg.ID); err != nil {
				return err
			}
			fmt.Fprintln(r.writer, SubtleStyle.Render("Discarded."))
		case "q", "quit":
			return nil
		default:
			fmt.Fprintln(r.writer, SubtleStyle.Render("Skipped."))
		}
	}
	return nil
}

func (r *Resolver) printMessage(n, total int, msg model.UnparsedMessage) {
	fmt.Fprintln(r.writer, TitleStyle.Render(fmt.Sprintf("Message %d of %d", n, total)))
	fmt.Fprintln(r.writer, MessageBoxStyle.Render(msg.Message.Body))
	fmt.Fprintln(r.writer, SubtleStyle.Render(fmt.Sprintf(
		"from %s at %s (%s)",
		msg.Message.Sender,
		msg.Message.ReceivedAt.Format("2006-01-02 15:04"),
		msg.Reason,
	)))
}

func (r *Resolver) resolve(ctx context.Context, userID string, msg model.UnparsedMessage) error {
	input, err := r.collectInput()
	if err != nil {
		return err
	}

	outcome, err := r.engine.ResolveManual(ctx, userID, msg.ID, input)
	if err != nil {
		return err
	}

	switch outcome.Status {
	case engine.StatusAccepted:
		fmt.Fprintln(r.writer, SuccessStyle.Render(fmt.Sprintf(
			"Recorded %s %s %s.",
			outcome.Transaction.Type,
			outcome.Transaction.Currency,
			outcome.Transaction.Amount,
		)))
	case engine.StatusDuplicate:
		fmt.Fprintln(r.writer, WarningStyle.Render(fmt.Sprintf(
			"Duplicate of transaction %s; entry left queued.",
			outcome.DuplicateOf,
		)))
	}
	return nil
}

func (r *Resolver) collectInput() (engine.ManualInput, error) {
	var input engine.ManualInput

	rawAmount, err := r.prompt("Amount: ")
	if err != nil {
		return input, err
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(rawAmount, ",", ""))
	if err != nil {
		return input, fmt.Errorf("invalid amount %q: %w", rawAmount, err)
	}
	input.Amount = amount

	rawType, err := r.prompt("Type (debit/credit): ")
	if err != nil {
		return input, err
	}
	input.Type = model.TransactionType(strings.ToLower(rawType))

	if input.Merchant, err = r.prompt("Merchant (optional): "); err != nil {
		return input, err
	}

	rawDate, err := r.prompt("Date YYYY-MM-DD (blank for message time): ")
	if err != nil {
		return input, err
	}
	if rawDate != "" {
		date, parseErr := time.Parse("2006-01-02", rawDate)
		if parseErr != nil {
			return input, fmt.Errorf("invalid date %q: %w", rawDate, parseErr)
		}
		input.Date = date
	}

	return input, nil
}

func (r *Resolver) prompt(label string) (string, error) {
	fmt.Fprint(r.writer, label)
	line, err := r.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
