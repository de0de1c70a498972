package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/nikhilbhatia/smsledger/internal/common"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

const transactionColumns = `id, user_id, fingerprint, amount, currency, transaction_type, merchant, txn_date, source_message_id, manual_origin`

// SaveTransaction persists a single parsed transaction.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.ParsedTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID, txn.OwnerUserID, txn.Fingerprint, txn.Amount.String(),
		txn.Currency, string(txn.Type), txn.Merchant, txn.Date.UTC(),
		txn.SourceMessageID, txn.ManualOrigin,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: transaction %s", common.ErrDuplicateEntry, txn.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a single transaction scoped to the user.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, userID, id string) (*model.ParsedTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ? AND id = ?
	`, userID, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// DeleteTransaction hard-deletes a transaction scoped to the user.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	return nil
}

// ListTransactions returns all of the user's transactions, newest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, userID string) ([]model.ParsedTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ?
		ORDER BY txn_date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTransactions(rows)
}

// FindByFingerprint returns the user's transactions carrying the given
// fingerprint, oldest first so the first element is the original.
func (s *SQLiteStorage) FindByFingerprint(ctx context.Context, userID, fingerprint string) ([]model.ParsedTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(fingerprint, "fingerprint"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ? AND fingerprint = ?
		ORDER BY created_at ASC, rowid ASC
	`, userID, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprint: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTransactions(rows)
}

// ListFingerprintGroups groups the user's transactions by fingerprint.
// Groups of one are included; the dedup layer filters them out.
func (s *SQLiteStorage) ListFingerprintGroups(ctx context.Context, userID string) ([]model.DuplicateGroup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ?
		ORDER BY fingerprint ASC, created_at ASC, rowid ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprint groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}

	var groups []model.DuplicateGroup
	for _, txn := range txns {
		if n := len(groups); n > 0 && groups[n-1].Fingerprint == txn.Fingerprint {
			groups[n-1].Transactions = append(groups[n-1].Transactions, txn)
			continue
		}
		groups = append(groups, model.DuplicateGroup{
			Fingerprint:  txn.Fingerprint,
			Transactions: []model.ParsedTransaction{txn},
		})
	}
	return groups, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.ParsedTransaction, error) {
	var (
		txn       model.ParsedTransaction
		amountStr string
		typeStr   string
		date      time.Time
	)

	err := row.Scan(
		&txn.ID, &txn.OwnerUserID, &txn.Fingerprint, &amountStr,
		&txn.Currency, &typeStr, &txn.Merchant, &date,
		&txn.SourceMessageID, &txn.ManualOrigin,
	)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amountStr, err)
	}
	txn.Amount = amount
	txn.Type = model.TransactionType(typeStr)
	txn.Date = date
	return &txn, nil
}

func collectTransactions(rows *sql.Rows) ([]model.ParsedTransaction, error) {
	var txns []model.ParsedTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
