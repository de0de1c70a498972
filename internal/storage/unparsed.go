package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikhilbhatia/smsledger/internal/common"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

const unparsedColumns = `id, user_id, message_id, sender, body, received_at, reason, created_at`

// SaveUnparsedMessage adds a message to the manual-review queue. The
// original sender and body are stored verbatim so failed parsing never
// loses data.
func (s *SQLiteStorage) SaveUnparsedMessage(ctx context.Context, msg *model.UnparsedMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUnparsedMessage(msg); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO unparsed_messages (id, user_id, message_id, sender, body, received_at, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		msg.ID, msg.Message.OwnerUserID, msg.Message.ID, msg.Message.Sender,
		msg.Message.Body, msg.Message.ReceivedAt.UTC(), string(msg.Reason),
	)
	if err != nil {
		return fmt.Errorf("failed to save unparsed message: %w", err)
	}
	return nil
}

// GetUnparsedMessage retrieves one queue entry scoped to the user.
func (s *SQLiteStorage) GetUnparsedMessage(ctx context.Context, userID, id string) (*model.UnparsedMessage, error) {
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
		SELECT `+unparsedColumns+`
		FROM unparsed_messages
		WHERE user_id = ? AND id = ?
	`, userID, id)

	msg, err := scanUnparsedMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: unparsed message %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unparsed message: %w", err)
	}
	return msg, nil
}

// ListUnparsedMessages returns the user's queue, oldest first.
func (s *SQLiteStorage) ListUnparsedMessages(ctx context.Context, userID string) ([]model.UnparsedMessage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+unparsedColumns+`
		FROM unparsed_messages
		WHERE user_id = ?
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unparsed messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []model.UnparsedMessage
	for rows.Next() {
		msg, scanErr := scanUnparsedMessage(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan unparsed message: %w", scanErr)
		}
		msgs = append(msgs, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unparsed messages: %w", err)
	}
	return msgs, nil
}

// DeleteUnparsedMessage removes a resolved or discarded entry.
func (s *SQLiteStorage) DeleteUnparsedMessage(ctx context.Context, userID, id string) error {
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
		DELETE FROM unparsed_messages WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete unparsed message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: unparsed message %s", common.ErrNotFound, id)
	}
	return nil
}

func scanUnparsedMessage(row rowScanner) (*model.UnparsedMessage, error) {
	var (
		msg       model.UnparsedMessage
		reasonStr string
	)

	err := row.Scan(
		&msg.ID, &msg.Message.OwnerUserID, &msg.Message.ID,
		&msg.Message.Sender, &msg.Message.Body, &msg.Message.ReceivedAt,
		&reasonStr, &msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	msg.Reason = model.UnparsedReason(reasonStr)
	return &msg, nil
}
