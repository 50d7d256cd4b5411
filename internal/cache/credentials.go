package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pawshelter/petcare/internal/session"
)

var _ session.Storage = (*DB)(nil)

// LoadCredentials returns the stored user and token entries. Absent entries
// come back empty.
func (d *DB) LoadCredentials(ctx context.Context) (string, string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key, value FROM credentials WHERE key IN (?, ?)`,
		session.KeyUser, session.KeyToken)
	if err != nil {
		return "", "", fmt.Errorf("reading credentials: %w", err)
	}
	defer rows.Close()

	var user, token string
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return "", "", fmt.Errorf("scanning credentials: %w", err)
		}
		switch k {
		case session.KeyUser:
			user = v
		case session.KeyToken:
			token = v
		}
	}
	return user, token, rows.Err()
}

// SaveCredentials writes both entries in one transaction.
func (d *DB) SaveCredentials(ctx context.Context, user, token string) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		for _, kv := range [][2]string{{session.KeyToken, token}, {session.KeyUser, user}} {
			if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`,
				kv[0], kv[1]); err != nil {
				return fmt.Errorf("writing %s: %w", kv[0], err)
			}
		}
		return nil
	})
}

// ClearCredentials removes both entries in one statement.
func (d *DB) ClearCredentials(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`,
		session.KeyUser, session.KeyToken)
	if err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

func (d *DB) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
