package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/itradeops/itradectl/internal/credstore/migrations"
	"github.com/itradeops/itradectl/internal/models"
)

// Slot names. The token and the identity record are the only two things the
// console persists.
const (
	slotToken    = "token"
	slotEmployee = "employee"
)

// SQLiteStore keeps the session slots in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDatabase opens the sqlite file at dsn, applies migrations, and returns a
// ready store. The caller owns closing the returned *sql.DB.
func InitDatabase(ctx context.Context, dsn string) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewSQLiteStore(db), db, nil
}

func (s *SQLiteStore) set(ctx context.Context, tx *sql.Tx, slot string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (slot, value) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value
	`, slot, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, slot string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE slot = ?`, slot).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", slot, err)
	}
	return value, nil
}

// Save writes both slots in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, token string, identity models.Employee) error {
	encoded, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := s.set(ctx, tx, slotToken, []byte(token)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := s.set(ctx, tx, slotEmployee, encoded); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Load reads the persisted credential. ok is false when no token is stored;
// in that case the returned Credential is zero regardless of what the
// identity slot holds.
func (s *SQLiteStore) Load(ctx context.Context) (Credential, bool, error) {
	token, err := s.get(ctx, slotToken)
	if err != nil {
		return Credential{}, false, err
	}
	if len(token) == 0 {
		return Credential{}, false, nil
	}

	cred := Credential{Token: string(token)}

	encoded, err := s.get(ctx, slotEmployee)
	if err != nil {
		return Credential{}, false, err
	}
	if len(encoded) > 0 {
		if err := json.Unmarshal(encoded, &cred.Identity); err != nil {
			return Credential{}, false, fmt.Errorf("failed to decode identity: %w", err)
		}
	}
	return cred, true, nil
}

// Clear removes both slots. Clearing an already empty store is a no-op.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE slot IN (?, ?)`, slotToken, slotEmployee)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
