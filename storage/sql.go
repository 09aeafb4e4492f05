package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// SchemaMySQL creates the table used by SQL.
const SchemaMySQL = `create table if not exists records (
	file_name varchar(768) not null primary key,
	body      json         not null
)`

// SQL is a RecordStore backed by a MySQL "records" table holding each
// record as a JSON document. Numbers read back as float64.
type SQL struct {
	db *sql.DB
}

// OpenMySQL opens a MySQL connection pool for dsn and ensures the records
// table exists.
func OpenMySQL(ctx context.Context, dsn string) (*SQL, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if _, err := db.ExecContext(ctx, SchemaMySQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create records table: %w", err)
	}
	return NewSQL(db), nil
}

// NewSQL wraps an open database whose records table already exists.
func NewSQL(db *sql.DB) *SQL { return &SQL{db: db} }

// Close releases the connection pool.
func (s *SQL) Close() error { return s.db.Close() }

// CreateRecord inserts rec; a primary key collision maps to ErrConflict.
func (s *SQL) CreateRecord(ctx context.Context, rec Record) error {
	id, err := rec.ID()
	if err != nil {
		return err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	_, err = s.db.ExecContext(ctx, `insert into records (file_name, body) values (?, ?)`, id, body)
	if isDuplicate(err) {
		return fmt.Errorf("%w: %s", ErrConflict, id)
	}
	if err != nil {
		return fmt.Errorf("storage: sql insert %s: %w", id, err)
	}
	return nil
}

// GetRecord selects the record with primary key id.
func (s *SQL) GetRecord(ctx context.Context, id string) (Record, error) {
	return s.get(ctx, s.db, id, "")
}

// DeleteRecord reads and deletes the record in one transaction.
func (s *SQL) DeleteRecord(ctx context.Context, id string) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rec, err := s.get(ctx, tx, id, " for update")
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `delete from records where file_name = ?`, id); err != nil {
		return nil, fmt.Errorf("storage: sql delete %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQL) get(ctx context.Context, q queryer, id, lock string) (Record, error) {
	var body []byte
	err := q.QueryRowContext(ctx, `select body from records where file_name = ?`+lock, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: sql get %s: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("storage: decode record %s: %w", id, err)
	}
	return rec, nil
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
