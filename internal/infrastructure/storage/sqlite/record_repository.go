package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"revhistory/internal/domain/entity"
)

const revisionQuery = `
	SELECT rv.id, rv.record_id, rv.created_at, rv.log_message, rv.fields,
	       a.id, a.login, a.display_name
	FROM record_revisions rv
	LEFT JOIN accounts a ON a.id = rv.author_id`

type scanner interface {
	Scan(dest ...any) error
}

func (s *Storage) GetRecord(ctx context.Context, recordID int) (*entity.Record, error) {
	var (
		rec       entity.Record
		ownerID   sql.NullInt64
		currentID sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, entity_type, bundle, label, owner_id, current_revision_id, created_at
		FROM records
		WHERE id = ?`, recordID).
		Scan(&rec.ID, &rec.TypeID, &rec.Bundle, &rec.Label, &ownerID, &currentID, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	rec.OwnerID = int(ownerID.Int64)
	rec.CurrentRevisionID = int(currentID.Int64)
	return &rec, nil
}

func (s *Storage) ListRevisions(ctx context.Context, recordID int) ([]entity.Revision, error) {
	rows, err := s.db.QueryContext(ctx, revisionQuery+`
		WHERE rv.record_id = ?
		ORDER BY rv.id DESC`, recordID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []entity.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, *rev)
	}

	return revisions, rows.Err()
}

func (s *Storage) CurrentRevisionID(ctx context.Context, recordID int) (int, error) {
	var currentID sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT current_revision_id FROM records WHERE id = ?`, recordID).Scan(&currentID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("current revision: %w", err)
	}
	return int(currentID.Int64), nil
}

func (s *Storage) GetRevision(ctx context.Context, revisionID int) (*entity.Revision, error) {
	rev, err := scanRevision(s.db.QueryRowContext(ctx, revisionQuery+`
		WHERE rv.id = ?`, revisionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	return rev, nil
}

// CreateRecord inserts a record without revisions.
func (s *Storage) CreateRecord(ctx context.Context, rec entity.Record) (int, error) {
	var ownerID any
	if rec.OwnerID != 0 {
		ownerID = rec.OwnerID
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO records (entity_type, bundle, label, owner_id)
		VALUES (?, ?, ?, ?)`, rec.TypeID, rec.Bundle, rec.Label, ownerID)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record id: %w", err)
	}
	return int(id), nil
}

// AddRevision appends a revision to the record and makes it current.
func (s *Storage) AddRevision(ctx context.Context, rev entity.Revision) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var authorID any
	if rev.Author != nil {
		authorID = rev.Author.ID
	}
	fields := rev.Fields
	if len(fields) == 0 {
		fields = json.RawMessage(`{}`)
	}
	createdAt := rev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO record_revisions (record_id, author_id, log_message, fields, created_at)
		VALUES (?, ?, ?, ?, ?)`, rev.RecordID, authorID, rev.LogMessage, string(fields), createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert revision: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("revision id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE records SET current_revision_id = ? WHERE id = ?`, id, rev.RecordID); err != nil {
		return 0, fmt.Errorf("set current revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(id), nil
}

func scanRevision(row scanner) (*entity.Revision, error) {
	var (
		rev         entity.Revision
		fields      string
		authorID    sql.NullInt64
		authorLogin sql.NullString
		authorName  sql.NullString
	)

	err := row.Scan(&rev.ID, &rev.RecordID, &rev.CreatedAt, &rev.LogMessage, &fields,
		&authorID, &authorLogin, &authorName)
	if err != nil {
		return nil, err
	}

	rev.Fields = json.RawMessage(fields)
	if authorID.Valid {
		rev.Author = &entity.Account{
			ID:          int(authorID.Int64),
			Login:       authorLogin.String,
			DisplayName: authorName.String,
		}
	}
	return &rev, nil
}
