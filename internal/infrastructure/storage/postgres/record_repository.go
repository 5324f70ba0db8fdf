package postgres

import (
	"context"
	"errors"
	"fmt"

	"revhistory/internal/domain/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const revisionColumns = `
	rv.id, rv.record_id, rv.created_at, rv.log_message, rv.fields,
	a.id, a.login, a.display_name`

type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(pool *pgxpool.Pool, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: pool,
		log:  log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) GetRecord(ctx context.Context, recordID int) (*entity.Record, error) {
	const query = `
		SELECT id, entity_type, bundle, label, owner_id, current_revision_id, created_at
		FROM records
		WHERE id = $1`

	var (
		rec       entity.Record
		ownerID   *int
		currentID *int
	)
	err := r.pool.QueryRow(ctx, query, recordID).Scan(
		&rec.ID, &rec.TypeID, &rec.Bundle, &rec.Label, &ownerID, &currentID, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", recordID, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}

	if ownerID != nil {
		rec.OwnerID = *ownerID
	}
	if currentID != nil {
		rec.CurrentRevisionID = *currentID
	}

	return &rec, nil
}

func (r *RecordRepository) ListRevisions(ctx context.Context, recordID int) ([]entity.Revision, error) {
	const query = `
		SELECT` + revisionColumns + `
		FROM record_revisions rv
		LEFT JOIN accounts a ON a.id = rv.author_id
		WHERE rv.record_id = $1
		ORDER BY rv.id DESC`

	rows, err := r.pool.Query(ctx, query, recordID)
	if err != nil {
		r.log.Error("failed to list revisions", "record_id", recordID, "error", err)
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

func (r *RecordRepository) CurrentRevisionID(ctx context.Context, recordID int) (int, error) {
	var currentID *int
	err := r.pool.QueryRow(ctx,
		`SELECT current_revision_id FROM records WHERE id = $1`, recordID).Scan(&currentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, entity.ErrNotFound
		}
		return 0, fmt.Errorf("current revision: %w", err)
	}
	if currentID == nil {
		return 0, nil
	}
	return *currentID, nil
}

func (r *RecordRepository) GetRevision(ctx context.Context, revisionID int) (*entity.Revision, error) {
	const query = `
		SELECT` + revisionColumns + `
		FROM record_revisions rv
		LEFT JOIN accounts a ON a.id = rv.author_id
		WHERE rv.id = $1`

	rev, err := scanRevision(r.pool.QueryRow(ctx, query, revisionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		r.log.Error("failed to get revision", "revision_id", revisionID, "error", err)
		return nil, fmt.Errorf("get revision: %w", err)
	}
	return rev, nil
}

func scanRevision(row pgx.Row) (*entity.Revision, error) {
	var (
		rev         entity.Revision
		authorID    *int
		authorLogin *string
		authorName  *string
	)

	err := row.Scan(
		&rev.ID, &rev.RecordID, &rev.CreatedAt, &rev.LogMessage, &rev.Fields,
		&authorID, &authorLogin, &authorName,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		rev.Author = &entity.Account{ID: *authorID}
		if authorLogin != nil {
			rev.Author.Login = *authorLogin
		}
		if authorName != nil {
			rev.Author.DisplayName = *authorName
		}
	}

	return &rev, nil
}
