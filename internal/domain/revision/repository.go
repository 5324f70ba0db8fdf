package revision

import (
	"context"
	"html/template"
	"time"

	"revhistory/internal/domain/entity"
)

// Repository is the read side of record storage.
type Repository interface {
	GetRecord(ctx context.Context, recordID int) (*entity.Record, error)
	// ListRevisions returns every revision of the record. Order is not relied on.
	ListRevisions(ctx context.Context, recordID int) ([]entity.Revision, error)
	CurrentRevisionID(ctx context.Context, recordID int) (int, error)
	GetRevision(ctx context.Context, revisionID int) (*entity.Revision, error)
}

type TypeResolver interface {
	Get(id string) (entity.Type, error)
}

type PermissionChecker interface {
	HasPermission(ctx context.Context, account entity.Account, permission string) (bool, error)
}

type DateFormatter interface {
	FormatShort(t time.Time) string
}

type LinkBuilder interface {
	URL(t entity.Type, name string, rec entity.Record, rev *entity.Revision) (string, error)
	Link(label, url string) (template.HTML, error)
}
