package revision

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"html/template"
	"slices"

	"revhistory/internal/domain/entity"

	"golang.org/x/exp/slog"
)

const tableTitle = "Revisions"

var tableHeader = []string{"Revision", "Revert", "Delete"}

// Servicer lists revisions for the version history page.
type Servicer interface {
	ListRevisions(ctx context.Context, viewer entity.Account, recordID int) (*Table, error)
}

// Service builds the version history table of a record.
type Service struct {
	repo      Repository
	types     TypeResolver
	access    PermissionChecker
	dates     DateFormatter
	links     LinkBuilder
	sanitizer *Sanitizer
	log       *slog.Logger
}

func NewService(
	repo Repository,
	types TypeResolver,
	access PermissionChecker,
	dates DateFormatter,
	links LinkBuilder,
	log *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		types:     types,
		access:    access,
		dates:     dates,
		links:     links,
		sanitizer: NewSanitizer(),
		log:       log.With("component", "revision_lister"),
	}
}

// ListRevisions returns one row per revision of the record, newest first.
// It fails with entity.ErrNotFound when the record does not exist.
func (s *Service) ListRevisions(ctx context.Context, viewer entity.Account, recordID int) (*Table, error) {
	rec, err := s.repo.GetRecord(ctx, recordID)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			s.log.Error("failed to load record", "record_id", recordID, "error", err)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}

	typ, err := s.types.Get(rec.TypeID)
	if err != nil {
		s.log.Error("record has unconfigured type", "record_id", recordID, "type", rec.TypeID)
		return nil, err
	}

	revisions, err := s.repo.ListRevisions(ctx, rec.ID)
	if err != nil {
		s.log.Error("failed to list revisions", "record_id", recordID, "error", err)
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	currentID, err := s.repo.CurrentRevisionID(ctx, rec.ID)
	if err != nil {
		s.log.Error("failed to get current revision", "record_id", recordID, "error", err)
		return nil, fmt.Errorf("current revision: %w", err)
	}

	canRevert, err := s.hasRevertAccess(ctx, viewer, typ, *rec)
	if err != nil {
		return nil, err
	}
	canDelete, err := s.hasDeleteAccess(ctx, viewer, typ)
	if err != nil {
		return nil, err
	}

	ordered := slices.Clone(revisions)
	slices.SortStableFunc(ordered, func(a, b entity.Revision) int {
		return cmp.Compare(b.ID, a.ID)
	})

	rows := make([]Row, 0, len(ordered))
	for i := range ordered {
		rev := &ordered[i]
		row, err := s.buildRow(typ, *rec, rev, rev.ID == currentID, canRevert, canDelete)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	s.log.Debug("revisions listed",
		"record_id", rec.ID, "type", typ.ID, "viewer", viewer.ID, "rows", len(rows))

	return &Table{
		Title:    tableTitle,
		RecordID: rec.ID,
		TypeID:   typ.ID,
		Header:   tableHeader,
		Rows:     rows,
	}, nil
}

func (s *Service) buildRow(
	typ entity.Type,
	rec entity.Record,
	rev *entity.Revision,
	current, canRevert, canDelete bool,
) (Row, error) {
	row := Row{
		RevisionID: rev.ID,
		Current:    current,
		LinkLabel:  rec.Label,
	}

	if typ.Capabilities.RevisionLog {
		row.LinkLabel = s.dates.FormatShort(rev.CreatedAt)

		msg, suspicious := s.sanitizer.Sanitize(rev.LogMessage)
		if suspicious {
			s.log.Warn("revision log message looks like XSS, sanitized",
				"record_id", rec.ID, "revision_id", rev.ID)
		}
		row.LogMessage = msg
	}

	// Only ownership supplies the author; revision log author data is ignored.
	if typ.Capabilities.Ownership && rev.Author != nil {
		row.Author = &AuthorToken{AccountID: rev.Author.ID, Name: rev.Author.Name()}
	}

	// The current revision links to the live record, never to a revision URL.
	target := entity.LinkRevision
	targetRev := rev
	if current {
		target = entity.LinkCanonical
		targetRev = nil
	}

	link := template.HTML(template.HTMLEscapeString(row.LinkLabel))
	if typ.HasLinkTemplate(target) {
		url, err := s.links.URL(typ, target, rec, targetRev)
		if err != nil {
			return Row{}, err
		}
		row.LinkTarget = url
		link, err = s.links.Link(row.LinkLabel, url)
		if err != nil {
			return Row{}, err
		}
	}

	description, err := describe(link, row.Author, row.LogMessage)
	if err != nil {
		return Row{}, err
	}
	row.Description = description

	if current {
		return row, nil
	}

	if canRevert && typ.HasLinkTemplate(entity.LinkRevisionRevert) {
		url, err := s.links.URL(typ, entity.LinkRevisionRevert, rec, rev)
		if err != nil {
			return Row{}, err
		}
		row.Revert = &Action{Title: "Revert", URL: url}
	}

	if canDelete && typ.HasLinkTemplate(entity.LinkRevisionDelete) {
		url, err := s.links.URL(typ, entity.LinkRevisionDelete, rec, rev)
		if err != nil {
			return Row{}, err
		}
		row.Delete = &Action{Title: "Delete", URL: url}
	}

	return row, nil
}

func (s *Service) hasRevertAccess(ctx context.Context, viewer entity.Account, typ entity.Type, rec entity.Record) (bool, error) {
	ok, err := s.access.HasPermission(ctx, viewer, RevertAllPermission(typ.ID))
	if err != nil {
		return false, fmt.Errorf("check revert permission: %w", err)
	}
	if ok || !typ.Capabilities.Bundles || !typ.HasBundle(rec.Bundle) {
		return ok, nil
	}

	ok, err = s.access.HasPermission(ctx, viewer, RevertBundlePermission(rec.Bundle, typ.ID))
	if err != nil {
		return false, fmt.Errorf("check revert permission: %w", err)
	}
	return ok, nil
}

func (s *Service) hasDeleteAccess(ctx context.Context, viewer entity.Account, typ entity.Type) (bool, error) {
	ok, err := s.access.HasPermission(ctx, viewer, DeleteAllPermission(typ.ID))
	if err != nil {
		return false, fmt.Errorf("check delete permission: %w", err)
	}
	return ok, nil
}
