package access

import (
	"context"
	"fmt"
	"strings"

	"revhistory/internal/domain/entity"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slog"
)

// Operations accepted in revision access requirements.
const (
	OpView = "view"
	OpList = "list"
)

type Servicer interface {
	HasPermission(ctx context.Context, account entity.Account, permission string) (bool, error)
	CheckRevisionAccess(ctx context.Context, account entity.Account, requirement string, rec entity.Record, rev *entity.Revision) (bool, error)
	Grant(ctx context.Context, accountID int, permissions ...string) error
}

type Service struct {
	repo       Repository
	superusers mapset.Set[int]
	log        *slog.Logger
}

func NewService(repo Repository, superusers []int, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		superusers: mapset.NewSet(superusers...),
		log:        log.With("component", "access_service"),
	}
}

func AdministerPermission(typeID string) string {
	return "administer " + typeID
}

func ViewAllRevisionsPermission(typeID string) string {
	return fmt.Sprintf("view all %s revisions", typeID)
}

func ViewBundleRevisionsPermission(bundle, typeID string) string {
	return fmt.Sprintf("view %s %s revisions", bundle, typeID)
}

func (s *Service) HasPermission(ctx context.Context, account entity.Account, permission string) (bool, error) {
	perms, all, err := s.permissions(ctx, account)
	if err != nil || all {
		return all, err
	}
	return perms.Contains(permission), nil
}

// CheckRevisionAccess evaluates a "<type>.<operation>" requirement against a
// record and, for view requirements, the pinned revision. A revision that
// belongs to another record is always denied. Otherwise both operations are
// granted by the type's administer permission, the all-revisions view
// permission or the bundle view permission.
func (s *Service) CheckRevisionAccess(ctx context.Context, account entity.Account, requirement string, rec entity.Record, rev *entity.Revision) (bool, error) {
	typeID, op, ok := strings.Cut(requirement, ".")
	if !ok || typeID == "" || (op != OpView && op != OpList) {
		return false, fmt.Errorf("%w: %q", ErrInvalidRequirement, requirement)
	}
	if rec.TypeID != typeID {
		s.log.Warn("requirement type does not match record",
			"requirement", requirement, "record_id", rec.ID, "record_type", rec.TypeID)
		return false, nil
	}
	if rev != nil && rev.RecordID != rec.ID {
		s.log.Warn("revision does not belong to record",
			"requirement", requirement, "record_id", rec.ID, "revision_id", rev.ID, "revision_record_id", rev.RecordID)
		return false, nil
	}

	perms, all, err := s.permissions(ctx, account)
	if err != nil || all {
		return all, err
	}

	candidates := []string{
		AdministerPermission(typeID),
		ViewAllRevisionsPermission(typeID),
	}
	if rec.Bundle != "" {
		candidates = append(candidates, ViewBundleRevisionsPermission(rec.Bundle, typeID))
	}

	for _, p := range candidates {
		if perms.Contains(p) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) Grant(ctx context.Context, accountID int, permissions ...string) error {
	if err := s.repo.Grant(ctx, accountID, permissions...); err != nil {
		s.log.Error("failed to grant permissions", "account_id", accountID, "error", err)
		return fmt.Errorf("grant permissions: %w", err)
	}
	return nil
}

// permissions loads the account's permission set. all is true for superusers.
func (s *Service) permissions(ctx context.Context, account entity.Account) (perms mapset.Set[string], all bool, err error) {
	if !account.IsAnonymous() && s.superusers.Contains(account.ID) {
		return nil, true, nil
	}
	list, err := s.repo.Permissions(ctx, account.ID)
	if err != nil {
		s.log.Error("failed to load permissions", "account_id", account.ID, "error", err)
		return nil, false, fmt.Errorf("load permissions: %w", err)
	}
	return mapset.NewSet(list...), false, nil
}
