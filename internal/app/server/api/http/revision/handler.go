// Package revision serves the derived revision routes on chi.
package revision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"revhistory/internal/app/server/api/http/middleware/auth"
	"revhistory/internal/domain/access"
	"revhistory/internal/domain/entity"
	domain "revhistory/internal/domain/revision"
	"revhistory/internal/routing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

var errNoRecord = errors.New("route has no record parameter")

// RecordLoader resolves path parameters to live records and pinned revisions.
type RecordLoader interface {
	GetRecord(ctx context.Context, recordID int) (*entity.Record, error)
	GetRevision(ctx context.Context, revisionID int) (*entity.Revision, error)
}

type AccessChecker interface {
	CheckRevisionAccess(ctx context.Context, account entity.Account, requirement string, rec entity.Record, rev *entity.Revision) (bool, error)
}

type Handler struct {
	lister    domain.Servicer
	types     domain.TypeResolver
	records   RecordLoader
	access    AccessChecker
	sanitizer *domain.Sanitizer
	log       *slog.Logger
}

func NewHandler(
	lister domain.Servicer,
	types domain.TypeResolver,
	records RecordLoader,
	access AccessChecker,
	log *slog.Logger,
) *Handler {
	return &Handler{
		lister:    lister,
		types:     types,
		records:   records,
		access:    access,
		sanitizer: domain.NewSanitizer(),
		log:       log.With("component", "revision_handler"),
	}
}

// Mount registers every route as a GET endpoint. Parameters are converted and
// access is checked before the route's handler runs.
func (h *Handler) Mount(r chi.Router, routes []routing.Route) {
	for _, route := range routes {
		handler, ok := h.handlerFor(route)
		if !ok {
			h.log.Warn("route has unknown handler, skipped", "route", route.Name, "handler", route.Handler)
			continue
		}

		r.With(h.convert(route), h.requireAccess(route)).Get(route.Path, handler)
		h.log.Debug("route mounted", "route", route.Name, "path", route.Path)
	}
}

func (h *Handler) handlerFor(route routing.Route) (http.HandlerFunc, bool) {
	switch route.Handler {
	case routing.HandlerRevisionOverview:
		return h.overview(route), true
	case routing.HandlerViewRevision:
		return h.view(route), true
	default:
		return nil, false
	}
}

// overview lists the record's revisions.
func (h *Handler) overview(route routing.Route) http.HandlerFunc {
	param, ok := route.RecordParameter()

	return func(w http.ResponseWriter, r *http.Request) {
		c, _ := getConverted(r.Context())
		if !ok || c.Record == nil {
			h.log.Error("version history route without record parameter", "route", route.Name, "param", param)
			h.writeError(w, http.StatusInternalServerError, errNoRecord)
			return
		}

		table, err := h.lister.ListRevisions(r.Context(), auth.GetAccount(r.Context()), c.Record.ID)
		if err != nil {
			h.fail(w, r, route, err)
			return
		}
		if route.Title != "" {
			table.Title = route.Title
		}

		h.writeJSON(w, http.StatusOK, table)
	}
}

// view shows one pinned revision, titled with the record label. Author and
// log message are only sent for types that record them.
func (h *Handler) view(route routing.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _ := getConverted(r.Context())
		if c.Record == nil || c.Revision == nil {
			h.writeError(w, http.StatusNotFound, entity.ErrNotFound)
			return
		}

		typ, err := h.types.Get(c.Record.TypeID)
		if err != nil {
			h.fail(w, r, route, err)
			return
		}

		title := route.Title
		if route.TitleFromRecord {
			title = c.Record.Label
		}

		resp := ViewResponse{
			Title:      title,
			RecordID:   c.Record.ID,
			RevisionID: c.Revision.ID,
			Current:    c.Revision.ID == c.Record.CurrentRevisionID,
			CreatedAt:  c.Revision.CreatedAt,
			Fields:     c.Revision.Fields,
		}
		if typ.Capabilities.Ownership && c.Revision.Author != nil {
			resp.Author = &domain.AuthorToken{AccountID: c.Revision.Author.ID, Name: c.Revision.Author.Name()}
		}
		if typ.Capabilities.RevisionLog {
			msg, suspicious := h.sanitizer.Sanitize(c.Revision.LogMessage)
			if suspicious {
				h.log.Warn("suspicious revision log message sanitized",
					"record_id", c.Record.ID, "revision_id", c.Revision.ID)
			}
			resp.LogMessage = msg
		}

		h.writeJSON(w, http.StatusOK, resp)
	}
}

// fail maps domain errors onto HTTP statuses.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, route routing.Route, err error) {
	switch {
	case isNotFound(err):
		h.writeError(w, http.StatusNotFound, entity.ErrNotFound)
	case errors.Is(err, access.ErrDenied):
		h.writeError(w, http.StatusForbidden, access.ErrDenied)
	default:
		h.log.Error("revision request failed",
			"route", route.Name, "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}
