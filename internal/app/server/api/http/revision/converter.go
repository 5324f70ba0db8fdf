package revision

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"revhistory/internal/domain/entity"
	"revhistory/internal/routing"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const convertedKey contextKey = "converted"

// Converted holds the path parameters resolved for the current route.
type Converted struct {
	Record   *entity.Record
	Revision *entity.Revision
}

func withConverted(ctx context.Context, c Converted) context.Context {
	return context.WithValue(ctx, convertedKey, c)
}

func getConverted(ctx context.Context) (Converted, bool) {
	c, ok := ctx.Value(convertedKey).(Converted)
	return c, ok
}

// convert resolves the route's path parameters before dispatch. Live record
// bindings are resolved first so a pinned revision can be checked against its
// record.
func (h *Handler) convert(route routing.Route) func(http.Handler) http.Handler {
	names := make([]string, 0, len(route.Options.Parameters))
	for name := range route.Options.Parameters {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		ra, rb := route.Options.Parameters[a].Revision(), route.Options.Parameters[b].Revision()
		switch {
		case ra == rb:
			return 0
		case rb:
			return -1
		default:
			return 1
		}
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var c Converted
			for _, name := range names {
				id, err := strconv.Atoi(chi.URLParam(r, name))
				if err != nil || id <= 0 {
					h.writeError(w, http.StatusNotFound, entity.ErrNotFound)
					return
				}

				binding := route.Options.Parameters[name]
				if binding.Revision() {
					err = h.convertRevision(r.Context(), id, &c)
				} else {
					err = h.convertRecord(r.Context(), id, binding.EntityTypeID(), &c)
				}
				if err != nil {
					h.fail(w, r, route, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(withConverted(r.Context(), c)))
		})
	}
}

func (h *Handler) convertRecord(ctx context.Context, id int, typeID string, c *Converted) error {
	rec, err := h.records.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if rec.TypeID != typeID {
		return entity.ErrNotFound
	}
	c.Record = rec
	return nil
}

func (h *Handler) convertRevision(ctx context.Context, id int, c *Converted) error {
	rev, err := h.records.GetRevision(ctx, id)
	if err != nil {
		return err
	}
	if c.Record == nil || rev.RecordID != c.Record.ID {
		return entity.ErrNotFound
	}
	c.Revision = rev
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}
