package revision

import (
	"net/http"

	"revhistory/internal/app/server/api/http/middleware/auth"
	"revhistory/internal/domain/access"
	"revhistory/internal/routing"
)

// requireAccess evaluates the route's revision access requirement against the
// converted record and, when the route pins one, the converted revision.
// Routes without a requirement pass through.
func (h *Handler) requireAccess(route routing.Route) func(http.Handler) http.Handler {
	requirement, ok := route.AccessRequirement()

	return func(next http.Handler) http.Handler {
		if !ok {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, _ := getConverted(r.Context())
			if c.Record == nil {
				h.writeError(w, http.StatusNotFound, errNoRecord)
				return
			}

			viewer := auth.GetAccount(r.Context())
			allowed, err := h.access.CheckRevisionAccess(r.Context(), viewer, requirement, *c.Record, c.Revision)
			if err != nil {
				h.fail(w, r, route, err)
				return
			}
			if !allowed {
				h.log.Debug("revision access denied",
					"route", route.Name, "account_id", viewer.ID, "record_id", c.Record.ID)
				h.writeError(w, http.StatusForbidden, access.ErrDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
