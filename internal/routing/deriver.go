package routing

import (
	"revhistory/internal/domain/entity"

	"golang.org/x/exp/slog"
)

const historyTitle = "Revisions"

type Deriver struct {
	log *slog.Logger
}

func NewDeriver(log *slog.Logger) *Deriver {
	return &Deriver{
		log: log.With("component", "route_deriver"),
	}
}

// DeriveRoutes returns the revision view and version history routes the type
// declares link templates for. A missing template omits its route.
func (d *Deriver) DeriveRoutes(t entity.Type) []Route {
	routes := make([]Route, 0, 2)

	if route, ok := revisionViewRoute(t); ok {
		routes = append(routes, route)
	}
	if route, ok := versionHistoryRoute(t); ok {
		routes = append(routes, route)
	}

	d.log.Debug("revision routes derived", "type", t.ID, "routes", len(routes))

	return routes
}

// DeriveAll derives routes for every registered type in registry order.
func (d *Deriver) DeriveAll(reg *entity.Registry) []Route {
	var routes []Route
	for _, t := range reg.All() {
		routes = append(routes, d.DeriveRoutes(t)...)
	}
	return routes
}

func revisionViewRoute(t entity.Type) (Route, bool) {
	path, ok := t.LinkTemplate(entity.LinkRevision)
	if !ok {
		return Route{}, false
	}

	return Route{
		Name:            "entity." + t.ID + ".revision",
		Path:            path,
		Handler:         HandlerViewRevision,
		TitleFromRecord: true,
		Requirements: map[string]string{
			RequirementRevisionAccess: t.ID + ".view",
		},
		Options: Options{
			Parameters: map[string]ParamBinding{
				t.RecordParameter():   {Type: ConverterEntity + t.ID},
				t.RevisionParameter(): {Type: ConverterEntityRevision + t.ID},
			},
		},
	}, true
}

func versionHistoryRoute(t entity.Type) (Route, bool) {
	path, ok := t.LinkTemplate(entity.LinkVersionHistory)
	if !ok {
		return Route{}, false
	}

	return Route{
		Name:    "entity." + t.ID + ".version_history",
		Path:    path,
		Handler: HandlerRevisionOverview,
		Title:   historyTitle,
		Requirements: map[string]string{
			RequirementRevisionAccess: t.ID + ".list",
		},
		Options: Options{
			EntityTypeID: t.ID,
			Parameters: map[string]ParamBinding{
				t.RecordParameter(): {Type: ConverterEntity + t.ID},
			},
		},
	}, true
}
