package routing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"revhistory/internal/domain/entity"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func typeWith(id string, links map[string]string) entity.Type {
	return entity.Type{ID: id, Label: id, Links: links}
}

func TestDeriver_DeriveRoutes(t *testing.T) {
	d := NewDeriver(slog.Default())

	tests := []struct {
		name      string
		links     map[string]string
		wantNames []string
	}{
		{
			name:      "no templates",
			links:     map[string]string{entity.LinkCanonical: "/node/{node}"},
			wantNames: []string{},
		},
		{
			name:      "revision only",
			links:     map[string]string{entity.LinkRevision: "/node/{node}/revisions/{node_revision}/view"},
			wantNames: []string{"entity.node.revision"},
		},
		{
			name:      "history only",
			links:     map[string]string{entity.LinkVersionHistory: "/node/{node}/revisions"},
			wantNames: []string{"entity.node.version_history"},
		},
		{
			name: "both",
			links: map[string]string{
				entity.LinkRevision:       "/node/{node}/revisions/{node_revision}/view",
				entity.LinkVersionHistory: "/node/{node}/revisions",
			},
			wantNames: []string{"entity.node.revision", "entity.node.version_history"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := d.DeriveRoutes(typeWith("node", tt.links))

			names := make([]string, 0, len(routes))
			for _, r := range routes {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestDeriver_DistinctRequirements(t *testing.T) {
	d := NewDeriver(slog.Default())
	routes := d.DeriveRoutes(typeWith("node", map[string]string{
		entity.LinkRevision:       "/node/{node}/revisions/{node_revision}/view",
		entity.LinkVersionHistory: "/node/{node}/revisions",
	}))
	require.Len(t, routes, 2)

	view, history := routes[0], routes[1]

	req, ok := view.AccessRequirement()
	require.True(t, ok)
	assert.Equal(t, "node.view", req)

	req, ok = history.AccessRequirement()
	require.True(t, ok)
	assert.Equal(t, "node.list", req)
}

func TestDeriver_RevisionViewRoute(t *testing.T) {
	d := NewDeriver(slog.Default())
	routes := d.DeriveRoutes(typeWith("article", map[string]string{
		entity.LinkRevision: "/article/{article}/revisions/{article_revision}/view",
	}))
	require.Len(t, routes, 1)
	r := routes[0]

	assert.Equal(t, "/article/{article}/revisions/{article_revision}/view", r.Path)
	assert.Equal(t, HandlerViewRevision, r.Handler)
	assert.True(t, r.TitleFromRecord)

	record := r.Options.Parameters["article"]
	revision := r.Options.Parameters["article_revision"]
	assert.Equal(t, "entity:article", record.Type)
	assert.False(t, record.Revision())
	assert.Equal(t, "entity_revision:article", revision.Type)
	assert.True(t, revision.Revision())
	assert.Equal(t, "article", revision.EntityTypeID())

	_, ok := r.RecordParameter()
	assert.False(t, ok, "view route carries no history record option")
}

func TestDeriver_VersionHistoryRoute(t *testing.T) {
	d := NewDeriver(slog.Default())
	routes := d.DeriveRoutes(typeWith("article", map[string]string{
		entity.LinkVersionHistory: "/article/{article}/history",
	}))
	require.Len(t, routes, 1)
	r := routes[0]

	assert.Equal(t, HandlerRevisionOverview, r.Handler)
	assert.Equal(t, "Revisions", r.Title)
	assert.Equal(t, "article", r.Options.EntityTypeID)
	assert.Equal(t, map[string]ParamBinding{"article": {Type: "entity:article"}}, r.Options.Parameters)

	param, ok := r.RecordParameter()
	require.True(t, ok)
	assert.Equal(t, "article", param)
}

func TestRoute_RecordParameter_RoundTrip(t *testing.T) {
	d := NewDeriver(slog.Default())
	reg, err := entity.NewRegistry(
		typeWith("node", map[string]string{entity.LinkVersionHistory: "/node/{node}/revisions"}),
		typeWith("media", map[string]string{entity.LinkVersionHistory: "/media/{media}/history"}),
	)
	require.NoError(t, err)

	mux := chi.NewRouter()
	for _, route := range d.DeriveAll(reg) {
		param, ok := route.RecordParameter()
		require.True(t, ok)
		mux.Get(route.Path, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(route.Options.EntityTypeID + "=" + chi.URLParam(r, param)))
		})
	}

	tests := []struct {
		path string
		want string
	}{
		{path: "/node/12/revisions", want: "node=12"},
		{path: "/media/7/history", want: "media=7"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRoute_RecordParameter_Mismatch(t *testing.T) {
	tests := []struct {
		name  string
		route Route
	}{
		{name: "no option", route: Route{}},
		{
			name:  "option without binding",
			route: Route{Options: Options{EntityTypeID: "node"}},
		},
		{
			name: "binding loads a revision",
			route: Route{Options: Options{
				EntityTypeID: "node",
				Parameters:   map[string]ParamBinding{"node": {Type: "entity_revision:node"}},
			}},
		},
		{
			name: "binding for another type",
			route: Route{Options: Options{
				EntityTypeID: "node",
				Parameters:   map[string]ParamBinding{"node": {Type: "entity:media"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.route.RecordParameter()
			assert.False(t, ok)
		})
	}
}

func TestDeriver_DeriveAll_Order(t *testing.T) {
	d := NewDeriver(slog.Default())
	reg, err := entity.NewRegistry(
		typeWith("node", map[string]string{
			entity.LinkRevision:       "/node/{node}/revisions/{node_revision}/view",
			entity.LinkVersionHistory: "/node/{node}/revisions",
		}),
		typeWith("block", nil),
		typeWith("media", map[string]string{entity.LinkVersionHistory: "/media/{media}/history"}),
	)
	require.NoError(t, err)

	routes := d.DeriveAll(reg)

	names := make([]string, 0, len(routes))
	for _, r := range routes {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"entity.node.revision",
		"entity.node.version_history",
		"entity.media.version_history",
	}, names)
}
