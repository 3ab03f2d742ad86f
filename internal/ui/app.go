package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/route"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

// AppOptions wires the storefront together.
type AppOptions struct {
	Name        string
	Searcher    catalog.Searcher
	Index       *catalog.Index
	AssetBase   string
	Timeout     time.Duration
	Placeholder string
	PanelMargin int
	Labels      suggest.Labels
	Styles      Styles
	Log         logr.Logger
}

// NewApp builds the root model with the home page at the bottom of the
// stack and a maker for the results and detail routes.
func NewApp(opts AppOptions) *RootModel {
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	if opts.Index == nil {
		opts.Index = catalog.NewIndex(catalog.DefaultIndexSize)
	}
	if opts.Name == "" {
		opts.Name = "shelf"
	}
	labels := opts.Labels
	styles := opts.Styles.Suggest
	search := suggest.New(opts.Searcher, suggest.Options{
		Placeholder: opts.Placeholder,
		AssetBase:   opts.AssetBase,
		PanelMargin: opts.PanelMargin,
		Timeout:     opts.Timeout,
		Labels:      &labels,
		Styles:      &styles,
		Log:         opts.Log.WithName("suggest"),
		Index:       opts.Index,
	})
	home := NewHomePage(search, opts.Styles, opts.Name)
	return NewRootModel(home, pageMaker(opts), opts.Log.WithName("router"))
}

func pageMaker(opts AppOptions) Maker {
	return MakerFunc(func(r route.Route, _, _ int) (ChildModel, tea.Cmd) {
		switch r.Kind {
		case route.Detail:
			return NewDetailPage(r.BookID, opts.Index, opts.AssetBase, opts.Labels.Currency, opts.Styles), nil
		default:
			return NewResultsPage(r.Query, opts.Searcher, opts.Index, opts.Timeout, opts.Labels.Currency, opts.Styles, opts.Log.WithName("results")), nil
		}
	})
}
