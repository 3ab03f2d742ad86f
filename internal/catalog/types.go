// Package catalog talks to the bookstore HTTP API.
package catalog

import (
	"context"
	"strings"
)

// Author is the nested author object of a search hit.
type Author struct {
	Name string `json:"name" yaml:"name" toml:"name"`
}

// Book is one hit returned by the search endpoint. Values are treated as
// immutable once decoded.
type Book struct {
	ID             int     `json:"id" yaml:"id" toml:"id"`
	Title          string  `json:"title" yaml:"title" toml:"title"`
	Author         Author  `json:"author" yaml:"author" toml:"author"`
	Price          float64 `json:"price" yaml:"price" toml:"price"`
	CoverImagePath string  `json:"cover_image_path" yaml:"cover_image_path" toml:"cover_image_path"`
}

// Searcher runs a free-text lookup against the catalog. Implementations
// must be safe to call from multiple goroutines.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Book, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) ([]Book, error)

// Search implements Searcher.
func (f SearcherFunc) Search(ctx context.Context, query string) ([]Book, error) {
	return f(ctx, query)
}

// CoverURL resolves a cover image path against the asset base.
func CoverURL(assetBase, coverPath string) string {
	coverPath = strings.TrimLeft(coverPath, "/")
	if coverPath == "" {
		return ""
	}
	base := strings.TrimRight(assetBase, "/")
	if base == "" {
		return coverPath
	}
	return base + "/" + coverPath
}
