// Package filter narrows search results with a CEL predicate, e.g.
// `price < 1000.0 && author.contains("Tolkien")`.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/shelf/internal/catalog"
)

// ErrNotBool is returned when a predicate does not evaluate to a bool.
var ErrNotBool = errors.New("filter must evaluate to a bool")

// Predicate is a compiled filter expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("author", cel.StringType),
		cel.Variable("price", cel.DoubleType),
		cel.Variable("cover", cel.StringType),
		cel.Variable("book", cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and type checks expr. The expression sees id, title,
// author, price and cover, plus the whole record as the book map.
func Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(types.BoolType) && !ast.OutputType().IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBool, expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Match evaluates the predicate for one book.
func (p *Predicate) Match(b catalog.Book) (bool, error) {
	out, _, err := p.prg.Eval(activation(b))
	if err != nil {
		return false, fmt.Errorf("eval error for book %d: %w", b.ID, err)
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %v", ErrNotBool, out.Type())
	}
	return v, nil
}

// Apply keeps the books that match, in order.
func (p *Predicate) Apply(books []catalog.Book) ([]catalog.Book, error) {
	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		ok, err := p.Match(b)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func activation(b catalog.Book) map[string]any {
	return map[string]any{
		"id":     int64(b.ID),
		"title":  b.Title,
		"author": b.Author.Name,
		"price":  b.Price,
		"cover":  b.CoverImagePath,
		"book": map[string]any{
			"id":               int64(b.ID),
			"title":            b.Title,
			"author":           map[string]any{"name": b.Author.Name},
			"price":            b.Price,
			"cover_image_path": b.CoverImagePath,
		},
	}
}
