package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

const defaultFallbackTermWidth = 120

// bookOutput controls how a book list is printed.
type bookOutput struct {
	Format    string
	Width     int
	NoColor   bool
	AssetBase string
	Currency  string
}

// bookRecord is the serialized form of a book, with the cover resolved.
type bookRecord struct {
	ID       int     `json:"id" yaml:"id" toml:"id"`
	Title    string  `json:"title" yaml:"title" toml:"title"`
	Author   string  `json:"author" yaml:"author" toml:"author"`
	Price    float64 `json:"price" yaml:"price" toml:"price"`
	Currency string  `json:"currency" yaml:"currency" toml:"currency"`
	Cover    string  `json:"cover,omitempty" yaml:"cover,omitempty" toml:"cover,omitempty"`
}

func records(books []catalog.Book, assetBase, currency string) []bookRecord {
	out := make([]bookRecord, 0, len(books))
	for _, b := range books {
		out = append(out, bookRecord{
			ID:       b.ID,
			Title:    b.Title,
			Author:   b.Author.Name,
			Price:    b.Price,
			Currency: currency,
			Cover:    catalog.CoverURL(assetBase, b.CoverImagePath),
		})
	}
	return out
}

func validateFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "table", "yaml", "yml", "json", "toml":
		return nil
	}
	return fmt.Errorf("invalid output %q (use table|yaml|json|toml)", format)
}

// writeBooks prints books in the requested format.
func writeBooks(w io.Writer, books []catalog.Book, o bookOutput) error {
	recs := records(books, o.AssetBase, o.Currency)
	switch strings.ToLower(o.Format) {
	case "", "table":
		_, err := io.WriteString(w, renderBookTable(books, o))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case "toml":
		// TOML has no top-level arrays.
		data, err := toml.Marshal(struct {
			Books []bookRecord `toml:"books"`
		}{recs})
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return validateFormat(o.Format)
	}
}

// renderBookTable lays the books out in columns that fit width. The title
// column absorbs whatever the fixed columns leave over.
func renderBookTable(books []catalog.Book, o bookOutput) string {
	if len(books) == 0 {
		return "no books found\n"
	}
	width := o.Width
	if width <= 0 {
		width, _ = detectTerminalSize()
	}

	headers := []string{"ID", "TITLE", "AUTHOR", "PRICE"}
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author.Name,
			strings.TrimSpace(suggest.FormatPrice(b.Price) + " " + o.Currency),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	const gap = 2
	fixed := widths[0] + widths[2] + widths[3] + gap*3
	if widths[1] > width-fixed {
		widths[1] = max(width-fixed, 8)
	}

	header := lipgloss.NewStyle()
	if !o.NoColor {
		header = header.Bold(true).Underline(true)
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			c = runewidth.Truncate(c, widths[i], "…")
			pad := widths[i] - runewidth.StringWidth(c)
			if i == len(cells)-1 {
				c = strings.Repeat(" ", pad) + c
			} else {
				c += strings.Repeat(" ", pad)
			}
			if style != nil {
				c = style.Render(c)
			}
			parts[i] = c
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, strings.Repeat(" ", gap)), " "))
		b.WriteString("\n")
	}
	writeRow(headers, &header)
	for _, r := range rows {
		writeRow(r, nil)
	}
	return b.String()
}

func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}
