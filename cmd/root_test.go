package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/x/ansi"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/config"
)

const catalogJSON = `[
 {"id": 1, "title": "The Hobbit", "author": {"name": "J.R.R. Tolkien"}, "price": 1200, "cover_image_path": "hobbit.jpg"},
 {"id": 2, "title": "The Silmarillion", "author": {"name": "J.R.R. Tolkien"}, "price": 800, "cover_image_path": ""},
 {"id": 3, "title": "The Children of Húrin", "author": {"name": "J.R.R. Tolkien"}, "price": 950.5, "cover_image_path": "hurin.jpg"},
 {"id": 4, "title": "The Fall of Gondolin", "author": {"name": "J.R.R. Tolkien"}, "price": 1100, "cover_image_path": ""},
 {"id": 5, "title": "The Lord of the Rings", "author": {"name": "J.R.R. Tolkien"}, "price": 3500, "cover_image_path": ""},
 {"id": 6, "title": "The Book of Lost Tales", "author": {"name": "J.R.R. Tolkien"}, "price": 1400, "cover_image_path": ""},
 {"id": 7, "title": "Foo", "author": {"name": "Bar"}, "price": 500, "cover_image_path": "x.jpg"}
]`

// fakeAPI serves the books of catalogJSON whose title or author contains
// the query, fails for "boom", and counts requests.
type fakeAPI struct {
	*httptest.Server
	hits    atomic.Int32
	queries chan string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	var all []catalog.Book
	require.NoError(t, json.Unmarshal([]byte(catalogJSON), &all))
	api := &fakeAPI{queries: make(chan string, 16)}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.hits.Add(1)
		assert.Equal(t, catalog.SearchPath, r.URL.Path)
		q := r.URL.Query().Get("query")
		api.queries <- q
		if q == "boom" {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		hits := []catalog.Book{}
		for _, b := range all {
			if containsFold(b.Title, q) || containsFold(b.Author.Name, q) {
				hits = append(hits, b)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(hits))
	}))
	t.Cleanup(api.Close)
	return api
}

// run executes the CLI with an isolated config dir and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchTable(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "search", "tolkien", "--api-url", api.URL, "--no-color", "--width", "100")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	require.Regexp(t, `^ID\s+TITLE\s+AUTHOR\s+PRICE$`, lines[0])
	require.Contains(t, lines[1], "The Hobbit")
	require.True(t, strings.HasSuffix(lines[1], "1200 RSD"), lines[1])
	require.Contains(t, lines[3], "950.5 RSD")
	require.Equal(t, "tolkien", <-api.queries)
}

func TestSearchTableTruncatesTitles(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "search", "the", "--api-url", api.URL, "--no-color", "--width", "40")
	require.NoError(t, err)
	require.Contains(t, out, "…")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 40, line)
	}
}

func TestSearchJoinsArgsIntoOneQuery(t *testing.T) {
	api := newFakeAPI(t)
	_, err := run(t, "search", "rat", "i", "mir", "--api-url", api.URL, "-o", "json")
	require.NoError(t, err)
	require.Equal(t, "rat i mir", <-api.queries)
}

func TestSearchWhereAndLimitJSON(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "search", "the", "--api-url", api.URL, "--asset-url", "http://cdn.test/",
		"--where", `price < 1200.0 && author.contains("Tolkien")`, "--limit", "2", "-o", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	require.Equal(t, "The Silmarillion", got[0]["title"])
	require.Equal(t, "The Children of Húrin", got[1]["title"])
	require.Equal(t, "http://cdn.test/hurin.jpg", got[1]["cover"])
	require.Equal(t, "RSD", got[1]["currency"])
}

func TestSearchOffsetAndTail(t *testing.T) {
	api := newFakeAPI(t)
	titles := func(out string) []string {
		var got []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		var ts []string
		for _, b := range got {
			ts = append(ts, b["title"].(string))
		}
		return ts
	}

	out, err := run(t, "search", "tolkien", "--api-url", api.URL, "--offset", "2", "--limit", "2", "-o", "json")
	require.NoError(t, err)
	require.Equal(t, []string{"The Children of Húrin", "The Fall of Gondolin"}, titles(out))

	out, err = run(t, "search", "tolkien", "--api-url", api.URL, "--tail", "1", "-o", "json")
	require.NoError(t, err)
	require.Equal(t, []string{"The Book of Lost Tales"}, titles(out))

	_, err = run(t, "search", "tolkien", "--api-url", api.URL, "--tail", "1", "--limit", "1")
	require.ErrorContains(t, err, "mutually exclusive")
}

func TestSearchYAMLAndTOML(t *testing.T) {
	api := newFakeAPI(t)

	out, err := run(t, "search", "foo", "--api-url", api.URL, "-o", "yaml", "--where", "id == 7")
	require.NoError(t, err)
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	require.Len(t, fromYAML, 1)
	require.Equal(t, "Bar", fromYAML[0]["author"])

	out, err = run(t, "search", "foo", "--api-url", api.URL, "-o", "toml", "--where", "id == 7")
	require.NoError(t, err)
	var fromTOML struct {
		Books []map[string]any `toml:"books"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &fromTOML))
	require.Len(t, fromTOML.Books, 1)
	require.Equal(t, "Foo", fromTOML.Books[0]["title"])
}

func TestSearchErrors(t *testing.T) {
	api := newFakeAPI(t)

	_, err := run(t, "search", "boom", "--api-url", api.URL)
	require.Error(t, err)
	require.True(t, catalog.IsLookupError(err))
	require.ErrorIs(t, err, catalog.ErrUnexpectedStatus)

	_, err = run(t, "search", "x", "--api-url", api.URL, "-o", "xml")
	require.ErrorContains(t, err, "invalid output")

	_, err = run(t, "search", "x", "--api-url", api.URL, "--where", "price <")
	require.ErrorContains(t, err, "--where")

	_, err = run(t, "search", "x", "--api-url", api.URL, "--limit", "-1")
	require.ErrorContains(t, err, "--limit")

	_, err = run(t, "search", "x", "--api-url", "ftp://nope")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "search")
	require.Error(t, err)
}

func TestSuggestBelowThresholdNeverCallsAPI(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "suggest", "ab", "--api-url", api.URL)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Zero(t, api.hits.Load())
}

func TestSuggestCapsToFive(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "suggest", "the", "--api-url", api.URL, "-o", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 5)
	require.Equal(t, "The Hobbit", got[0]["title"])
	require.Equal(t, "The Lord of the Rings", got[4]["title"])
}

func TestConfigGetAppliesFlags(t *testing.T) {
	out, err := run(t, "config", "get", "-o", "json", "--api-url", "https://books.example.com", "--theme", "light")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	require.Equal(t, "https://books.example.com", cfg["api"].(map[string]any)["base_url"])
	require.Equal(t, "light", cfg["ui"].(map[string]any)["theme"])
}

func TestConfigGetFormats(t *testing.T) {
	out, err := run(t, "config", "get")
	require.NoError(t, err)
	require.Contains(t, out, "panel_margin: 2")

	out, err = run(t, "config", "get", "-o", "toml")
	require.NoError(t, err)
	require.Contains(t, out, "[search]")

	_, err = run(t, "config", "get", "-o", "ini")
	require.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestConfigFileIsUsed(t *testing.T) {
	path := t.TempDir() + "/shelf.yaml"
	require.NoError(t, writeFile(path, "search:\n  currency: EUR\n"))
	out, err := run(t, "config", "get", "--config-file", path)
	require.NoError(t, err)
	require.Contains(t, out, "currency: EUR")
}

func TestConfigThemes(t *testing.T) {
	out, err := run(t, "config", "themes")
	require.NoError(t, err)
	require.Contains(t, out, "selected: dark")
	require.Contains(t, out, " - light\n")
	require.Contains(t, out, " - mono\n")

	_, err = run(t, "config", "themes", "--theme", "neon")
	var te *config.ThemeError
	require.True(t, errors.As(err, &te))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "shelf "))

	out, err = run(t, "--version")
	require.NoError(t, err)
	require.Equal(t, versionString()+"\n", out)
}

func TestSnapshotRendersSuggestions(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "--snapshot", "--query", "foo", "--width", "80", "--height", "16",
		"--api-url", api.URL, "--asset-url", "http://cdn.test", "--no-color")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Foo")
	require.Contains(t, plain, "Bar - 500 RSD")
	require.Contains(t, plain, "http://cdn.test/x.jpg")
	require.Contains(t, plain, "View all results")
	require.Equal(t, "foo", <-api.queries)
}

func TestSnapshotShortQueryDoesNotFetch(t *testing.T) {
	api := newFakeAPI(t)
	out, err := run(t, "--snapshot", "--query", "fo", "--width", "80", "--height", "16", "--api-url", api.URL)
	require.NoError(t, err)
	require.NotContains(t, ansi.Strip(out), "╭")
	require.Zero(t, api.hits.Load())
}
