package wikipedia

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wiki-resolver-go/internal/config"
	"wiki-resolver-go/internal/logger"
)

type fakePage struct {
	ns         int
	length     int
	langlinks  int
	backlinks  int
	redirectTo string
	missing    bool
}

// fakeWiki answers the handful of MediaWiki queries the client issues.
type fakeWiki struct {
	search   map[string][]string
	pages    map[string]fakePage
	pageSize int

	failFirst int32 // answer the first n requests with a 500
	hits      int32

	mu         sync.Mutex
	userAgents []string
}

func (f *fakeWiki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := atomic.AddInt32(&f.hits, 1)
	f.mu.Lock()
	f.userAgents = append(f.userAgents, r.UserAgent())
	f.mu.Unlock()

	if n <= f.failFirst {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("list") == "search":
		hits := []map[string]any{}
		for _, t := range f.search[q.Get("srsearch")] {
			hits = append(hits, map[string]any{"ns": 0, "title": t})
		}
		writeJSON(w, map[string]any{"batchcomplete": true, "query": map[string]any{"search": hits}})

	case q.Get("list") == "backlinks":
		p := f.pages[q.Get("bltitle")]
		items, next := f.window(p.backlinks, q.Get("blcontinue"))
		links := make([]map[string]any, items)
		for i := range links {
			links[i] = map[string]any{"ns": 0, "title": "Linker " + strconv.Itoa(i)}
		}
		body := map[string]any{"query": map[string]any{"backlinks": links}}
		if next != "" {
			body["continue"] = map[string]string{"blcontinue": next, "continue": "-||"}
		}
		writeJSON(w, body)

	case q.Get("prop") == "info|langlinks":
		title := q.Get("titles")
		query := map[string]any{}
		p, ok := f.pages[title]
		if ok && p.redirectTo != "" {
			query["redirects"] = []map[string]string{{"from": title, "to": p.redirectTo}}
			title = p.redirectTo
			p, ok = f.pages[title]
		}
		if !ok || p.missing {
			query["pages"] = []map[string]any{{"ns": 0, "title": title, "missing": true}}
			writeJSON(w, map[string]any{"query": query})
			return
		}
		items, next := f.window(p.langlinks, q.Get("llcontinue"))
		langs := make([]map[string]string, items)
		for i := range langs {
			langs[i] = map[string]string{"lang": "l" + strconv.Itoa(i), "title": title}
		}
		query["pages"] = []map[string]any{{
			"pageid": 1, "ns": p.ns, "title": title, "length": p.length, "langlinks": langs,
		}}
		body := map[string]any{"query": query}
		if next != "" {
			body["continue"] = map[string]string{"llcontinue": next, "continue": "||"}
		}
		writeJSON(w, body)

	default:
		writeJSON(w, map[string]any{"error": map[string]string{"code": "badquery", "info": "unsupported"}})
	}
}

// window returns how many items to emit for this page and the next token.
func (f *fakeWiki) window(total int, token string) (int, string) {
	offset, _ := strconv.Atoi(token)
	size := f.pageSize
	if size <= 0 {
		size = total
	}
	n := total - offset
	if n > size {
		n = size
	}
	if n < 0 {
		n = 0
	}
	if offset+n < total {
		return n, strconv.Itoa(offset + n)
	}
	return n, ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(baseURL string) config.WikipediaConfig {
	return config.WikipediaConfig{
		BaseURL:     baseURL,
		UserAgent:   "wiki-resolver-test",
		MaxResults:  5,
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		MinBackoff:  time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	}
}

func startFake(t *testing.T, f *fakeWiki) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv, New(testConfig(srv.URL), nil, logger.Discard().Entry)
}

func pythonWiki() *fakeWiki {
	return &fakeWiki{
		search: map[string][]string{
			"python": {"Python (programming language)", "Python", "Pythonidae", "Ghost page"},
			"snake":  {"Talk:Snake"},
		},
		pages: map[string]fakePage{
			"Python (programming language)": {ns: 0, length: 90000, langlinks: 7, backlinks: 12},
			"Python":                        {redirectTo: "Python (programming language)"},
			"Pythonidae":                    {ns: 0, length: 3000, langlinks: 2, backlinks: 3},
			"Ghost page":                    {missing: true},
			"Talk:Snake":                    {ns: 1, length: 40, langlinks: 0, backlinks: 1},
		},
		pageSize: 5,
	}
}
