package wikipedia

import (
	"encoding/json"
	"strings"
)

// MediaWiki action API responses, formatversion=2.

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type envelope struct {
	Error    *apiError                  `json:"error,omitempty"`
	Continue map[string]json.RawMessage `json:"continue,omitempty"`
}

type searchResponse struct {
	envelope
	Query struct {
		Search []struct {
			NS    int    `json:"ns"`
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type infoResponse struct {
	envelope
	Query struct {
		Redirects []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"redirects"`
		Pages []struct {
			NS        int    `json:"ns"`
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Length    int    `json:"length"`
			Langlinks []struct {
				Lang  string `json:"lang"`
				Title string `json:"title"`
			} `json:"langlinks"`
		} `json:"pages"`
	} `json:"query"`
}

type backlinksResponse struct {
	envelope
	Query struct {
		Backlinks []struct {
			NS    int    `json:"ns"`
			Title string `json:"title"`
		} `json:"backlinks"`
	} `json:"query"`
}

func (e envelope) apiErr() *apiError { return e.Error }

// next returns the continuation parameters. Values may be strings or
// numbers (e.g. sroffset); numbers are passed through verbatim.
func (e envelope) next() map[string]string {
	if len(e.Continue) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Continue))
	for k, raw := range e.Continue {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out[k] = s
			continue
		}
		out[k] = strings.TrimSpace(string(raw))
	}
	return out
}

type response interface {
	apiErr() *apiError
	next() map[string]string
}
