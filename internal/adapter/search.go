package adapter

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/shiva/flightlog/internal/extract"
	"github.com/shiva/flightlog/internal/model"
)

const searchBaseURL = "https://serpapi.com"

// Search asks a web-search JSON API about the flight and runs the extractor
// over the answer box and organic result snippets. It is the metered source.
type Search struct {
	client
	apiKey string
}

// NewSearch creates the adapter.
func NewSearch(apiKey string, opts ...Option) *Search {
	return &Search{client: newClient(searchBaseURL, opts), apiKey: apiKey}
}

func (s *Search) Name() string { return "search" }

type searchResponse struct {
	Error     string `json:"error"`
	AnswerBox *struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Answer  string `json:"answer"`
	} `json:"answer_box"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Fetch searches for "<fn> flight status <date>".
func (s *Search) Fetch(ctx context.Context, flightNumber, date string) (*model.PartialFlightRecord, error) {
	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", flightNumber+" flight status "+date)
	q.Set("api_key", s.apiKey)

	var resp searchResponse
	if err := getJSON(ctx, s.hc, s.Name(), s.baseURL+"/search.json?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		// The API reports "no results" as an error string.
		if strings.Contains(strings.ToLower(resp.Error), "hasn't returned any results") {
			return nil, ErrNoData
		}
		return nil, transportErr(s.Name(), 0, errors.New(resp.Error))
	}

	var blocks []string
	if ab := resp.AnswerBox; ab != nil {
		blocks = append(blocks, strings.Join([]string{ab.Title, ab.Answer, ab.Snippet}, " "))
	}
	for _, r := range resp.OrganicResults {
		blocks = append(blocks, r.Title+" "+r.Snippet)
	}
	if len(blocks) == 0 {
		return nil, ErrNoData
	}

	return recordFromText(s.Name(), date, blocks)
}

// recordFromText extracts each block on its own and keeps the first with a
// validated route; without one the joined text gets a final pass.
func recordFromText(source, date string, blocks []string) (*model.PartialFlightRecord, error) {
	for _, b := range blocks {
		if res := extract.Extract(b); res.HasRoute() {
			return res.Partial(source, date), nil
		}
	}
	if res := extract.Extract(strings.Join(blocks, "\n")); res.HasRoute() {
		return res.Partial(source, date), nil
	}
	return nil, ErrNoData
}
