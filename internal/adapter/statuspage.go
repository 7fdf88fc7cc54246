package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

const (
	statusPageBaseURL = "https://www.flightstats.com/v2/flight-tracker"
	statusPageAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15"
)

// statusPageBlocks are the elements whose text is extracted one by one when
// the whole page does not yield a route.
const statusPageBlocks = "h1, h2, h3, p, li, tr, dd, [class*=route], [class*=status], [class*=airport]"

// StatusPage scrapes a public HTML flight-status page:
// {base}/{carrier}/{number}?year=&month=&date=
type StatusPage struct {
	client
}

// NewStatusPage creates the scraper.
func NewStatusPage(opts ...Option) *StatusPage {
	return &StatusPage{client: newClient(statusPageBaseURL, opts)}
}

func (s *StatusPage) Name() string { return "statuspage" }

// Fetch downloads the page for the flight and extracts a record from its text.
func (s *StatusPage) Fetch(ctx context.Context, flightNumber, date string) (*model.PartialFlightRecord, error) {
	target, err := s.pageURL(flightNumber, date)
	if err != nil {
		return nil, transportErr(s.Name(), 0, err)
	}

	c := colly.NewCollector(colly.UserAgent(statusPageAgent))
	c.WithTransport(ctxTransport{ctx: ctx, base: s.transport()})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	var (
		page   string
		blocks []string
		status int
	)
	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("script, style, noscript").Remove()
		page = collapse(e.DOM.Text())
		e.ForEach(statusPageBlocks, func(_ int, el *colly.HTMLElement) {
			if t := collapse(el.Text); t != "" {
				blocks = append(blocks, t)
			}
		})
	})
	c.OnError(func(r *colly.Response, _ error) {
		status = r.StatusCode
	})

	if err := c.Visit(target); err != nil {
		if status == http.StatusNotFound {
			return nil, ErrNoData
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, transportErr(s.Name(), status, fmt.Errorf("visiting page: %w", err))
	}
	if page == "" {
		return nil, ErrNoData
	}

	return recordFromText(s.Name(), date, append([]string{page}, blocks...))
}

func (s *StatusPage) pageURL(flightNumber, date string) (string, error) {
	fn, err := refdata.ParseFlightNumber(flightNumber)
	if err != nil {
		return "", err
	}
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return "", errors.New("bad date " + date)
	}
	q := url.Values{}
	q.Set("year", parts[0])
	q.Set("month", strings.TrimLeft(parts[1], "0"))
	q.Set("date", strings.TrimLeft(parts[2], "0"))
	return s.baseURL + "/" + fn.Carrier + "/" + fn.Number + fn.Suffix + "?" + q.Encode(), nil
}

func (s *StatusPage) transport() http.RoundTripper {
	if s.hc.Transport != nil {
		return s.hc.Transport
	}
	return http.DefaultTransport
}

// ctxTransport binds colly's requests to the caller's context so that a
// cancelled race aborts the download.
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
