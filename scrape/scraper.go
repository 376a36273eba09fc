// Package scrape extracts race startlists from the source site's HTML.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/padraicbc/classicsapi/namematch"
)

// Mention is one rider row as scraped from a startlist page, not yet matched
// to a persisted identity. Name is already normalized so downstream lookups
// compare like with like. Dorsal and PcsID are nil when the page omits them.
type Mention struct {
	Name   string
	Team   string
	Dorsal *int
	PcsID  *string
}

// FetchError reports a failed startlist page fetch: either a transport error
// or a non-2xx status. Fatal to the single race, never to the whole run.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Names shorter than this are markup noise, not riders.
const minNameLen = 3

// Scraper pulls race startlists from the source site, identifying itself via
// a configurable User-Agent.
type Scraper struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

// New returns a Scraper with a 30s request timeout.
func New(userAgent string, log *zap.Logger) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: userAgent,
		log:       log,
	}
}

// FetchStartlist GETs the startlist page and extracts one Mention per rider
// row. A parseable page with no recognizable team groups yields an empty
// slice, not an error: an empty startlist is a valid observation.
func (s *Scraper) FetchStartlist(ctx context.Context, url string) ([]Mention, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &FetchError{URL: url, Status: res.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse startlist %s: %w", url, err)
	}

	mentions := s.extract(doc)
	s.log.Info("scraped startlist", zap.String("url", url), zap.Int("riders", len(mentions)))
	return mentions, nil
}

// extract walks the page's nesting: ul.startlist_v4 > li team groups, each
// holding div.ridersCont > ul > li rider rows. Missing pieces are repaired
// rather than failing the page: a group without a team link gets "Unknown",
// and rider rows are recovered even when the inner ul wrapper is absent.
// In that case the HTML parser re-parents the bare row <li>s out of their
// group into sibling top-level items, so any top-level item without a
// .ridersCont is read as a rider row under the preceding group's team.
func (s *Scraper) extract(doc *goquery.Document) []Mention {
	mentions := []Mention{}
	team := "Unknown"

	doc.Find("ul.startlist_v4 > li").Each(func(_ int, item *goquery.Selection) {
		cont := item.Find(".ridersCont")
		if cont.Length() == 0 {
			if m, ok := s.mention(item, team); ok {
				mentions = append(mentions, m)
			}
			return
		}

		if t := strings.TrimSpace(cont.Find("a.team").First().Text()); t != "" {
			team = t
		} else {
			team = "Unknown"
		}

		rows := cont.Find("ul > li")
		if rows.Length() == 0 {
			rows = cont.Find("li")
		}
		rows.Each(func(_ int, row *goquery.Selection) {
			if m, ok := s.mention(row, team); ok {
				mentions = append(mentions, m)
			}
		})
	})

	return mentions
}

// mention reads a single rider row. Rows without a rider link, or whose link
// text is too short to be a name, are dropped.
func (s *Scraper) mention(row *goquery.Selection, team string) (Mention, bool) {
	link := row.Find(`a[href*="rider/"]`).First()
	name := strings.TrimSpace(link.Text())
	if len([]rune(name)) < minNameLen {
		return Mention{}, false
	}

	m := Mention{
		Name: namematch.Normalize(name),
		Team: team,
	}
	if n, ok := parseDorsal(row.Find(".bib").Text()); ok {
		m.Dorsal = &n
	}
	if href, exists := link.Attr("href"); exists {
		if id := pcsIDFromHref(href); id != "" {
			m.PcsID = &id
		}
	}
	return m, true
}

// parseDorsal reads a bib number. Placeholder glyphs like "-" and anything
// else non-numeric mean the rider has no dorsal yet.
func parseDorsal(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}

// pcsIDFromHref turns a rider link target like "rider/tadej-pogacar?season=2026"
// into the bare external id "tadej-pogacar".
func pcsIDFromHref(href string) string {
	id := href
	if i := strings.LastIndex(id, "rider/"); i >= 0 {
		id = id[i+len("rider/"):]
	}
	id, _, _ = strings.Cut(id, "?")
	return id
}
