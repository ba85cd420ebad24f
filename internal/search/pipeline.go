package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/dexsearch/internal/catalog"
	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"golang.org/x/sync/errgroup"
)

// Status is the state of one search as seen by the presentation layer
type Status int

const (
	StatusIdle Status = iota
	StatusNoQuery
	StatusSearching
	StatusSuccess
	StatusEmpty
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:      "idle",
	StatusNoQuery:   "no-query",
	StatusSearching: "searching",
	StatusSuccess:   "success",
	StatusEmpty:     "empty",
	StatusError:     "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets the status appear by name in JSON and YAML
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Fetcher resolves one name to its detail record
type Fetcher interface {
	FetchPokemon(ctx context.Context, name string) (models.Pokemon, error)
}

// Outcome is the terminal result of one search
type Outcome struct {
	ID      string           `json:"id" yaml:"id"`
	Query   string           `json:"query" yaml:"query"`
	Status  Status           `json:"status" yaml:"status"`
	Matched []string         `json:"matched,omitempty" yaml:"matched,omitempty"`
	Results []models.Pokemon `json:"results,omitempty" yaml:"results,omitempty"`
	Err     error            `json:"-" yaml:"-"`
}

// ErrorText returns the failure text, empty unless Status is StatusError
func (o Outcome) ErrorText() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Pipeline filters a catalog index and fetches details for every match
type Pipeline struct {
	index          *catalog.Index
	fetcher        Fetcher
	maxConcurrency int
}

// NewPipeline creates a pipeline. maxConcurrency <= 0 means unbounded fan-out.
func NewPipeline(index *catalog.Index, fetcher Fetcher, maxConcurrency int) *Pipeline {
	return &Pipeline{
		index:          index,
		fetcher:        fetcher,
		maxConcurrency: maxConcurrency,
	}
}

// Search runs one search. The query is lower-cased but not trimmed.
// Either every detail fetch succeeds or the outcome is StatusError with no results.
func (p *Pipeline) Search(ctx context.Context, query string) Outcome {
	out := Outcome{
		ID:    uuid.NewString(),
		Query: query,
	}

	if len(query) == 0 {
		out.Status = StatusNoQuery
		return out
	}

	matched := p.index.Filter(query)
	out.Matched = matched
	slog.Debug("Filtered catalog", "search_id", out.ID, "query", query, "matched", len(matched))

	if len(matched) == 0 {
		out.Status = StatusEmpty
		return out
	}

	start := time.Now()
	results, err := p.fetchAll(ctx, matched)
	if err != nil {
		slog.Error("Search failed", "search_id", out.ID, "query", query, "err", err)
		out.Status = StatusError
		out.Err = err
		return out
	}

	slog.Info("Search completed", "search_id", out.ID, "query", query, "results", len(results), "duration", time.Since(start))
	out.Status = StatusSuccess
	out.Results = results
	return out
}

// fetchAll resolves every name concurrently. A failure does not cancel the
// other fetches; the first error is returned after all of them settle.
func (p *Pipeline) fetchAll(ctx context.Context, names []string) ([]models.Pokemon, error) {
	var g errgroup.Group
	if p.maxConcurrency > 0 {
		g.SetLimit(p.maxConcurrency)
	}

	results := make([]models.Pokemon, len(names))
	for i, name := range names {
		g.Go(func() error {
			pokemon, err := p.fetcher.FetchPokemon(ctx, name)
			if err != nil {
				return err
			}
			results[i] = pokemon
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
