// Package catalog is the read-only exercise library: search with "load
// more" paging, facets, and templates for pre-filling workout exercises.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workout/draft"

	"go.uber.org/multierr"
)

var ErrInvalidCatalog = errors.New("invalid exercise catalog")

type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Force            string   `json:"force,omitempty"`
	Level            string   `json:"level"`
	Mechanic         string   `json:"mechanic,omitempty"`
	Equipment        string   `json:"equipment,omitempty"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Category         string   `json:"category"`
	Images           []string `json:"images"`
}

func (e Exercise) Template() draft.ExerciseTemplate {
	return draft.ExerciseTemplate{
		CatalogID:        e.ID,
		Name:             e.Name,
		Equipment:        e.Equipment,
		Level:            e.Level,
		Force:            e.Force,
		Mechanic:         e.Mechanic,
		Category:         e.Category,
		PrimaryMuscles:   e.PrimaryMuscles,
		SecondaryMuscles: e.SecondaryMuscles,
		Instructions:     e.Instructions,
		Images:           e.Images,
	}
}

// searchText is everything a query term may match, lower cased.
func (e Exercise) searchText() string {
	parts := []string{e.Name, e.Equipment, e.Level, e.Mechanic, e.Force, e.Category}
	parts = append(parts, e.PrimaryMuscles...)
	parts = append(parts, e.SecondaryMuscles...)
	parts = append(parts, e.Instructions...)
	return strings.ToLower(strings.Join(parts, " "))
}

func (e Exercise) hasMuscle(muscle string) bool {
	for _, m := range e.PrimaryMuscles {
		if strings.EqualFold(m, muscle) {
			return true
		}
	}
	for _, m := range e.SecondaryMuscles {
		if strings.EqualFold(m, muscle) {
			return true
		}
	}
	return false
}

func decode(r io.Reader) ([]Exercise, error) {
	var exercises []Exercise
	if err := json.NewDecoder(r).Decode(&exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	return exercises, nil
}

// LoadFile reads the catalog from a JSON file holding an array of exercises.
func LoadFile(path string) ([]Exercise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return decode(f)
}

// Download fetches the catalog JSON from url.
func Download(ctx context.Context, httpClient *http.Client, url string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.download")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download catalog: unexpected status %d", resp.StatusCode)
	}
	return decode(resp.Body)
}

// validate reports every broken entry, not only the first one.
func validate(exercises []Exercise) error {
	var err error
	seen := make(map[string]bool, len(exercises))
	for i, e := range exercises {
		if e.ID == "" {
			err = multierr.Append(err, fmt.Errorf("%w: exercise #%d has no id", ErrInvalidCatalog, i))
			continue
		}
		if seen[e.ID] {
			err = multierr.Append(err, fmt.Errorf("%w: duplicate id %s", ErrInvalidCatalog, e.ID))
		}
		seen[e.ID] = true
		if strings.TrimSpace(e.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: exercise %s has no name", ErrInvalidCatalog, e.ID))
		}
	}
	return err
}
