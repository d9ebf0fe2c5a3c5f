package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dtxcli/internal/analytics"
	"dtxcli/internal/dataset"
	"dtxcli/pkg/contracts/domain"
)

// EntitySummary is one exported row: an entity's mean index across all
// years plus its latest observation.
type EntitySummary struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	MeanIndex   float64 `json:"mean_index"`
	LatestYear  int     `json:"latest_year"`
	LatestIndex float64 `json:"latest_index"`
	Years       int     `json:"years"`
}

// SummaryGenerator exports per-entity summaries from a loaded dataset.
type SummaryGenerator struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewSummaryGenerator creates a new summary generator.
func NewSummaryGenerator(logger *slog.Logger) *SummaryGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryGenerator{
		csvWriter: NewCSVWriter(logger),
		logger:    logger.With(slog.String("component", "summary_generator")),
	}
}

// BuildSummaries computes one summary per entity, ordered by descending
// mean index (the same ordering as the dashboard rankings).
func (g *SummaryGenerator) BuildSummaries(ds *dataset.Dataset) []EntitySummary {
	ranked := analytics.TopEntities(ds.Rows(), ds.Name, 0)

	summaries := make([]EntitySummary, len(ranked))
	for i, entity := range ranked {
		history := ds.EntityHistory(entity.Code)
		latest := history[len(history)-1]
		summaries[i] = EntitySummary{
			Code:        entity.Code,
			Name:        entity.Name,
			MeanIndex:   entity.MeanIndex,
			LatestYear:  latest.Year,
			LatestIndex: latest.Index,
			Years:       entity.Years,
		}
	}
	return summaries
}

// WriteCSV writes the entity summaries as CSV, and a sibling JSON file for
// the web frontend.
func (g *SummaryGenerator) WriteCSV(path string, summaries []EntitySummary) error {
	records := make([][]string, len(summaries))
	for i, s := range summaries {
		records[i] = []string{
			s.Code,
			s.Name,
			formatFloat(s.MeanIndex),
			formatInt(s.LatestYear),
			formatFloat(s.LatestIndex),
			formatInt(s.Years),
		}
	}

	headers := []string{"Code", "Name", "MeanIndex", "LatestYear", "LatestIndex", "Years"}
	if err := g.csvWriter.WriteSimpleCSV(path, headers, records); err != nil {
		return err
	}

	jsonPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	return g.writeJSON(jsonPath, summaries)
}

// writeJSON writes the summaries with metadata for the web frontend.
func (g *SummaryGenerator) writeJSON(path string, summaries []EntitySummary) error {
	g.logger.Info("writing entity summary JSON",
		slog.String("path", path),
		slog.Int("entity_count", len(summaries)))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	payload := map[string]interface{}{
		"entities":     summaries,
		"count":        len(summaries),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportYearlyMeans writes the per-year mean series as CSV, including the
// year-over-year change column (blank for the first year).
func (g *SummaryGenerator) ExportYearlyMeans(path string, rows []domain.Observation) error {
	changes := analytics.ChangeRates(rows)
	records := make([][]string, len(changes))
	for i, point := range changes {
		change := ""
		if point.ChangePct != nil {
			change = formatFloat(*point.ChangePct)
		}
		records[i] = []string{
			formatInt(point.Year),
			formatFloat(point.MeanIndex),
			change,
		}
	}
	return g.csvWriter.WriteSimpleCSV(path, []string{"Year", "MeanIndex", "ChangePct"}, records)
}
