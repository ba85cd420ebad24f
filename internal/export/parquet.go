package export

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/parquet-go/parquet-go"
)

// PokemonRow is the flattened Parquet row of one detail record.
// Stat columns are parallel lists in API order.
type PokemonRow struct {
	ID          int64    `parquet:"id"`
	Name        string   `parquet:"name"`
	Height      int64    `parquet:"height"`
	Weight      int64    `parquet:"weight"`
	Thumbnail   string   `parquet:"thumbnail"`
	Types       []string `parquet:"types,list"`
	StatNames   []string `parquet:"stat_names,list"`
	BaseStats   []int64  `parquet:"base_stats,list"`
	EffortStats []int64  `parquet:"effort_stats,list"`
}

// RowFor flattens one record; types are ordered by slot as received
func RowFor(p models.Pokemon) PokemonRow {
	row := PokemonRow{
		ID:        int64(p.ID),
		Name:      p.Name,
		Height:    int64(p.Height),
		Weight:    int64(p.Weight),
		Thumbnail: p.Thumbnail(),
	}
	for _, t := range p.Types {
		row.Types = append(row.Types, t.Type.Name)
	}
	for _, s := range p.Stats {
		row.StatNames = append(row.StatNames, s.Stat.Name)
		row.BaseStats = append(row.BaseStats, int64(s.BaseStat))
		row.EffortStats = append(row.EffortStats, int64(s.Effort))
	}
	return row
}

// WriteParquetFile writes one row per record
func WriteParquetFile(path string, results []models.Pokemon) error {
	rows := make([]PokemonRow, 0, len(results))
	for _, p := range results {
		rows = append(rows, RowFor(p))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[PokemonRow](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Debug("Wrote parquet export", "path", path, "rows", len(rows))

	return file.Close()
}

// ReadParquetFile reads rows written by WriteParquetFile
func ReadParquetFile(path string) ([]PokemonRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[PokemonRow](pf)
	defer reader.Close()

	rows := make([]PokemonRow, pf.NumRows())
	n, err := reader.Read(rows)
	if n == len(rows) {
		return rows, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}
