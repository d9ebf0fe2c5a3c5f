package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"dtxcli/pkg/contracts/domain"
)

// ErrDataNotFound is returned when none of the candidate data files exist.
// Callers distinguish it from parse failures: absence is a user-visible
// "no data" condition, a bad file is a hard error.
var ErrDataNotFound = errors.New("data file not found")

var rowValidator = validator.New()

// Loader reads the observation spreadsheet from the first existing
// candidate path. There is no retry and no network fetch.
type Loader struct {
	paths  []string
	logger *slog.Logger
}

// NewLoader creates a loader over an ordered list of candidate file paths.
func NewLoader(paths []string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		paths:  paths,
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

// Load tries each candidate path in priority order and parses the first one
// that exists. It returns ErrDataNotFound when no candidate exists.
func (l *Loader) Load() (*Dataset, error) {
	for _, path := range l.paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		l.logger.Info("loading observation file", slog.String("path", path))
		obs, err := ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		l.logger.Info("observation file loaded",
			slog.String("path", path),
			slog.Int("rows", len(obs)))
		return New(obs), nil
	}
	return nil, ErrDataNotFound
}

// columnIndices holds the positions of the observation columns in the
// header row. -1 means the column was not found.
type columnIndices struct {
	codeCol  int
	nameCol  int
	yearCol  int
	indexCol int
}

// ParseFile reads an xlsx observation file and extracts one Observation per
// data row. The header row is located by name, accepting both the original
// Chinese column names and their English equivalents.
func ParseFile(path string) ([]domain.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var cols columnIndices
	var sheetFound bool
	for _, name := range f.GetSheetList() {
		testRows, testErr := f.GetRows(name)
		if testErr != nil || len(testRows) < 2 {
			continue
		}
		if c := findColumnIndices(testRows[0]); c.codeCol != -1 && c.yearCol != -1 && c.indexCol != -1 {
			rows = testRows
			cols = c
			sheetFound = true
			break
		}
	}
	if !sheetFound {
		return nil, fmt.Errorf("no sheet with observation columns found")
	}

	var observations []domain.Observation
	for i, row := range rows[1:] {
		obs, ok, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !ok {
			continue
		}
		if err := rowValidator.Struct(obs); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		observations = append(observations, obs)
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("no data rows found")
	}
	return observations, nil
}

// findColumnIndices maps the observation columns by header name.
func findColumnIndices(header []string) columnIndices {
	cols := columnIndices{codeCol: -1, nameCol: -1, yearCol: -1, indexCol: -1}
	for i, col := range header {
		clean := strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch clean {
		case "股票代码":
			cols.codeCol = i
		case "企业名称":
			cols.nameCol = i
		case "年份":
			cols.yearCol = i
		case "数字化转型指数":
			cols.indexCol = i
		default:
			switch strings.ToLower(clean) {
			case "code", "stock_code", "entity_code", "symbol":
				cols.codeCol = i
			case "name", "entity_name", "company_name", "company":
				cols.nameCol = i
			case "year":
				cols.yearCol = i
			case "index", "dtx_index", "index_value", "digital_transformation_index":
				cols.indexCol = i
			}
		}
	}
	return cols
}

// parseRow converts one spreadsheet row into an Observation. Blank rows are
// skipped (ok=false); rows with a code but malformed year or index values
// fail the whole load, there is no recovery policy.
func parseRow(row []string, cols columnIndices) (domain.Observation, bool, error) {
	cell := func(idx int) string {
		if idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	code := cell(cols.codeCol)
	if code == "" {
		return domain.Observation{}, false, nil
	}

	yearStr := cell(cols.yearCol)
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		// Excel sometimes renders integer cells as "1999.0".
		yf, ferr := strconv.ParseFloat(yearStr, 64)
		if ferr != nil || yf != math.Trunc(yf) {
			return domain.Observation{}, false, fmt.Errorf("invalid year %q", yearStr)
		}
		year = int(yf)
	}

	indexStr := strings.ReplaceAll(cell(cols.indexCol), ",", "")
	index, err := strconv.ParseFloat(indexStr, 64)
	if err != nil || math.IsNaN(index) || math.IsInf(index, 0) {
		return domain.Observation{}, false, fmt.Errorf("invalid index value %q", indexStr)
	}

	return domain.Observation{
		Code:  code,
		Name:  cell(cols.nameCol),
		Year:  year,
		Index: index,
	}, true, nil
}
