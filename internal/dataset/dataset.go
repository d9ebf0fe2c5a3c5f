package dataset

import (
	"sort"

	"dtxcli/pkg/contracts/domain"
)

// Dataset is the loaded observation table plus its derived projections.
// The table is immutable after construction; every projection (sorted code
// list, sorted year list, code-to-name registry) is computed once from it
// and never mutated, so concurrent readers need no locking.
type Dataset struct {
	rows  []domain.Observation
	codes []string
	years []int
	names map[string]string
}

// New builds a Dataset from raw observations, applying the preprocessing
// rules: missing names are replaced with the sentinel before anything
// groups or displays them, and the registry keeps the first non-missing
// name seen per code. Construction is idempotent: the same input always
// yields identical derived structures.
func New(rows []domain.Observation) *Dataset {
	ds := &Dataset{
		rows:  make([]domain.Observation, len(rows)),
		names: make(map[string]string),
	}

	codeSet := make(map[string]struct{})
	yearSet := make(map[int]struct{})
	for i, obs := range rows {
		if obs.Name == "" {
			obs.Name = domain.UnknownEntityName
		}
		ds.rows[i] = obs

		codeSet[obs.Code] = struct{}{}
		yearSet[obs.Year] = struct{}{}
		if _, seen := ds.names[obs.Code]; !seen {
			ds.names[obs.Code] = obs.Name
		}
	}

	ds.codes = make([]string, 0, len(codeSet))
	for code := range codeSet {
		ds.codes = append(ds.codes, code)
	}
	sort.Strings(ds.codes)

	ds.years = make([]int, 0, len(yearSet))
	for year := range yearSet {
		ds.years = append(ds.years, year)
	}
	sort.Ints(ds.years)

	return ds
}

// Rows returns the full observation table. Callers must not mutate it.
func (ds *Dataset) Rows() []domain.Observation {
	return ds.rows
}

// Codes returns the distinct entity codes in ascending lexicographic order.
func (ds *Dataset) Codes() []string {
	return ds.codes
}

// Years returns the distinct years in ascending numeric order.
func (ds *Dataset) Years() []int {
	return ds.years
}

// Name returns the registry name for a code, falling back to the sentinel
// for codes the registry has never seen.
func (ds *Dataset) Name(code string) string {
	if name, ok := ds.names[code]; ok {
		return name
	}
	return domain.UnknownEntityName
}

// Entities returns the registry as (code, name) pairs in code order.
func (ds *Dataset) Entities() []domain.Entity {
	entities := make([]domain.Entity, len(ds.codes))
	for i, code := range ds.codes {
		entities[i] = domain.Entity{Code: code, Name: ds.names[code]}
	}
	return entities
}

// EntityHistory returns all observations for a code sorted ascending by
// year. An unknown code yields an empty slice, not an error.
func (ds *Dataset) EntityHistory(code string) []domain.Observation {
	var history []domain.Observation
	for _, obs := range ds.rows {
		if obs.Code == code {
			history = append(history, obs)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Year < history[j].Year })
	return history
}

// Find returns the exact-match row for (code, year). The pair is assumed
// unique; on duplicate rows the first occurrence wins.
func (ds *Dataset) Find(code string, year int) (domain.Observation, bool) {
	for _, obs := range ds.rows {
		if obs.Code == code && obs.Year == year {
			return obs, true
		}
	}
	return domain.Observation{}, false
}

// YearRows returns every observation of the given year, in table order.
func (ds *Dataset) YearRows(year int) []domain.Observation {
	var rows []domain.Observation
	for _, obs := range ds.rows {
		if obs.Year == year {
			rows = append(rows, obs)
		}
	}
	return rows
}

// ClampYear pins a requested year into the observed [min, max] range. With
// no loaded years the request is returned unchanged.
func (ds *Dataset) ClampYear(year int) int {
	if len(ds.years) == 0 {
		return year
	}
	if min := ds.years[0]; year < min {
		return min
	}
	if max := ds.years[len(ds.years)-1]; year > max {
		return max
	}
	return year
}
