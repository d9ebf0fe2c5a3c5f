package domain

// UnknownEntityName is the sentinel substituted for a missing entity name
// before any grouping or display, so downstream consumers never see an
// empty name.
const UnknownEntityName = "Unknown Entity"

// Observation is one firm-year row of the digital transformation index
// dataset. Code is always textual: numeric-looking codes keep their exact
// spelling (leading zeros included) so lookups are exact-string matches.
// The natural key is (Code, Year); the source does not declare it unique,
// but exact-match queries assume it is and take the first row on duplicates.
type Observation struct {
	Code  string  `json:"code" validate:"required"`
	Name  string  `json:"name"`
	Year  int     `json:"year" validate:"required,gte=1900,lte=2100"`
	Index float64 `json:"index"`
}

// Entity pairs a code with its registry name.
type Entity struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DatasetSummary holds the global overview metrics of the loaded table.
type DatasetSummary struct {
	MeanIndex   float64 `json:"mean_index"`
	MaxIndex    float64 `json:"max_index"`
	EntityCount int     `json:"entity_count"`
	MinYear     int     `json:"min_year"`
	MaxYear     int     `json:"max_year"`
	RowCount    int     `json:"row_count"`
}

// YearlyPoint is the per-year mean of the index.
type YearlyPoint struct {
	Year      int     `json:"year"`
	MeanIndex float64 `json:"mean_index"`
}

// YearlyStat extends YearlyPoint with the number of distinct entities
// observed in that year (dual-axis chart).
type YearlyStat struct {
	Year        int     `json:"year"`
	MeanIndex   float64 `json:"mean_index"`
	EntityCount int     `json:"entity_count"`
}

// ChangePoint is the year-over-year percentage change of the per-year mean.
// ChangePct is nil for the first observed year: there is no prior value,
// and "no value" must never collapse to zero.
type ChangePoint struct {
	Year      int      `json:"year"`
	MeanIndex float64  `json:"mean_index"`
	ChangePct *float64 `json:"change_pct"`
}

// EntityMean is one entry of a top-N ranking by mean index across all years.
type EntityMean struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	MeanIndex float64 `json:"mean_index"`
	Years     int     `json:"years"`
}

// Bucket is one fixed scoring interval of the distribution chart. The label
// carries the interval bounds, e.g. "20-40" for [20,40).
type Bucket struct {
	Label string  `json:"label"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Distribution is the bucketed index distribution. Excluded counts rows
// whose index falls outside [0,100]; those rows belong to no bucket.
type Distribution struct {
	Buckets  []Bucket `json:"buckets"`
	Excluded int      `json:"excluded"`
	Total    int      `json:"total"`
}

// Heatmap is the entity-by-year pivot of mean index values, restricted to
// the top codes by global mean. Cells[i][j] is nil when code i has no
// observation in year j; missing pairs are never zero-filled.
type Heatmap struct {
	Codes []string     `json:"codes"`
	Years []int        `json:"years"`
	Cells [][]*float64 `json:"cells"`
}

// RankResult reports the selection rank within its year: Rank is the count
// of rows in that year whose index is >= the selected value, so two
// entities tied at the top both report rank 1. Not a strict ordinal.
type RankResult struct {
	Rank  int `json:"rank"`
	Total int `json:"total"`
}

// Snapshot is the exact-match view for a (code, year) selection. Found is
// false when the pair has no observation; the remaining fields are then
// omitted rather than treated as an error.
type Snapshot struct {
	Found bool        `json:"found"`
	Code  string      `json:"code"`
	Name  string      `json:"name"`
	Year  int         `json:"year"`
	Index float64     `json:"index,omitempty"`
	Rank  *RankResult `json:"rank,omitempty"`
}
