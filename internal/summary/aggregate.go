package summary

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"nanowatch/internal/ena"
)

// speciesCap bounds the distinct species names kept per study: the first
// five encountered after uniquification, not a frequency ranking.
const speciesCap = 5

// StudyRow is the finalized study-level summary handed to renderers and the
// snapshot store. Label sets are joined to display strings and volume sums
// scaled to giga-units with one-decimal rounding.
type StudyRow struct {
	StudyAccession  string  `json:"study_accession"`
	ReleaseDate     string  `json:"release_date"`
	Platforms       string  `json:"platforms"`
	SequencingTypes string  `json:"sequencing_types"`
	Species         string  `json:"species"`
	Biosamples      int     `json:"biosamples"`
	Gbases          float64 `json:"gbases"`
	Gbytes          float64 `json:"gbytes"`
	Title           string  `json:"study_title"`
}

// accumulator collects one study's values while run rows stream in.
type accumulator struct {
	platforms   map[Platform]struct{}
	types       map[string]struct{}
	speciesSeen map[string]struct{}
	species     []string // first speciesCap distinct names, input order
	samples     map[string]struct{}
	release     string
	title       string
	bases       uint64
	bytes       uint64
}

func newAccumulator() *accumulator {
	return &accumulator{
		platforms:   make(map[Platform]struct{}),
		types:       make(map[string]struct{}),
		speciesSeen: make(map[string]struct{}),
		samples:     make(map[string]struct{}),
	}
}

func (a *accumulator) fold(r ena.RunRecord) {
	a.platforms[ClassifyPlatform(r.InstrumentModel)] = struct{}{}
	if r.LibraryStrategy != "" {
		a.types[ClassifyStrategy(r.LibraryStrategy)] = struct{}{}
	}
	if r.ScientificName != "" {
		if _, seen := a.speciesSeen[r.ScientificName]; !seen {
			a.speciesSeen[r.ScientificName] = struct{}{}
			if len(a.species) < speciesCap {
				a.species = append(a.species, r.ScientificName)
			}
		}
	}
	if r.SampleAccession != "" {
		a.samples[r.SampleAccession] = struct{}{}
	}
	// fixed-width ISO dates make lexicographic order chronological
	if r.FirstPublic != "" && (a.release == "" || r.FirstPublic < a.release) {
		a.release = r.FirstPublic
	}
	if a.title == "" && r.StudyTitle != "" {
		a.title = r.StudyTitle
	}
	a.bases = satAdd(a.bases, parseCount(r.BaseCount))
	a.bytes = satAdd(a.bytes, rowBytes(r))
}

// parseCount parses a decimal count string; absent or malformed values
// contribute zero rather than failing the aggregation.
func parseCount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// rowBytes is the run's output volume: fastq_bytes when it parses, else
// submitted_bytes, else zero.
func rowBytes(r ena.RunRecord) uint64 {
	if v, err := strconv.ParseUint(r.FastqBytes, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseUint(r.SubmittedBytes, 10, 64); err == nil {
		return v
	}
	return 0
}

// satAdd sums without wrapping; extreme totals saturate instead of
// overflowing.
func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// Summary is the per-study aggregation of a run row stream. The fold is
// commutative and associative over rows, so window fetch order never changes
// the final result.
type Summary struct {
	byStudy map[string]*accumulator
}

// Reduce folds run rows, in input order, into per-study aggregates. Rows
// without a study accession are skipped: there is nothing to attribute them
// to.
func Reduce(rows []ena.RunRecord) *Summary {
	s := &Summary{byStudy: make(map[string]*accumulator)}
	for _, r := range rows {
		if r.StudyAccession == "" {
			continue
		}
		acc, ok := s.byStudy[r.StudyAccession]
		if !ok {
			acc = newAccumulator()
			s.byStudy[r.StudyAccession] = acc
		}
		acc.fold(r)
	}
	return s
}

func (s *Summary) Len() int {
	return len(s.byStudy)
}

// Rows finalizes every aggregate, sorted by release date descending with
// accession as tiebreak. Each aggregate is consumed exactly once; calling
// Rows again yields equal values.
func (s *Summary) Rows() []StudyRow {
	out := make([]StudyRow, 0, len(s.byStudy))
	for accession, a := range s.byStudy {
		out = append(out, StudyRow{
			StudyAccession:  accession,
			ReleaseDate:     a.release,
			Platforms:       joinSorted(platformLabels(a.platforms)),
			SequencingTypes: joinSorted(setKeys(a.types)),
			Species:         strings.Join(a.species, ", "),
			Biosamples:      len(a.samples),
			Gbases:          scaleGiga(a.bases),
			Gbytes:          scaleGiga(a.bytes),
			Title:           a.title,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReleaseDate != out[j].ReleaseDate {
			return out[i].ReleaseDate > out[j].ReleaseDate
		}
		return out[i].StudyAccession < out[j].StudyAccession
	})
	return out
}

// scaleGiga converts a unit count to giga-units rounded to one decimal.
func scaleGiga(n uint64) float64 {
	return math.Round(float64(n)/1e9*10) / 10
}

func platformLabels(set map[Platform]struct{}) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, string(p))
	}
	return out
}

func setKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func joinSorted(items []string) string {
	sort.Strings(items)
	return strings.Join(items, ", ")
}
