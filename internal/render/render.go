package render

import (
	"strconv"

	"nanowatch/internal/summary"
)

// Format names a supported output renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatHTML  Format = "html"
)

// columns is the header shared by the table and CSV renderers.
var columns = []string{
	"study_accession",
	"release_date",
	"platform",
	"sequencing_type",
	"species",
	"biosamples",
	"gbases",
	"gbytes",
	"study_title",
}

func cells(r summary.StudyRow) []string {
	return []string{
		r.StudyAccession,
		r.ReleaseDate,
		r.Platforms,
		r.SequencingTypes,
		r.Species,
		strconv.Itoa(r.Biosamples),
		strconv.FormatFloat(r.Gbases, 'f', 1, 64),
		strconv.FormatFloat(r.Gbytes, 'f', 1, 64),
		r.Title,
	}
}
