package ena

import "strings"

const DefaultBaseURL = "https://www.ebi.ac.uk/ena/portal/api"

// runFields is the comma list requested on every read_run search. It is
// internally constructed and passed through unescaped.
var runFields = strings.Join([]string{
	"run_accession",
	"study_accession",
	"sample_accession",
	"base_count",
	"instrument_model",
	"library_strategy",
	"scientific_name",
	"first_public",
	"study_title",
	"fastq_bytes",
	"submitted_bytes",
}, ",")

const upperhex = "0123456789ABCDEF"

// encodeQuery percent-encodes every byte outside [A-Za-z0-9]. The portal's
// query parameter is stricter than regular form encoding: '=', '"', spaces
// and parentheses inside the boolean expression must all be escaped, and a
// '+' for space is not accepted.
func encodeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}
	return b.String()
}

// searchURL builds the read_run search URL for a raw boolean query and a
// comma-joined field list. limit=0 requests the full result set.
func searchURL(base, query, fields string) string {
	return base + "/search?result=read_run&dataPortal=ena&query=" + encodeQuery(query) +
		"&fields=" + fields + "&format=json&limit=0"
}

const ontPlatformClause = `instrument_platform="OXFORD_NANOPORE"`

// sinceQuery matches runs released or updated on/after the given date.
func sinceQuery(since string) string {
	return ontPlatformClause + " AND (first_public>=" + since + " OR last_updated>=" + since + ")"
}

// rollingWindowQuery restricts the release-or-update predicate to one window.
func rollingWindowQuery(w Window) string {
	s := w.Start.Format(DateLayout)
	e := w.End.Format(DateLayout)
	return ontPlatformClause +
		" AND ((first_public>=" + s + " AND first_public<=" + e + ")" +
		" OR (last_updated>=" + s + " AND last_updated<=" + e + "))"
}

// releasedWindowQuery matches only on release date, for fixed-window fetches.
func releasedWindowQuery(w Window) string {
	s := w.Start.Format(DateLayout)
	e := w.End.Format(DateLayout)
	return ontPlatformClause + " AND (first_public>=" + s + " AND first_public<=" + e + ")"
}
