package ena

// RunRecord is one read_run row from the portal search endpoint. The API
// returns every field as a string; numeric fields are parsed downstream,
// where malformed values count as zero rather than failing a fetch.
type RunRecord struct {
	RunAccession    string `json:"run_accession"`
	StudyAccession  string `json:"study_accession"`
	SampleAccession string `json:"sample_accession"`
	BaseCount       string `json:"base_count"`
	InstrumentModel string `json:"instrument_model"`
	LibraryStrategy string `json:"library_strategy"`
	ScientificName  string `json:"scientific_name"`
	FirstPublic     string `json:"first_public"`
	StudyTitle      string `json:"study_title"`
	FastqBytes      string `json:"fastq_bytes"`
	SubmittedBytes  string `json:"submitted_bytes"`
}
