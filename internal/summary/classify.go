package summary

import "strings"

// Platform is the normalized ONT platform label shown per study.
type Platform string

const (
	PlatformPromethION Platform = "PromethION"
	PlatformGridION    Platform = "GridION"
	PlatformMinION     Platform = "MinION"
	// PlatformGeneric covers models naming the vendor without a specific
	// instrument, and absent or unrecognized models.
	PlatformGeneric Platform = "Oxford Nanopore"
)

// ClassifyPlatform maps a raw instrument model to a Platform by
// case-insensitive substring. Total over all inputs: empty and unrecognized
// models yield PlatformGeneric.
func ClassifyPlatform(model string) Platform {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "prometh"):
		return PlatformPromethION
	case strings.Contains(m, "gridion"):
		return PlatformGridION
	case strings.Contains(m, "minion"), strings.Contains(m, "flongle"):
		return PlatformMinION
	default:
		return PlatformGeneric
	}
}

// strategyBuckets maps uppercase library_strategy values onto coarse
// sequencing types.
var strategyBuckets = map[string]string{
	"RNA-SEQ":                  "transcriptome",
	"TRANSCRIPTOME SEQUENCING": "transcriptome",
	"MRNA-SEQ":                 "transcriptome",
	"CDNA":                     "transcriptome",
	"METAGENOME":               "metagenome",
	"METATRANSCRIPTOME":        "metagenome",
	"WGS":                      "genome",
	"WGA":                      "genome",
	"HI-C":                     "genome",
	"AMPLICON":                 "genome",
	"AMPLICON SEQUENCING":      "genome",
	"OTHER":                    "other",
}

// ClassifyStrategy maps a raw library_strategy to a sequencing type. Values
// outside the buckets come back lowercased but otherwise unchanged.
func ClassifyStrategy(strategy string) string {
	if bucket, ok := strategyBuckets[strings.ToUpper(strategy)]; ok {
		return bucket
	}
	return strings.ToLower(strategy)
}
