package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPlatform(t *testing.T) {
	cases := []struct {
		model string
		want  Platform
	}{
		{"PromethION 24", PlatformPromethION},
		{"prometheus-like PROMETHION P2", PlatformPromethION},
		{"GridION", PlatformGridION},
		{"GRIDION X5", PlatformGridION},
		{"MinION Mk1C", PlatformMinION},
		{"Flongle adapter", PlatformMinION},
		{"ONT custom rig", PlatformGeneric},
		{"Oxford Nanopore something", PlatformGeneric},
		{"Illumina NovaSeq", PlatformGeneric},
		{"", PlatformGeneric},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyPlatform(c.model), "model %q", c.model)
	}
}

func TestClassifyStrategy(t *testing.T) {
	cases := []struct {
		strategy string
		want     string
	}{
		{"RNA-Seq", "transcriptome"},
		{"TRANSCRIPTOME SEQUENCING", "transcriptome"},
		{"mRNA-Seq", "transcriptome"},
		{"cDNA", "transcriptome"},
		{"METAGENOME", "metagenome"},
		{"metatranscriptome", "metagenome"},
		{"WGS", "genome"},
		{"wga", "genome"},
		{"Hi-C", "genome"},
		{"AMPLICON", "genome"},
		{"Amplicon Sequencing", "genome"},
		{"OTHER", "other"},
		{"other", "other"},
		{"Targeted-Capture", "targeted-capture"}, // unmapped values pass through lowercased
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyStrategy(c.strategy), "strategy %q", c.strategy)
	}
}
