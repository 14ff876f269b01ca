package render

import (
	"encoding/json"
	"io"

	"nanowatch/internal/summary"
)

// JSON writes rows as an indented JSON array.
func JSON(w io.Writer, rows []summary.StudyRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
