package render

import (
	"encoding/csv"
	"io"

	"nanowatch/internal/summary"
)

// CSV writes rows with a leading header record.
func CSV(w io.Writer, rows []summary.StudyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(cells(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
