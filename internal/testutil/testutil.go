package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"nanowatch/internal/summary"
)

// TestStudy is a finalized summary row shared by handler tests.
var TestStudy = summary.StudyRow{
	StudyAccession:  "PRJEB70001",
	ReleaseDate:     "2024-02-01",
	Platforms:       "MinION, PromethION",
	SequencingTypes: "genome",
	Species:         "Escherichia coli",
	Biosamples:      12,
	Gbases:          1.5,
	Gbytes:          2.0,
	Title:           "E. coli long-read survey",
}

// NewRequest creates an HTTP request for testing, marshaling body as JSON
// when present.
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// RecordResponse is a decoded HTTP response for assertions.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes a recorded response body as a JSON object.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
