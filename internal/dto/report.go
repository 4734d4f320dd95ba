package dto

// ReportResult is a rendered grade report ready to be streamed to the client.
type ReportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
	StoredPath  string `json:"stored_path,omitempty"`
}
