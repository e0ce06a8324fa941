package helper

// Record is one entry of the list-differing answer.
type Record struct {
	Label    string `json:"label"`
	Pathname string `json:"pathname"`
	ID       string `json:"id"`
}

// ExportResult is the export-temp answer.
type ExportResult struct {
	Path string `json:"path"`
}

// ErrorRecord is printed instead of a payload when a command fails.
type ErrorRecord struct {
	Error string `json:"error"`
}

const (
	CmdListDiffering = "list-differing"
	CmdExportTemp    = "export-temp"
	CmdRemoveTemp    = "remove-temp"
)
