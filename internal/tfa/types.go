package tfa

import (
	"github.com/curtislaw/mcp-template-filler/internal/tfa/field"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/render"
)

// FileInfo describes a candidate template file found on disk.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// AnalyzeTemplatesRequest names the template files to load and scan.
type AnalyzeTemplatesRequest struct {
	Paths []string `json:"paths"`
}

// GenerateDocumentsRequest controls one generation batch. Mode selects the
// output encoding (auto, text, rtf, pdf); an empty Names list means every
// analyzed template.
type GenerateDocumentsRequest struct {
	Mode  string   `json:"mode"`
	Names []string `json:"names,omitempty"`
}

// SearchTemplatesRequest searches a directory for template files, with an
// optional fuzzy filename query.
type SearchTemplatesRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// TemplateInfo summarizes one analyzed template. Error is set, and the
// counts are zero, when the template failed extraction; the rest of the
// batch is unaffected.
type TemplateInfo struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	FieldCount  int    `json:"field_count"`
	UniqueCount int    `json:"unique_count"`
	RichBody    bool   `json:"rich_body"`
	Error       string `json:"error,omitempty"`
}

// AnalyzeTemplatesResult reports the analysis batch plus the organized field
// categories for rendering a form.
type AnalyzeTemplatesResult struct {
	Templates   []TemplateInfo   `json:"templates"`
	TotalFields int              `json:"total_fields"`
	Categories  []field.Category `json:"categories"`
}

// ValidateFieldsResult lists the registered fields still awaiting a value.
type ValidateFieldsResult struct {
	Valid   bool               `json:"valid"`
	Missing []field.Descriptor `json:"missing"`
}

// GenerateDocumentsResult carries one Result per selected template, in input
// order, counting successes and failures.
type GenerateDocumentsResult struct {
	Documents []render.Result `json:"documents"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// SearchTemplatesResult lists the template files matching a search.
type SearchTemplatesResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// Summary reports session-level progress counts for the caller's UI.
type Summary struct {
	Templates       int `json:"templates"`
	Fields          int `json:"fields"`
	Categories      int `json:"categories"`
	CompletedValues int `json:"completed_values"`
}
