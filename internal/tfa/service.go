// Package tfa wires the template-filler pipeline together: template
// ingestion, field extraction, value collection, validation, and document
// generation, owned by a single session object.
package tfa

import (
	"fmt"
	"strings"

	"github.com/curtislaw/mcp-template-filler/internal/tfa/field"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/ingest"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/render"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/rtf"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/values"
)

// Service owns one filling session: the analyzed templates, the deduplicated
// field registry, and the value store. It is not safe for concurrent use;
// callers must finish one analysis or generation batch before starting the
// next. Value writes interleaved with a running generation are read at
// substitution time (last-observed-value, no snapshot).
type Service struct {
	reader    *ingest.Reader
	registry  *field.Registry
	store     *values.Store
	engine    *render.Engine
	templates []render.Template
	infos     []TemplateInfo
}

// NewService creates a session with the given constraints, letterhead
// identity, and derivation rules.
func NewService(maxFileSize int64, firmName, firmContact string, rules []values.DerivationRule) *Service {
	return &Service{
		reader:   ingest.NewReader(maxFileSize),
		registry: field.NewRegistry(),
		store:    values.NewStore(rules...),
		engine:   render.NewEngine(firmName, firmContact),
	}
}

// AnalyzeTemplates loads and scans a batch of template files, replacing any
// previously analyzed batch. Templates are processed one at a time in input
// order; a file that cannot be read or converted is recorded as failed and
// skipped without aborting the rest. Field values entered earlier survive
// re-analysis.
func (s *Service) AnalyzeTemplates(req AnalyzeTemplatesRequest) (*AnalyzeTemplatesResult, error) {
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("no template paths provided")
	}

	s.templates = nil
	s.infos = nil
	s.registry.Clear()

	for _, path := range req.Paths {
		info := s.analyzeOne(path)
		s.infos = append(s.infos, info)
	}

	return &AnalyzeTemplatesResult{
		Templates:   s.infos,
		TotalFields: s.registry.Len(),
		Categories:  s.registry.Categorize(),
	}, nil
}

func (s *Service) analyzeOne(path string) TemplateInfo {
	doc, err := s.reader.ReadFile(path)
	if err != nil {
		return TemplateInfo{Name: baseName(path), Path: path, Error: err.Error()}
	}

	t := render.Template{
		Name:    doc.Name,
		RawText: doc.RawText,
		Fields:  field.Scan(doc.RawText),
	}
	if doc.Markup != "" {
		rich, err := rtf.FromHTML(doc.Markup)
		if err != nil {
			return TemplateInfo{Name: doc.Name, Path: path, Size: doc.Size, Error: err.Error()}
		}
		t.RichRTF = rich
	}

	s.registry.Register(t.Fields...)
	s.templates = append(s.templates, t)

	return TemplateInfo{
		Name:        doc.Name,
		Path:        path,
		Size:        doc.Size,
		FieldCount:  len(t.Fields),
		UniqueCount: uniqueCount(t.Fields),
		RichBody:    t.RichRTF != "",
	}
}

// FieldCategories returns the organized form model for the current registry.
func (s *Service) FieldCategories() []field.Category {
	return s.registry.Categorize()
}

// SetFieldValue records a value, firing any derivation rule driven by the
// key.
func (s *Service) SetFieldValue(key, value string) {
	s.store.Set(key, value)
}

// GetFieldValue returns the current value for a key, empty if unset.
func (s *Service) GetFieldValue(key string) string {
	return s.store.Get(key)
}

// ValidateFields reports which registered fields still need a value before
// generation may proceed. Calculated fields are exempt.
func (s *Service) ValidateFields() *ValidateFieldsResult {
	missing := s.registry.Missing(s.store)
	return &ValidateFieldsResult{Valid: len(missing) == 0, Missing: missing}
}

// GenerateDocuments fills the selected templates. Generation is refused
// outright while required fields are missing. After that gate, each
// template is filled independently: a failure becomes that document's
// failed Result and the batch continues in input order.
func (s *Service) GenerateDocuments(req GenerateDocumentsRequest) (*GenerateDocumentsResult, error) {
	mode, err := render.ParseOutputMode(req.Mode)
	if err != nil {
		return nil, err
	}

	if v := s.ValidateFields(); !v.Valid {
		names := make([]string, len(v.Missing))
		for i, d := range v.Missing {
			names[i] = d.Key
		}
		return nil, fmt.Errorf("cannot generate documents, %d required field(s) missing: %s",
			len(names), strings.Join(names, ", "))
	}

	selected := s.selectTemplates(req.Names)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no templates selected for processing")
	}

	result := &GenerateDocumentsResult{}
	for _, t := range selected {
		r := s.engine.Fill(t, s.store, mode)
		if r.Succeeded {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Documents = append(result.Documents, r)
	}
	return result, nil
}

// selectTemplates filters the analyzed batch by template name. An empty
// filter selects everything.
func (s *Service) selectTemplates(names []string) []render.Template {
	if len(names) == 0 {
		return s.templates
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []render.Template
	for _, t := range s.templates {
		if wanted[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// ExportValues serializes the current field values as pretty-printed JSON.
func (s *Service) ExportValues() (string, error) {
	return s.store.Export()
}

// ImportValues merges values from an exported JSON document, overwriting
// keys present in the document and leaving the rest untouched. The store is
// unmodified when the document is malformed.
func (s *Service) ImportValues(jsonText string) error {
	return s.store.Import(jsonText)
}

// GetSummary reports session progress counts.
func (s *Service) GetSummary() Summary {
	return Summary{
		Templates:       len(s.templates),
		Fields:          s.registry.Len(),
		Categories:      len(s.registry.Categorize()),
		CompletedValues: s.store.CompletedCount(),
	}
}

// Clear drops the analyzed templates, registered fields, and stored values.
func (s *Service) Clear() {
	s.templates = nil
	s.infos = nil
	s.registry.Clear()
	s.store.Clear()
}

func uniqueCount(fields []field.Descriptor) int {
	seen := make(map[string]bool, len(fields))
	for _, d := range fields {
		seen[d.Key] = true
	}
	return len(seen)
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i != -1 {
		return path[i+1:]
	}
	return path
}
