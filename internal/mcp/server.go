package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/curtislaw/mcp-template-filler/internal/config"
	"github.com/curtislaw/mcp-template-filler/internal/descriptions"
	"github.com/curtislaw/mcp-template-filler/internal/tfa"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	tfaService *tfa.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, tfaService *tfa.Service) (*Server, error) {
	if tfaService == nil {
		return nil, fmt.Errorf("tfaService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		tfaService: tfaService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	analyzeTool := mcp.NewTool(
		"tfa_analyze_templates",
		mcp.WithDescription(descriptions.AnalyzeTemplatesDescription),
		mcp.WithString("paths",
			mcp.Required(),
			mcp.Description("Comma- or newline-separated list of template file paths"),
		),
	)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyzeTemplates)

	categoriesTool := mcp.NewTool(
		"tfa_field_categories",
		mcp.WithDescription(descriptions.FieldCategoriesDescription),
	)
	s.mcpServer.AddTool(categoriesTool, s.handleFieldCategories)

	setValueTool := mcp.NewTool(
		"tfa_set_field_value",
		mcp.WithDescription(descriptions.SetFieldValueDescription),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Field key in CATEGORY.NAME form, e.g. COURT.COUNTY"),
		),
		mcp.WithString("value",
			mcp.Description("Raw value to store; empty clears the field"),
		),
	)
	s.mcpServer.AddTool(setValueTool, s.handleSetFieldValue)

	validateTool := mcp.NewTool(
		"tfa_validate_fields",
		mcp.WithDescription(descriptions.ValidateFieldsDescription),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateFields)

	generateTool := mcp.NewTool(
		"tfa_generate_documents",
		mcp.WithDescription(descriptions.GenerateDocumentsDescription),
		mcp.WithString("mode",
			mcp.Description("Output encoding: auto (default), text, rtf, or pdf"),
		),
		mcp.WithString("names",
			mcp.Description("Optional comma-separated template names to generate; empty means all"),
		),
	)
	s.mcpServer.AddTool(generateTool, s.handleGenerateDocuments)

	exportTool := mcp.NewTool(
		"tfa_export_values",
		mcp.WithDescription(descriptions.ExportValuesDescription),
	)
	s.mcpServer.AddTool(exportTool, s.handleExportValues)

	importTool := mcp.NewTool(
		"tfa_import_values",
		mcp.WithDescription(descriptions.ImportValuesDescription),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("A previously exported flat JSON object of field values"),
		),
	)
	s.mcpServer.AddTool(importTool, s.handleImportValues)

	searchTool := mcp.NewTool(
		"tfa_search_templates",
		mcp.WithDescription(descriptions.SearchTemplatesDescription),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy filename matching"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchTemplates)

	infoTool := mcp.NewTool(
		"tfa_server_info",
		mcp.WithDescription(descriptions.ServerInfoDescription),
	)
	s.mcpServer.AddTool(infoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleAnalyzeTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := tfa.AnalyzeTemplatesRequest{Paths: splitList(raw)}
	result, err := s.tfaService.AnalyzeTemplates(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatAnalyzeResult(result)), nil
}

func (s *Server) handleFieldCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories := s.tfaService.FieldCategories()
	if len(categories) == 0 {
		return mcp.NewToolResultText("No fields extracted yet. Run tfa_analyze_templates first."), nil
	}

	text := ""
	for _, cat := range categories {
		text += fmt.Sprintf("%s (%d field(s))\n", cat.Name, len(cat.Fields))
		for _, f := range cat.Fields {
			text += fmt.Sprintf("  %s [%s]", f.Key, f.Kind)
			if len(f.Options) > 0 {
				text += fmt.Sprintf(" options: %s", strings.Join(f.Options, ", "))
			}
			if v := s.tfaService.GetFieldValue(f.Key); v != "" {
				text += fmt.Sprintf(" = %q", v)
			}
			text += "\n"
		}
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleSetFieldValue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	value := ""
	if v, ok := request.GetArguments()["value"].(string); ok {
		value = v
	}

	s.tfaService.SetFieldValue(key, value)

	return mcp.NewToolResultText(fmt.Sprintf("Set %s = %q", key, s.tfaService.GetFieldValue(key))), nil
}

func (s *Server) handleValidateFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.tfaService.ValidateFields()

	if result.Valid {
		return mcp.NewToolResultText("All required fields have values. Ready to generate documents."), nil
	}

	text := fmt.Sprintf("%d required field(s) missing:\n", len(result.Missing))
	for _, d := range result.Missing {
		text += fmt.Sprintf("  %s [%s]\n", d.Key, d.Kind)
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGenerateDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := tfa.GenerateDocumentsRequest{}
	if mode, ok := args["mode"].(string); ok {
		req.Mode = mode
	}
	if names, ok := args["names"].(string); ok && names != "" {
		req.Names = splitList(names)
	}

	result, err := s.tfaService.GenerateDocuments(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := os.MkdirAll(s.config.OutputDirectory, config.DefaultDirPerm); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot create output directory: %v", err)), nil
	}

	text := fmt.Sprintf("Generated %d document(s), %d failed\n\n", result.Succeeded, result.Failed)
	for _, doc := range result.Documents {
		if !doc.Succeeded {
			text += fmt.Sprintf("FAILED  %s: %s\n", doc.Name, doc.Error)
			continue
		}
		outPath := filepath.Join(s.config.OutputDirectory, doc.Name)
		if err := os.WriteFile(outPath, doc.Content, 0o640); err != nil {
			text += fmt.Sprintf("FAILED  %s: %v\n", doc.Name, err)
			continue
		}
		text += fmt.Sprintf("OK      %s (%s, %d bytes)\n", outPath, doc.Kind, len(doc.Content))
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleExportValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := s.tfaService.ExportValues()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(data), nil
}

func (s *Server) handleImportValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := request.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.tfaService.ImportValues(data); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Field values imported."), nil
}

func (s *Server) handleSearchTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.TemplateDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := tfa.SearchTemplatesRequest{Directory: directory, Query: query}
	result, err := s.tfaService.SearchTemplates(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		text := fmt.Sprintf("No template files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			text += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
		return mcp.NewToolResultText(text), nil
	}

	return mcp.NewToolResultText(s.formatSearchResult(result)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := s.tfaService.GetSummary()

	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Template Directory: %s\n", s.config.TemplateDirectory)
	text += fmt.Sprintf("Output Directory: %s\n", s.config.OutputDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	text += "Session:\n"
	text += fmt.Sprintf("  Templates analyzed: %d\n", summary.Templates)
	text += fmt.Sprintf("  Unique fields: %d in %d categories\n", summary.Fields, summary.Categories)
	text += fmt.Sprintf("  Values completed: %d\n\n", summary.CompletedValues)

	text += `Workflow:
1. tfa_search_templates to discover template files
2. tfa_analyze_templates to extract fields ({{CATEGORY.FIELD_NAME|TYPE|OPTIONS}})
3. tfa_set_field_value for each field (tfa_field_categories shows the form model)
4. tfa_validate_fields until every required field has a value
5. tfa_generate_documents to write the filled documents (text, RTF, or PDF)
6. tfa_export_values / tfa_import_values to save and restore a session`

	return mcp.NewToolResultText(text), nil
}

// Formatting methods

func (s *Server) formatAnalyzeResult(result *tfa.AnalyzeTemplatesResult) string {
	text := fmt.Sprintf("Analyzed %d template(s), %d unique field(s) in %d categories\n\n",
		len(result.Templates), result.TotalFields, len(result.Categories))

	text += "Templates:\n"
	for i, t := range result.Templates {
		if t.Error != "" {
			text += fmt.Sprintf("%d. %s - FAILED: %s\n", i+1, t.Name, t.Error)
			continue
		}
		text += fmt.Sprintf("%d. %s (%d bytes, %d field occurrence(s), %d unique",
			i+1, t.Name, t.Size, t.FieldCount, t.UniqueCount)
		if t.RichBody {
			text += ", formatted"
		}
		text += ")\n"
	}

	text += "\nCategories:\n"
	for _, cat := range result.Categories {
		names := make([]string, len(cat.Fields))
		for i, f := range cat.Fields {
			names[i] = f.Name
		}
		text += fmt.Sprintf("  %s: %s\n", cat.Name, strings.Join(names, ", "))
	}

	return text
}

func (s *Server) formatSearchResult(result *tfa.SearchTemplatesResult) string {
	text := fmt.Sprintf("Found %d template file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

// splitList splits a comma- or newline-separated argument into trimmed,
// non-empty items.
func splitList(raw string) []string {
	var items []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting template filler MCP server in stdio mode")
		log.Printf("Template directory: %s", s.config.TemplateDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport only does stdio for now.
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
