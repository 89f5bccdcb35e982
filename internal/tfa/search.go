package tfa

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/curtislaw/mcp-template-filler/internal/tfa/ingest"
)

// SearchTemplates lists the template files under a directory, optionally
// filtered by fuzzy filename matching. Subdirectories and hidden files are
// skipped; only extensions the ingest reader supports are returned.
func (s *Service) SearchTemplates(req SearchTemplatesRequest) (*SearchTemplatesResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	entries, err := os.ReadDir(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !ingest.IsSupported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:         filepath.Join(req.Directory, entry.Name()),
			Name:         entry.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format(time.RFC3339),
		})
	}

	query := strings.TrimSpace(req.Query)
	if query != "" {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		matches := fuzzy.Find(query, names)
		matched := make([]FileInfo, 0, len(matches))
		for _, m := range matches {
			matched = append(matched, files[m.Index])
		}
		files = matched
	}

	return &SearchTemplatesResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   req.Directory,
		SearchQuery: query,
	}, nil
}
