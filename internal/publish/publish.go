package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/transfer"
)

type WriteOptions struct {
	RenderOptions
	HTML      bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteProject writes p as Markdown (and optionally HTML) into toDir, named after
// the project title.
func WriteProject(p *model.Project, toDir string, opt WriteOptions) (WriteResult, error) {
	if p == nil {
		return WriteResult{}, errors.New("missing project")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	base := strings.TrimSuffix(transfer.FileName(p), ".json")

	md, err := RenderProjectMarkdown(p, opt.RenderOptions)
	if err != nil {
		return WriteResult{}, err
	}
	mdPath := filepath.Join(toDir, base+".md")
	if err := writeFile(mdPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{mdPath}

	if opt.HTML {
		page, err := RenderProjectHTML(p, opt.RenderOptions)
		if err != nil {
			return WriteResult{}, err
		}
		htmlPath := filepath.Join(toDir, base+".html")
		if err := writeFile(htmlPath, []byte(page), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, htmlPath)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
