package printview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dockit/offert/internal/logging"
	"go.uber.org/zap"
)

// Format is an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "pdf" and "xlsx" (case-insensitive, optional dot).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want pdf or xlsx)", s)
	}
}

// Render renders doc in format f.
func Render(doc *Document, f Format) ([]byte, error) {
	switch f {
	case FormatPDF:
		return RenderPDF(doc)
	case FormatXLSX:
		return RenderXLSX(doc)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

// Printer writes documents to disk and hands PDFs to the host print command.
type Printer struct {
	// Dir is where exports are written. Empty means the working directory.
	Dir string

	// Command is the host print command, e.g. "lp" or "lpr -P office".
	// The PDF path is appended as the last argument. Empty disables printing;
	// Print then only exports.
	Command string
}

// PrintResult describes what Print did.
type PrintResult struct {
	Path    string
	Printed bool
}

// Export renders doc and writes it to Dir. It returns the written path.
func (p *Printer) Export(ctx context.Context, doc *Document, f Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := Render(doc, f)
	if err != nil {
		return "", err
	}

	dir := p.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, doc.FileStem()+"."+string(f))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Info("Quote exported", zap.String("path", path), zap.String("format", string(f)))
	return path, nil
}

// Print exports doc as PDF and sends it to the print command.
func (p *Printer) Print(ctx context.Context, doc *Document) (PrintResult, error) {
	path, err := p.Export(ctx, doc, FormatPDF)
	if err != nil {
		return PrintResult{}, err
	}

	args := strings.Fields(p.Command)
	if len(args) == 0 {
		return PrintResult{Path: path}, nil
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		logging.Warn("Print command failed",
			zap.String("command", p.Command),
			zap.String("output", strings.TrimSpace(string(out))),
			zap.Error(err),
		)
		return PrintResult{Path: path}, fmt.Errorf("print command %q failed: %w", args[0], err)
	}

	logging.Info("Quote sent to printer", zap.String("command", args[0]), zap.String("path", path))
	return PrintResult{Path: path, Printed: true}, nil
}
