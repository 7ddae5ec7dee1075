package wkhtmltopdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var defaultArgs = []string{
	"--quiet",
	"--encoding", "utf-8",
	"--page-size", "A4",
	"--margin-top", "20mm",
	"--margin-bottom", "20mm",
	"--margin-left", "20mm",
	"--margin-right", "20mm",
	"--print-media-type",
	"-", "-",
}

// Converter runs a local wkhtmltopdf binary, piping HTML in and PDF out.
// The path is resolved once in New and never changes afterwards.
type Converter struct {
	path string
}

// New resolves bin (an absolute path or a name on PATH) to an executable.
func New(bin string) (*Converter, error) {
	if strings.TrimSpace(bin) == "" {
		return nil, errors.New("wkhtmltopdf binary path must be provided")
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf not found at %s: %w", bin, err)
	}
	return &Converter{path: path}, nil
}

// Name identifies the converter.
func (c *Converter) Name() string { return "wkhtmltopdf" }

// Check verifies the binary answers --version.
func (c *Converter) Check(ctx context.Context) error {
	if out, err := exec.CommandContext(ctx, c.path, "--version").CombinedOutput(); err != nil {
		return fmt.Errorf("wkhtmltopdf --version: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Convert renders html into a PDF.
func (c *Converter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.path, defaultArgs...)
	cmd.Stdin = bytes.NewReader(html)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run wkhtmltopdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
