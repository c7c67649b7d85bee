// Package validation checks uploaded workbook files before they are stored
// and ingested.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Magic prefixes for the two accepted workbook formats. An .xlsx file is a
// zip archive; a legacy .xls file starts with the OLE compound file header.
var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// WorkbookValidator provides upload validation shared by the HTTP layer and
// the ingestion CLI.
type WorkbookValidator struct {
	logger *slog.Logger
}

// NewWorkbookValidator creates a new workbook validator
func NewWorkbookValidator(logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{
		logger: logger,
	}
}

// ValidateName checks that a filename carries a workbook extension and is not
// an Office temp file.
func (v *WorkbookValidator) ValidateName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".xlsx" && ext != ".xls" {
		v.logger.Warn("Rejected non-workbook upload",
			slog.String("file", name),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not a workbook (extension: %s)", name, ext)
	}

	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejected temporary workbook file",
			slog.String("file", name))
		return fmt.Errorf("file %s is a temporary workbook file", name)
	}

	return nil
}

// ValidateContent checks that the uploaded bytes look like the format the
// extension claims. The check is a magic-prefix sniff, not a full parse; the
// decoder does the real work later.
func (v *WorkbookValidator) ValidateContent(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("file %s is empty", name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx":
		if !bytes.HasPrefix(data, zipMagic) {
			v.logger.Warn("Workbook content does not match extension",
				slog.String("file", name),
				slog.String("expected", "xlsx"))
			return fmt.Errorf("file %s is not a valid .xlsx workbook", name)
		}
	case ".xls":
		if !bytes.HasPrefix(data, oleMagic) {
			v.logger.Warn("Workbook content does not match extension",
				slog.String("file", name),
				slog.String("expected", "xls"))
			return fmt.Errorf("file %s is not a valid .xls workbook", name)
		}
	default:
		return fmt.Errorf("file %s is not a workbook (extension: %s)", name, ext)
	}

	v.logger.Debug("Workbook validated",
		slog.String("file", name),
		slog.Int("size", len(data)))
	return nil
}

// Validate runs both the name and content checks.
func (v *WorkbookValidator) Validate(name string, data []byte) error {
	if err := v.ValidateName(name); err != nil {
		return err
	}
	return v.ValidateContent(name, data)
}
