// Package upload implements the PDF upload workflow: file validation, the
// multipart transfer with progress reporting, and the drop-event state
// machine driving both.
package upload

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// User-facing validation messages. Validation failures are local and fully
// recoverable; they are never sent anywhere.
const (
	MsgNoFile = "Please select a file"
	MsgNotPDF = "Only PDF files are allowed"
)

// IsPDF reports whether the file at path is a PDF, checking both the declared
// extension and the actual content. A file that cannot be read is not a PDF.
func IsPDF(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return false
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return mtype.Is("application/pdf")
}
