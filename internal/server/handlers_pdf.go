package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/raphaelgruber/chatbox-go/internal/storage"
)

// handlePDFUpload validates, stores, and processes an uploaded PDF.
func (s *Server) handlePDFUpload(w http.ResponseWriter, r *http.Request) {
	// Bound the request body; the margin covers multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+64*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.collector.RecordError("invalid_file")
			writeError(w,
				fmt.Sprintf("File size exceeds maximum limit of %dMB", s.maxUpload/(1024*1024)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		writeError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := s.validateUpload(header.Filename, header.Size, file); err != nil {
		s.collector.RecordError("invalid_file")
		writeAPIError(w, err)
		return
	}

	name := storage.SanitizeFilename(header.Filename)
	if s.store.Exists(name) {
		writeError(w, "A file with this name already exists. Please rename the file.", http.StatusConflict)
		return
	}

	name, size, err := s.store.Store(name, file)
	if err != nil {
		s.logger.Error("failed to store uploaded file", "filename", name, "error", err)
		writeError(w, "Error storing file", http.StatusInternalServerError)
		return
	}

	path, _ := s.store.Path(name)
	text, err := s.extractor.ExtractText(path, nil)
	if err != nil {
		s.logger.Error("failed to process uploaded file", "filename", name, "error", err)
		s.collector.RecordError("pdf_processing")
		// Do not keep files whose processing failed.
		if delErr := s.store.Delete(name); delErr != nil {
			s.logger.Error("failed to clean up file", "filename", name, "error", delErr)
		}
		writeError(w, fmt.Sprintf("Error processing file: %v", err), http.StatusInternalServerError)
		return
	}

	s.logger.Info("file uploaded and processed", "filename", name, "size", size, "text_length", len(text))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "File uploaded and processed successfully",
		"filename":    name,
		"text_length": len(text),
		"file_size":   size,
	})
}

// validateUpload enforces selection, type, and size rules before any storage
// side effect.
func (s *Server) validateUpload(filename string, size int64, file multipart.File) error {
	if filename == "" {
		return NewAPIError("No file selected", http.StatusBadRequest)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return NewAPIError("Invalid file type. Only PDF files are allowed.", http.StatusBadRequest)
	}
	if size > s.maxUpload {
		return NewAPIError(
			fmt.Sprintf("File size exceeds maximum limit of %dMB", s.maxUpload/(1024*1024)),
			http.StatusRequestEntityTooLarge,
		)
	}

	// The extension is declared by the client; the content decides.
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return NewAPIError("Invalid file type. Only PDF files are allowed.", http.StatusBadRequest)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}
	if !mtype.Is("application/pdf") {
		return NewAPIError("Invalid file type. Only PDF files are allowed.", http.StatusBadRequest)
	}
	return nil
}

// handlePDFList lists stored PDF filenames.
func (s *Server) handlePDFList(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.List()
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"files":  files,
	})
}

// handlePDFDelete removes a stored PDF. Only a missing file maps to 404;
// any other removal failure is a server error.
func (s *Server) handlePDFDelete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := s.store.Delete(filename); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, fmt.Sprintf("File %s not found", storage.SanitizeFilename(filename)), http.StatusNotFound)
			return
		}
		s.logger.Error("failed to delete file", "filename", filename, "error", err)
		writeError(w, "Error deleting file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("File %s deleted successfully", storage.SanitizeFilename(filename)),
	})
}

// handleStats returns current request statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.collector.Snapshot())
}
