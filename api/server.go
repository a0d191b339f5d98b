// Package api provides HTTP API capabilities for the resumen extractor.
// This is a capability module that can be enabled via the CLI or used
// programmatically.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/aiesanjusto/resumen/extractor"
	"github.com/aiesanjusto/resumen/extractor/common"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server so it can be mounted in
// custom http.Server configurations.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleExtract accepts an uploaded statement PDF and responds with the
// extracted summary.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Uploaded files live in memory for the request only; nothing is persisted.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("%sError reading file bytes: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fileReader := bytes.NewReader(fileBytes)
	opts := s.parseExtractOptions(r)

	if opts.TextOnly {
		s.handleTextOnlyExtract(w, fileReader, handler.Filename)
		return
	}

	fileReader.Seek(0, io.SeekStart)
	result := extractor.ProcessReader(fileReader, handler.Filename, opts.Convention)
	finalOutput := extractor.CreateFinalOutput(result, opts.TransactionOnly, opts.SummaryOnly)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(finalOutput)
}

// ExtractOptions holds the options for extraction
type ExtractOptions struct {
	SummaryOnly     bool
	TransactionOnly bool
	TextOnly        bool
	Convention      common.SignConvention
}

// parseExtractOptions extracts options from form values or query params.
func (s *Server) parseExtractOptions(r *http.Request) ExtractOptions {
	return ExtractOptions{
		SummaryOnly:     r.FormValue("summary_only") == "true" || r.URL.Query().Get("summary_only") == "true",
		TransactionOnly: r.FormValue("transaction_only") == "true" || r.URL.Query().Get("transaction_only") == "true",
		TextOnly:        r.FormValue("text_only") == "true" || r.URL.Query().Get("text_only") == "true",
		Convention:      common.SignConvention(coalesce(r.FormValue("sign_convention"), r.URL.Query().Get("sign_convention"))),
	}
}

// handleTextOnlyExtract returns the raw extracted text, for debugging the
// text extraction step.
func (s *Server) handleTextOnlyExtract(w http.ResponseWriter, reader *bytes.Reader, filename string) {
	lines, err := common.ExtractLinesFromPDFReader(reader)
	if err != nil || len(lines) < 1 {
		log.Printf("%sError extracting text: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not extract text from file", http.StatusBadRequest)
		return
	}

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"filename": filename,
		"text":     strings.Join(texts, "\n"),
	})
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
