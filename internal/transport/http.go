package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/sidetrack/internal/csvcodec"
	"github.com/rpggio/sidetrack/internal/domain/importer"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/exporter"
	"github.com/rpggio/sidetrack/internal/notify"
)

// maxUploadBytes bounds a CSV upload.
const maxUploadBytes = 10 << 20

// RPCHandler handles JSON-RPC method dispatch.
type RPCHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// ProjectSource provides the collection for exports.
type ProjectSource interface {
	Projects() []project.Project
}

// ImportService previews and commits CSV uploads.
type ImportService interface {
	Preview(csvText string) csvcodec.ImportResult
	Run(ctx context.Context, csvText string, confirmer importer.Confirmer) (importer.Outcome, error)
}

// Deps are the services behind the HTTP routes. MCP, when set, is mounted
// at /mcp.
type Deps struct {
	RPC      RPCHandler
	Projects ProjectSource
	Imports  ImportService
	Notifier notify.Notifier
	MCP      http.Handler
	Logger   *slog.Logger
	Now      func() time.Time
}

// Server wires HTTP handlers.
type Server struct {
	deps Deps
}

// NewServer creates an HTTP server router with middleware.
func NewServer(deps Deps) *chi.Mux {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewLogNotifier(deps.Logger)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(deps.Logger))

	srv := &Server{deps: deps}

	r.Get("/health", srv.handleHealth)
	r.Post("/rpc", srv.handleRPC)
	r.Get("/export/{format}", srv.handleExport)
	r.Get("/template", srv.handleTemplate)
	r.Post("/import", srv.handleImport)
	if deps.MCP != nil {
		r.Handle("/mcp", deps.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, requestError(err))
		return
	}

	result, err := s.deps.RPC.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		rpcErr, known := callError(err)
		if !known {
			s.deps.Logger.Error("rpc failed", "method", req.Method, "error", err)
		}
		WriteError(w, req.ID, rpcErr)
		return
	}

	WriteResult(w, req.ID, result)
}

// responseSaver streams an export to the client as an attachment.
type responseSaver struct {
	w http.ResponseWriter
}

func (rs responseSaver) Save(_ context.Context, file exporter.File) (string, error) {
	rs.w.Header().Set("Content-Type", file.ContentType)
	rs.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	rs.w.WriteHeader(http.StatusOK)
	if _, err := rs.w.Write(file.Data); err != nil {
		return "", err
	}
	return file.Name, nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := exporter.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	exp := exporter.New(responseSaver{w: w}, s.deps.Notifier)
	if _, err := exp.Export(r.Context(), format, s.deps.Projects.Projects(), s.deps.Now()); err != nil {
		s.deps.Logger.Error("export failed", "format", format, "error", err)
	}
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	exp := exporter.New(responseSaver{w: w}, s.deps.Notifier)
	if _, err := exp.ExportTemplate(r.Context()); err != nil {
		s.deps.Logger.Error("template download failed", "error", err)
	}
}

// ImportResponse reports a previewed or committed upload.
type ImportResponse struct {
	Summary   string            `json:"summary"`
	Committed bool              `json:"committed"`
	Imported  []project.Project `json:"imported"`
	csvcodec.ImportResult
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	if err := importer.CheckUpload(header.Filename, header.Header.Get("Content-Type")); err != nil {
		notify.Error(r.Context(), s.deps.Notifier, "Invalid file", importer.UploadRejectedMessage)
		writeJSONError(w, http.StatusUnsupportedMediaType, importer.UploadRejectedMessage)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "reading upload failed")
		return
	}
	csvText := string(data)

	if r.URL.Query().Get("confirm") != "true" {
		result := s.deps.Imports.Preview(csvText)
		writeJSONBody(w, http.StatusOK, ImportResponse{
			Summary:      summaryOf(result).String(),
			Imported:     []project.Project{},
			ImportResult: result,
		})
		return
	}

	outcome, err := s.deps.Imports.Run(r.Context(), csvText, importer.AlwaysConfirm)
	resp := ImportResponse{
		Summary:      summaryOf(outcome.Result).String(),
		Imported:     outcome.Imported,
		ImportResult: outcome.Result,
	}
	switch {
	case err == nil:
		resp.Committed = true
		writeJSONBody(w, http.StatusOK, resp)
	case errors.Is(err, importer.ErrNothingToImport):
		writeJSONBody(w, http.StatusUnprocessableEntity, resp)
	default:
		s.deps.Logger.Error("import failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "import failed")
	}
}

func summaryOf(result csvcodec.ImportResult) importer.Summary {
	return importer.Summary{
		Successful: len(result.Successful),
		Failed:     result.Failed,
		Errors:     result.Errors,
	}
}
