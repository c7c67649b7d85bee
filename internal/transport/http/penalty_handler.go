package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pcnportal/internal/blobstore"
	"pcnportal/internal/config"
	apierrors "pcnportal/internal/errors"
	custommw "pcnportal/internal/middleware"
	"pcnportal/internal/validation"
)

// PenaltyHandler handles penalty-related HTTP requests with RFC 7807 compliance
type PenaltyHandler struct {
	ingest         IngestServiceInterface
	penalties      PenaltyReaderInterface
	lookupFile     string
	maxUploadBytes int64
	validator      *validation.WorkbookValidator
	requests       *custommw.ValidationMiddleware
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// workbookUploadRequest carries the client-supplied parts of an upload that
// are validated with struct tags before the file is touched.
type workbookUploadRequest struct {
	FileName string `json:"fileName" validate:"required,filename"`
}

// penaltySearchRequest carries the search query filters. Either filter may
// be absent, but a VRM that is present must look like a registration mark.
type penaltySearchRequest struct {
	TicketNo string `json:"ticketNo"`
	VRM      string `json:"vrm" validate:"omitempty,vrm"`
}

// NewPenaltyHandler creates a new penalty handler with RFC 7807 error handling
func NewPenaltyHandler(ingest IngestServiceInterface, penalties PenaltyReaderInterface, lookupFile string, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PenaltyHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.DefaultMaxUploadBytes
	}
	return &PenaltyHandler{
		ingest:         ingest,
		penalties:      penalties,
		lookupFile:     lookupFile,
		maxUploadBytes: maxUploadBytes,
		validator:      validation.NewWorkbookValidator(logger),
		requests:       custommw.NewValidationMiddleware(logger, errorHandler),
		logger:         logger.With(slog.String("component", "penalty_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes returns the penalty routes with proper Chi patterns
func (h *PenaltyHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.SearchRecords)
	r.Get("/search", h.SearchWorkbook)
	r.With(custommw.ContentTypeValidator("multipart/form-data")).Post("/upload", h.UploadWorkbook)
	r.Post("/process-files", h.ProcessFiles)

	return r
}

// SearchWorkbook handles GET /api/penalties/search. It reads the configured
// lookup workbook from the blob store and matches rows against the query
// filters. At least one filter is required.
func (h *PenaltyHandler) SearchWorkbook(w http.ResponseWriter, r *http.Request) {
	reqID := custommw.GetRequestID(r.Context())

	ticketNo := strings.TrimSpace(r.URL.Query().Get("ticketNo"))
	vrm := strings.TrimSpace(r.URL.Query().Get("vrm"))

	if ticketNo == "" && vrm == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingSearchFilter)
		return
	}
	if err := h.requests.ValidateStruct(penaltySearchRequest{TicketNo: ticketNo, VRM: vrm}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "searching lookup workbook",
		slog.String("request_id", reqID),
		slog.String("ticket_no", ticketNo),
		slog.String("vrm", vrm),
	)

	results, err := h.ingest.SearchFromFile(r.Context(), h.lookupFile, ticketNo, vrm)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "workbook search failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("file", h.lookupFile),
		)

		switch {
		case errors.Is(err, blobstore.ErrNotFound):
			h.errorHandler.HandleError(w, r, apierrors.WorkbookNotFoundError(h.lookupFile))
		case errors.Is(err, blobstore.ErrUnavailable):
			h.errorHandler.HandleError(w, r, apierrors.ErrStorageUnavailable)
		default:
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   results,
		"count":  len(results),
	})
}

// SearchRecords handles GET /api/penalties. It searches the persisted record
// store with case-insensitive substring matching; with no filters it returns
// an empty set rather than an error.
func (h *PenaltyHandler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	reqID := custommw.GetRequestID(r.Context())

	ticketNo := strings.TrimSpace(r.URL.Query().Get("ticketNo"))
	vrm := strings.TrimSpace(r.URL.Query().Get("vrm"))

	if err := h.requests.ValidateStruct(penaltySearchRequest{TicketNo: ticketNo, VRM: vrm}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "searching penalty records",
		slog.String("request_id", reqID),
		slog.String("ticket_no", ticketNo),
		slog.String("vrm", vrm),
	)

	results, err := h.penalties.Search(r.Context(), ticketNo, vrm)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "record search failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, apierrors.StorageError("search", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   results,
		"count":  len(results),
	})
}

// UploadWorkbook handles POST /api/penalties/upload. The workbook arrives as
// a multipart form file, is stored in the blob container under a timestamped
// name, and is bulk-ingested immediately.
func (h *PenaltyHandler) UploadWorkbook(w http.ResponseWriter, r *http.Request) {
	reqID := custommw.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.errorHandler.HandleError(w, r, apierrors.ErrFileTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid multipart form",
			map[string]interface{}{"error": err.Error()},
		))
		return
	}

	file, header, err := r.FormFile(config.UploadFieldName)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(config.UploadFieldName, "A workbook file is required"))
		return
	}
	defer file.Close()

	if err := h.requests.ValidateStruct(workbookUploadRequest{FileName: header.Filename}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if err := h.validator.ValidateName(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFileType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrFileTooLarge)
		return
	}

	if err := h.validator.ValidateContent(header.Filename, data); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity,
			"WORKBOOK_CORRUPTED",
			"Workbook could not be parsed",
			err.Error(),
		))
		return
	}

	h.logger.InfoContext(r.Context(), "uploading workbook",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int("size_bytes", len(data)),
	)

	storedName := timestampedName(header.Filename, time.Now().UTC())
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = config.ContentTypeXLSX
	}

	stored, result, err := h.ingest.UploadAndIngest(r.Context(), storedName, data, contentType)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upload ingest failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("filename", header.Filename),
		)

		if errors.Is(err, blobstore.ErrUnavailable) {
			h.errorHandler.HandleError(w, r, apierrors.ErrStorageUnavailable)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.IngestError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    "success",
		"fileName":  stored,
		"processed": result.Processed,
		"errors":    result.Errors,
	})
}

// ProcessFiles handles POST /api/penalties/process-files. It sweeps the blob
// container and bulk-ingests every workbook found there.
func (h *PenaltyHandler) ProcessFiles(w http.ResponseWriter, r *http.Request) {
	reqID := custommw.GetRequestID(r.Context())

	h.logger.InfoContext(r.Context(), "processing container workbooks",
		slog.String("request_id", reqID),
	)

	report, err := h.ingest.ProcessNewFiles(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "container sweep failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)

		if errors.Is(err, blobstore.ErrUnavailable) {
			h.errorHandler.HandleError(w, r, apierrors.ErrStorageUnavailable)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.IngestError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
		"count":  len(report.FilesProcessed),
	})
}

// ListFiles handles GET /api/files
func (h *PenaltyHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	reqID := custommw.GetRequestID(r.Context())

	files, err := h.ingest.ListFiles(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list files",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)

		if errors.Is(err, blobstore.ErrUnavailable) {
			h.errorHandler.HandleError(w, r, apierrors.ErrStorageUnavailable)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.StorageError("list", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   files,
		"count":  len(files),
	})
}

// timestampedName prefixes an upload with its arrival time so repeated
// uploads of the same workbook never collide in the container.
func timestampedName(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102T150405"), blobstore.SanitizeName(name))
}
