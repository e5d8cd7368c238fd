package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/jdvermeer/screenlist/internal/screening"
	"github.com/jdvermeer/screenlist/internal/web/pages"
)

// xlsxContentType is the MIME type for the annotated workbook download.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// The upload contract surfaces these messages verbatim to clients, hence
// the sentence casing.
var (
	errNoFilePart = errors.New("No file uploaded")
	errNoFileName = errors.New("No file selected")
)

// handleIndex renders the upload form page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.service.Stats()
	pages.Index(pages.IndexData{
		ImneoNames:       st.Imneo.Names,
		ImneoCompanies:   st.Imneo.Companies,
		XClientNames:     st.XClient.Names,
		XClientCompanies: st.XClient.Companies,
	}).Render(r.Context(), w)
}

// handleUpload screens an uploaded file and returns the annotated workbook
// as an attachment.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	// Parse multipart form
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		respondError(w, r, fmt.Errorf("parse upload form: %w", err), http.StatusBadRequest)
		return
	}

	header, err := uploadFileHeader(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	data, err := readUploadFile(header)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	mode := screening.ParseMode(r.FormValue("mode"))

	res, err := s.service.ScreenUpload(r.Context(), header.Filename, data, mode)
	if err != nil {
		respondScreenError(w, r, err)
		return
	}

	report, err := screening.WriteReport(res)
	if err != nil {
		respondError(w, r, fmt.Errorf("write report: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", screening.ReportFileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(report)))
	w.Header().Set("X-Screening-Id", res.ID)
	w.Write(report)
}

// handleScreen screens an uploaded file and returns the per-row outcomes
// as JSON instead of a workbook. Same multipart contract as handleUpload.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	// Parse multipart form
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		respondError(w, r, fmt.Errorf("parse upload form: %w", err), http.StatusBadRequest)
		return
	}

	header, err := uploadFileHeader(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	data, err := readUploadFile(header)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	mode := screening.ParseMode(r.FormValue("mode"))

	res, err := s.service.ScreenUpload(r.Context(), header.Filename, data, mode)
	if err != nil {
		respondScreenError(w, r, err)
		return
	}

	writeJSON(w, res)
}

// uploadFileHeader finds the uploaded file part in a parsed multipart form.
func uploadFileHeader(r *http.Request) (*multipart.FileHeader, error) {
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		return files[0], nil
	}
	// A file input left empty arrives as a value part with an empty
	// filename, not as a file part.
	if _, ok := r.MultipartForm.Value["file"]; ok {
		return nil, errNoFileName
	}
	return nil, errNoFilePart
}

// readUploadFile reads the full content of the uploaded file part.
func readUploadFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// respondScreenError maps a screening failure to its response. Decode
// failures surface as "Error reading file: ..."; limiter and context
// errors pass through unwrapped so they keep their own codes.
func respondScreenError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, screening.ErrBusy):
		respondError(w, r, err, http.StatusTooManyRequests)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, err, http.StatusInternalServerError)
	default:
		respondError(w, r, fmt.Errorf("Error reading file: %v", err), http.StatusInternalServerError)
	}
}

// healthResponse is the healthz payload: service status plus the runtime
// counters and reference group sizes.
type healthResponse struct {
	Status string `json:"status"`
	screening.Stats
}

// handleHealthz reports service health, limiter state and reference group
// sizes.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status: "ok",
		Stats:  s.service.Stats(),
	})
}
