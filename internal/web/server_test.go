package web_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jdvermeer/screenlist/internal/config"
	"github.com/jdvermeer/screenlist/internal/screening"
	"github.com/jdvermeer/screenlist/internal/web"
)

func testGroups() screening.Groups {
	groups := screening.EmptyGroups()
	groups.Imneo.Names.Add("jane doe")
	groups.Imneo.Companies.Add("evil corp")
	groups.XClient.Names.Add("bob jones")
	groups.XClient.Companies.Add("acme corp")
	return groups
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 5 * time.Second
	cfg.Upload.MaxFileSize = 1 << 20
	cfg.Rate.Enabled = false
	return cfg
}

func newTestServer(t *testing.T) *web.Server {
	t.Helper()
	svc := screening.NewService(testGroups(), 2, time.Second)
	return web.NewServer(svc, testConfig())
}

// multipartBody builds a multipart form with a file part and an optional
// mode field. The mode field is omitted when mode is empty.
func multipartBody(t *testing.T, filename string, content []byte, mode string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	if mode != "" {
		require.NoError(t, mw.WriteField("mode", mode))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postUpload(t *testing.T, srv *web.Server, path, filename string, content []byte, mode string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content, mode)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func acceptJSON() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	return h
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/upload"`)
	assert.Contains(t, body, `name="file"`)
	assert.Contains(t, body, `name="mode"`)
	assert.Contains(t, body, "IMNEO: 1 names, 1 companies")
	assert.Contains(t, body, "X-Client: 1 names, 1 companies")
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
}

func TestUpload_NoFilePart(t *testing.T) {
	srv := newTestServer(t)

	// Multipart form with a mode field but no file part at all.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", "candidate"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No file uploaded", resp.Error)
	assert.Equal(t, "SCR001", resp.Code)
	assert.NotEmpty(t, resp.Message)
	assert.NotEmpty(t, resp.Action)
}

func TestUpload_NoFileSelected(t *testing.T) {
	srv := newTestServer(t)

	// A browser submits an untouched file input as a part with an empty
	// filename.
	rec := postUpload(t, srv, "/upload", "", nil, "candidate", acceptJSON())

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No file selected", resp.Error)
	assert.Equal(t, "SCR002", resp.Code)
}

func TestUpload_ReturnsAnnotatedWorkbook(t *testing.T) {
	srv := newTestServer(t)

	csv := "First Name,Last Name,Company Table Data\n" +
		"Jane,Doe,Initech\n" +
		"Carol,White,Acme Corp\n" +
		"Dave,Green,Freelance\n"
	rec := postUpload(t, srv, "/upload", "list.csv", []byte(csv), "candidate", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="checked_list.xlsx"`, rec.Header().Get("Content-Disposition"))

	_, err := uuid.Parse(rec.Header().Get("X-Screening-Id"))
	require.NoError(t, err, "X-Screening-Id should be a UUID")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"First Name", "Last Name", "Company Table Data", "Check Result"}, rows[0])
	assert.Equal(t, screening.StatusImneo, rows[1][3])
	assert.Equal(t, screening.StatusXClientCandidate, rows[2][3])
	assert.Equal(t, screening.StatusSafe, rows[3][3])
}

func TestUpload_DefaultsToClientMode(t *testing.T) {
	srv := newTestServer(t)

	csv := "First Name,Last Name,Company\nCarol,White,Acme Corp\n"
	rec := postUpload(t, srv, "/upload", "list.csv", []byte(csv), "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, screening.StatusXClientRelation, rows[1][3])
}

func TestUpload_CorruptWorkbook(t *testing.T) {
	srv := newTestServer(t)

	rec := postUpload(t, srv, "/upload", "list.xlsx", []byte("not a workbook"), "candidate", acceptJSON())

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Error reading file: ")
	assert.Equal(t, "SCR003", resp.Code)
}

func TestUpload_FileTooLarge(t *testing.T) {
	svc := screening.NewService(testGroups(), 2, time.Second)
	cfg := testConfig()
	cfg.Upload.MaxFileSize = 1024
	srv := web.NewServer(svc, cfg)

	rec := postUpload(t, srv, "/upload", "list.csv", bytes.Repeat([]byte("a"), 4096), "candidate", acceptJSON())

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SCR007", resp.Code)
}

func TestUpload_ErrorPageForBrowser(t *testing.T) {
	srv := newTestServer(t)

	// No Accept header: a browser form post gets the HTML error page.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", "candidate"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "SCR001")
	assert.Contains(t, rec.Body.String(), "Screening failed")
}

func TestScreenAPI(t *testing.T) {
	srv := newTestServer(t)

	csv := "First Name,Last Name,Company\n" +
		"Jane,Doe,Initech\n" +
		"Bob,Jones,Freelance\n" +
		"Dave,Green,Nowhere\n"
	rec := postUpload(t, srv, "/api/screen", "list.csv", []byte(csv), "candidate", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp struct {
		ID       string `json:"id"`
		Mode     string `json:"mode"`
		Outcomes []struct {
			Row    int    `json:"row"`
			Status string `json:"status"`
			Color  string `json:"color"`
		} `json:"outcomes"`
		Summary struct {
			Total   int `json:"total"`
			Imneo   int `json:"imneo"`
			XClient int `json:"xclient"`
			Safe    int `json:"safe"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "candidate", resp.Mode)

	require.Len(t, resp.Outcomes, 3)
	assert.Equal(t, 1, resp.Outcomes[0].Row)
	assert.Equal(t, screening.StatusImneo, resp.Outcomes[0].Status)
	assert.Equal(t, screening.ColorRed, resp.Outcomes[0].Color)
	assert.Equal(t, screening.StatusXClientCandidate, resp.Outcomes[1].Status)
	assert.Equal(t, screening.StatusSafe, resp.Outcomes[2].Status)

	assert.Equal(t, 3, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Imneo)
	assert.Equal(t, 1, resp.Summary.XClient)
	assert.Equal(t, 1, resp.Summary.Safe)
}

func TestScreenAPI_EmptyFile(t *testing.T) {
	srv := newTestServer(t)

	rec := postUpload(t, srv, "/api/screen", "empty.csv", nil, "candidate", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Error reading file: ")
	assert.Equal(t, "SCR004", resp.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status        string `json:"status"`
		MaxConcurrent int    `json:"max_concurrent"`
		Imneo         struct {
			Names     int `json:"names"`
			Companies int `json:"companies"`
		} `json:"imneo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.MaxConcurrent)
	assert.Equal(t, 1, resp.Imneo.Names)
	assert.Equal(t, 1, resp.Imneo.Companies)
}

func TestRateLimit(t *testing.T) {
	svc := screening.NewService(testGroups(), 2, time.Second)
	cfg := testConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 3
	srv := web.NewServer(svc, cfg)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RATE001", resp.Code)
}
