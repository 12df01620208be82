package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medflow/resume-parser/pkg/errors"
	"github.com/medflow/resume-parser/pkg/i18n"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_WrapsEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]string{"status": "healthy"})

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, map[string]interface{}{"status": "healthy"}, resp.Data)
}

func TestRawJSON_NoEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	RawJSON(rr, http.StatusOK, map[string]interface{}{"status": 200, "data": "hello parser"})

	assert.JSONEq(t, `{"status":200,"data":"hello parser"}`, rr.Body.String())
}

func TestErrorLocalized(t *testing.T) {
	tests := []struct {
		name       string
		locale     string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "app error in german",
			locale:     i18n.LocaleGerman,
			err:        errors.EmptyDocument(),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "EMPTY_DOCUMENT",
			wantMsg:    "Aus dem Dokument konnte kein Text extrahiert werden",
		},
		{
			name:       "app error with params",
			locale:     i18n.LocaleEnglish,
			err:        errors.UnsupportedMediaType("image/png"),
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   "UNSUPPORTED_MEDIA_TYPE",
			wantMsg:    "Unsupported document type image/png. Upload a PDF or plain text file.",
		},
		{
			name:       "plain error becomes internal",
			locale:     i18n.LocaleEnglish,
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(i18n.WithLocale(req.Context(), tt.locale))
			rr := httptest.NewRecorder()

			ErrorLocalized(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
	})

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))
	})
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/parse", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "INTERNAL_ERROR")
}

func TestValidate(t *testing.T) {
	type upload struct {
		Filename string `form:"filename" validate:"required,max=10"`
	}

	require.NoError(t, Validate(upload{Filename: "cv.pdf"}))

	err := Validate(upload{})
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "this field is required", appErr.Details["filename"])

	err = Validate(upload{Filename: "a-very-long-name.pdf"})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "must be at most 10 characters", appErr.Details["filename"])
}
