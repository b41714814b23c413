package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"runnerd/pkg/types"
)

func TestCacheDelete_GenericErrorMaps500(t *testing.T) {
	svc := &mockService{deleteErr: errors.New("disk on fire")}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cache/k1", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != http.StatusInternalServerError || body.Error == "" {
		t.Fatalf("unexpected error payload: %+v", body)
	}
}

func TestCacheClear_HTTPErrorKeepsStatusCode(t *testing.T) {
	svc := &mockService{clearErr: mockHTTPError{msg: "tier unavailable", code: http.StatusServiceUnavailable}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cache", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
