package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func send(t *testing.T, h http.Handler, method, path string, wantStatus int) string {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if wantStatus != rec.Code {
		t.Fatalf("want response code %d, got %d", wantStatus, rec.Code)
	}
	return rec.Body.String()
}
