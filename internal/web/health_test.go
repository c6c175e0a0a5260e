// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package web

import (
	"net/http"
	"testing"

	"github.com/shilp-ai/creatorbot/internal/testutil"
	"github.com/shilp-ai/creatorbot/internal/util/syncx"
)

func TestHealthHandler(t *testing.T) {
	cases := map[string]struct {
		checks       map[string]HealthFunc
		wantResponse *HealthResponse
		wantStatus   int
	}{
		"no checks": {
			checks: map[string]HealthFunc{},
			wantResponse: &HealthResponse{
				OK:     true,
				Checks: map[string]CheckResponse{},
			},
			wantStatus: http.StatusOK,
		},
		"polling": {
			checks: map[string]HealthFunc{
				"telegram": func() (string, bool) { return "polling as @creator_bot", true },
			},
			wantResponse: &HealthResponse{
				OK: true,
				Checks: map[string]CheckResponse{
					"telegram": {OK: true, Status: "polling as @creator_bot"},
				},
			},
			wantStatus: http.StatusOK,
		},
		"one failing check fails the whole response": {
			checks: map[string]HealthFunc{
				"ok":       func() (string, bool) { return "ok", true },
				"telegram": func() (string, bool) { return "not polling", false },
			},
			wantResponse: &HealthResponse{
				OK: false,
				Checks: map[string]CheckResponse{
					"ok":       {OK: true, Status: "ok"},
					"telegram": {OK: false, Status: "not polling"},
				},
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			h := Health(mux)
			h.checks = syncx.Protect(tc.checks)

			got := send(t, mux, http.MethodGet, "/health", tc.wantStatus)
			testutil.AssertEqual(t, testutil.UnmarshalJSON[*HealthResponse](t, []byte(got)), tc.wantResponse)
		})
	}
}

func TestHealthHandlerMethods(t *testing.T) {
	mux := http.NewServeMux()
	Health(mux).RegisterFunc("telegram", func() (string, bool) { return "polling as @creator_bot", true })

	send(t, mux, http.MethodHead, "/health", http.StatusOK)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			got := send(t, mux, method, "/health", http.StatusMethodNotAllowed)
			testutil.AssertEqual(t, testutil.UnmarshalJSON[errorResponse](t, []byte(got)), errorResponse{
				Status: "error",
				Error:  "method not allowed",
			})
		})
	}
}

func TestHealthReturnsExisting(t *testing.T) {
	mux := http.NewServeMux()
	if Health(mux) != Health(mux) {
		t.Fatal("Health must return the handler already registered on mux")
	}
}

func TestHealthHandlerRegisterFuncDuplicate(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("RegisterFunc did not panic when using an already existing name")
		}
	}()

	h := Health(http.NewServeMux())
	h.RegisterFunc("telegram", func() (string, bool) { return "", true })
	h.RegisterFunc("telegram", func() (string, bool) { return "", true })
}
