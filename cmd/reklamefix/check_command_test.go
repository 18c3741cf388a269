package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"reklamefix/internal/testsupport"
)

func TestCheckReportsEachResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithEndpoint(srv.URL+"/central/"), testsupport.WithIDsFile("uuid:a"))

	stdout, _, err := env.run(t, "check")
	if err != nil {
		t.Fatalf("check returned error: %v\n%s", err, stdout)
	}
	requireContains(t, stdout, "State directory:")
	requireContains(t, stdout, "Identifier list:")
	requireContains(t, stdout, "[OK] Reachable")
}

func TestCheckFailsWhenDOMSRejectsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithEndpoint(srv.URL))

	stdout, _, err := env.run(t, "check")
	if err == nil {
		t.Fatal("expected check to fail")
	}
	requireContains(t, stdout, "auth failed")
}
