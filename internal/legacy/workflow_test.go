package legacy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWorkflowRunEndToEnd(t *testing.T) {
	var steps []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		steps = append(steps, key)
		switch {
		case key == "GET /projects/pr1":
			w.Write([]byte(`{"id":"pr1"}`))
		case key == "POST /projects/pr1/patients":
			w.Write([]byte(`{"id":"pt1"}`))
		case key == "POST /projects/pr1/patients/pt1/samples":
			w.Write([]byte(`{"id":"s1"}`))
		case key == "POST /projects/pr1/patients/pt1/samples/s1/sequencing":
			w.Write([]byte(`{"id":"sq1"}`))
		case strings.HasSuffix(r.URL.Path, "/upload"):
			w.Write([]byte(`{"file_id":"f1","upload_url":"/signed/f1"}`))
		case key == "PUT /signed/f1":
			w.WriteHeader(http.StatusOK)
		case key == "POST /projects/pr1/patients/pt1/samples/s1/sequencings/sq1/analysis":
			w.Write([]byte(`{"id":"a1"}`))
		default:
			t.Errorf("unexpected request %s", key)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	wf := NewWorkflow(New(srv.URL, "alice s3cret"), zerolog.Nop())
	analysisID, err := wf.Run(context.Background(), RunParams{
		ProjectID:       "pr1",
		PatientKey:      "P-001",
		SampleKey:       "S-001",
		SequencingKey:   "SQ-001",
		SampleSource:    SourceTissue,
		SequencingType:  WES,
		CallingGermline: CancerOnly,
		CancerType:      "LUAD",
		GenomeReference: HG19,
		Title:           "api run",
		AlterationFiles: []string{writeTempFile(t, "muts.vcf", "data")},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if analysisID != "a1" {
		t.Errorf("analysis id = %q", analysisID)
	}
	if steps[0] != "GET /projects/pr1" {
		t.Errorf("first step = %q, want project check", steps[0])
	}
}

func TestWorkflowRunStopsOnUnknownProject(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("project missing does not exist"))
	}))
	defer srv.Close()

	wf := NewWorkflow(New(srv.URL, "alice s3cret"), zerolog.Nop())
	_, err := wf.Run(context.Background(), RunParams{
		ProjectID:       "missing",
		SampleSource:    SourceTissue,
		SequencingType:  WES,
		CallingGermline: CancerOnly,
		GenomeReference: HG19,
	})
	if err == nil || !strings.Contains(err.Error(), "project missing does not exist") {
		t.Fatalf("err = %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (stop at project check)", requests)
	}
}

func TestWaitForAnalysisPollsUntilDone(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		status := "waiting"
		if n >= 3 {
			status = "done"
		}
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}))
	defer srv.Close()

	wf := NewWorkflow(New(srv.URL, "alice s3cret"), zerolog.Nop())
	status, err := wf.WaitForAnalysis(context.Background(), "pr1", "a1", time.Millisecond)
	if err != nil {
		t.Fatalf("WaitForAnalysis: %v", err)
	}
	if status != "done" {
		t.Errorf("status = %q", status)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("status calls = %d, want 3", got)
	}
}

func TestWaitForAnalysisHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "waiting"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	wf := NewWorkflow(New(srv.URL, "alice s3cret"), zerolog.Nop())
	_, err := wf.WaitForAnalysis(ctx, "pr1", "a1", time.Hour)
	if err == nil {
		t.Fatal("expected context error")
	}
}
