package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cgi-clinics/cgiclinics-go/internal/domain/sample"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/sequencing"
	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(rest.NewClient(srv.URL, "tok"))
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ===================== Input validation =====================

func TestCreateInputValidation(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "neither files nor text",
			req:     CreateRequest{AnalysisID: "a1", ReferenceGenome: HG38},
			wantErr: ErrNoInput,
		},
		{
			name: "both files and text",
			req: CreateRequest{AnalysisID: "a1", ReferenceGenome: HG38,
				InputFiles: []string{"x.vcf"}, InputText: "BRAF V600E", InputFormat: "PROTEIN"},
			wantErr: ErrBothInputs,
		},
		{
			name: "text without format",
			req: CreateRequest{AnalysisID: "a1", ReferenceGenome: HG38,
				InputText: "BRAF V600E"},
			wantErr: ErrTextWithoutFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Create(ctx, "pr1", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if requests != 0 {
		t.Errorf("invalid requests reached the server %d times", requests)
	}
}

func TestCreateRejectsInvalidReferenceGenome(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Create(context.Background(), "pr1",
		CreateRequest{AnalysisID: "a1", ReferenceGenome: "GRCh38", InputText: "x", InputFormat: "VCF"})
	if err == nil || !strings.Contains(err.Error(), "invalid reference genome") {
		t.Errorf("err = %v", err)
	}
}

func TestCreateWithInputText(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/pr1/analysis" {
			t.Errorf("path = %q", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &got)
		w.Write([]byte(`{"uuid":"a1"}`))
	})

	data, err := c.Create(context.Background(), "pr1", CreateRequest{
		AnalysisID:      "run-7",
		ReferenceGenome: HG19,
		InputText:       "BRAF V600E",
		InputFormat:     "PROTEIN",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if string(data) != `{"uuid":"a1"}` {
		t.Errorf("response = %s", data)
	}
	if got["analysisId"] != "run-7" || got["referenceGenome"] != "HG19" ||
		got["inputText"] != "BRAF V600E" || got["format"] != "PROTEIN" {
		t.Errorf("body = %v", got)
	}
	if _, present := got["inputFiles"]; present {
		t.Error("inputFiles must be omitted for text input")
	}
}

// ===================== Upload workflow =====================

func TestUploadFileEndToEnd(t *testing.T) {
	var slotBody map[string]string
	var uploadCode, uploadKind, uploadPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/project/pr1/temporal-upload":
			raw, _ := io.ReadAll(r.Body)
			json.Unmarshal(raw, &slotBody)
			w.Write([]byte(`{"uuid":"p1","code":"abc"}`))
		case strings.HasPrefix(r.URL.Path, "/public/project/pr1/temporal-upload/"):
			uploadPath = r.URL.Path
			r.ParseMultipartForm(1 << 20)
			uploadCode = r.FormValue("code")
			uploadKind = r.FormValue("type")
			if _, _, err := r.FormFile("file"); err != nil {
				t.Errorf("file part: %v", err)
			}
			w.Write([]byte(`{"uuid":"f1"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(rest.NewClient(srv.URL, "tok"))
	input := writeTempFile(t, "input.vcf", "##fileformat=VCFv4.2\n")

	fileUUID, err := c.UploadFile(context.Background(), "pr1", input)
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if fileUUID != "f1" {
		t.Errorf("file uuid = %q, want f1", fileUUID)
	}
	if slotBody["type"] != "ANALYSIS_INPUT" {
		t.Errorf("slot request body = %v", slotBody)
	}
	if uploadPath != "/public/project/pr1/temporal-upload/p1" {
		t.Errorf("upload path = %q", uploadPath)
	}
	if uploadCode != "abc" || uploadKind != "ANALYSIS_INPUT" {
		t.Errorf("multipart fields code=%q type=%q", uploadCode, uploadKind)
	}
}

func TestUploadToSlotValidatesSlotBeforeRequest(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	input := writeTempFile(t, "input.vcf", "data")

	tests := []struct {
		name string
		slot UploadSlot
	}{
		{"missing uuid", UploadSlot{Code: "abc"}},
		{"missing code", UploadSlot{UUID: "p1"}},
		{"empty slot", UploadSlot{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.UploadToSlot(context.Background(), "pr1", tt.slot, input)
			if !errors.Is(err, ErrIncompleteSlot) {
				t.Errorf("err = %v, want ErrIncompleteSlot", err)
			}
		})
	}
	if requests != 0 {
		t.Errorf("upload call issued %d times for invalid slots", requests)
	}
}

func TestUploadToSlotMissingLocalFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a missing local file")
	})
	_, err := c.UploadToSlot(context.Background(), "pr1", UploadSlot{UUID: "p1", Code: "abc"}, "/no/such/input.vcf")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateUploadsFilesFirst(t *testing.T) {
	uploads := 0
	var created map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/project/pr1/temporal-upload":
			w.Write([]byte(`{"uuid":"slot","code":"c"}`))
		case strings.HasPrefix(r.URL.Path, "/public/"):
			uploads++
			w.Write([]byte(`{"uuid":"file-` + string(rune('0'+uploads)) + `"}`))
		case r.URL.Path == "/project/pr1/analysis":
			raw, _ := io.ReadAll(r.Body)
			json.Unmarshal(raw, &created)
			w.Write([]byte(`{"uuid":"a1"}`))
		}
	}))
	defer srv.Close()

	c := New(rest.NewClient(srv.URL, "tok"))
	f1 := writeTempFile(t, "one.vcf", "1")
	f2 := writeTempFile(t, "two.vcf", "2")

	_, err := c.Create(context.Background(), "pr1", CreateRequest{
		AnalysisID:      "run-1",
		ReferenceGenome: HG38,
		InputFiles:      []string{f1, f2},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if uploads != 2 {
		t.Errorf("uploads = %d, want 2", uploads)
	}
	files, ok := created["inputFiles"].([]any)
	if !ok || len(files) != 2 {
		t.Fatalf("inputFiles = %v", created["inputFiles"])
	}
	if files[0] != "file-1" || files[1] != "file-2" {
		t.Errorf("inputFiles = %v", files)
	}
}

// ===================== Direct analysis =====================

func TestCreateDirectSendsFullPayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/pr1/direct-analysis" {
			t.Errorf("path = %q", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &got)
		w.Write([]byte(`{"uuid":"a1"}`))
	})

	_, err := c.CreateDirect(context.Background(), "pr1", DirectRequest{
		PatientID:                 "P-001",
		SampleID:                  "S-001",
		SequencingID:              "SQ-001",
		AnalysisID:                "A-001",
		SampleSource:              sample.SourceBlood,
		TumorType:                 "LUAD",
		SequencingType:            "WES",
		ReferenceGenome:           HG38,
		SequencingGermlineControl: sequencing.GermlineNo,
		InputText:                 "BRAF V600E",
		InputFormat:               "PROTEIN",
	})
	if err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}
	for k, want := range map[string]string{
		"patientId": "P-001", "sampleId": "S-001", "sequencingId": "SQ-001",
		"analysisId": "A-001", "sampleSource": "BLOOD", "tumorType": "LUAD",
		"sequencingType": "WES", "referenceGenome": "HG38",
		"sequencingGermlineControl": "NO",
	} {
		if got[k] != want {
			t.Errorf("body[%s] = %v, want %q", k, got[k], want)
		}
	}
	if _, present := got["sequencingTypeOther"]; present {
		t.Error("sequencingTypeOther must be omitted when empty")
	}
}

func TestCreateDirectValidatesInput(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.CreateDirect(context.Background(), "pr1", DirectRequest{
		AnalysisID:                "a1",
		ReferenceGenome:           HG19,
		SampleSource:              sample.SourceUnknown,
		SequencingGermlineControl: sequencing.GermlineUnknown,
	})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("err = %v, want ErrNoInput", err)
	}
}

func TestCreateDirectValidatesVocabularies(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	ctx := context.Background()

	base := DirectRequest{
		AnalysisID:                "a1",
		ReferenceGenome:           HG38,
		SampleSource:              sample.SourceBlood,
		SequencingGermlineControl: sequencing.GermlineNo,
		InputText:                 "BRAF V600E",
		InputFormat:               "PROTEIN",
	}

	badSource := base
	badSource.SampleSource = sample.Source("blood")
	if _, err := c.CreateDirect(ctx, "pr1", badSource); err == nil || !strings.Contains(err.Error(), "invalid sample source") {
		t.Errorf("err = %v, want invalid sample source", err)
	}

	badGermline := base
	badGermline.SequencingGermlineControl = sequencing.GermlineControl("MAYBE")
	if _, err := c.CreateDirect(ctx, "pr1", badGermline); err == nil || !strings.Contains(err.Error(), "invalid germline control") {
		t.Errorf("err = %v, want invalid germline control", err)
	}

	if requests != 0 {
		t.Errorf("invalid requests reached the server %d times", requests)
	}
}

// ===================== Listing and results =====================

func TestListUsesTrailingSlashAndPagination(t *testing.T) {
	var gotPath, size, page string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		size = r.URL.Query().Get("size")
		page = r.URL.Query().Get("page")
		w.Write([]byte(`{"content":[]}`))
	})

	if _, err := c.List(context.Background(), "pr1", pagination.Page{Size: 40, Page: 5}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotPath != "/project/pr1/analysis/" {
		t.Errorf("path = %q", gotPath)
	}
	if size != "40" || page != "5" {
		t.Errorf("size=%q page=%q", size, page)
	}
}

func TestDownloadResultWritesFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/pr1/analysis/a1/result/mutations" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte("gene\tmutation\n"))
	})

	out := filepath.Join(t.TempDir(), "results", "mutations.tsv")
	if err := c.DownloadResult(context.Background(), "pr1", "a1", ResultMutations, out); err != nil {
		t.Fatalf("DownloadResult: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "gene\tmutation\n" {
		t.Errorf("content = %q", data)
	}
}

func TestDownloadAllResults(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte("data"))
	})

	dir := t.TempDir()
	if err := c.DownloadAllResults(context.Background(), "pr1", "a1", dir); err != nil {
		t.Fatalf("DownloadAllResults: %v", err)
	}
	if len(paths) != 5 {
		t.Errorf("requests = %d, want 5", len(paths))
	}
	for _, name := range []string{"summary.txt", "mutations.tsv", "biomarkers.tsv", "cnas.tsv", "fusions.tsv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestGetErrorEmbedsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("analysis a9 not found"))
	})

	_, err := c.Get(context.Background(), "pr1", "a9")
	if err == nil || !strings.Contains(err.Error(), "analysis a9 not found") {
		t.Errorf("err = %v", err)
	}
}
