// Package analysis provides the CGI-Clinics analysis client: starting
// analyses, the temporal file upload workflow, result downloads and deletion.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

// uploadType is the slot type for analysis input files.
const uploadType = "ANALYSIS_INPUT"

// Result file kinds served by the analysis result endpoint.
const (
	ResultSummary    = "summary"
	ResultMutations  = "mutations"
	ResultBiomarkers = "biomarkers"
	ResultCNAs       = "cnas"
	ResultFusions    = "fusions"
)

// Client issues analysis requests against the v2 API.
type Client struct {
	rest *rest.Client
}

// New creates an analysis Client on top of the shared REST core.
func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// GetAll returns every analysis of a project.
func (c *Client) GetAll(ctx context.Context, projectUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/analysis/full", nil, nil)
}

// List returns one page of a project's analyses.
func (c *Client) List(ctx context.Context, projectUUID string, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/analysis/", page.Normalized().Query(nil), nil)
}

// Get returns a single analysis.
func (c *Client) Get(ctx context.Context, projectUUID, analysisUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, analysisPath(projectUUID, analysisUUID), nil, nil)
}

// Delete removes an analysis.
func (c *Client) Delete(ctx context.Context, projectUUID, analysisUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, analysisPath(projectUUID, analysisUUID), nil, nil)
	return err
}

// DownloadResult writes one analysis result file (summary, mutations,
// biomarkers, cnas or fusions) to outputFile, creating parent directories.
func (c *Client) DownloadResult(ctx context.Context, projectUUID, analysisUUID, kind, outputFile string) error {
	return c.rest.Download(ctx, analysisPath(projectUUID, analysisUUID)+"/result/"+kind, nil, outputFile)
}

// DownloadAllResults writes every result kind into outputDir, one file per
// kind, named <kind>.tsv except the summary which is summary.txt.
func (c *Client) DownloadAllResults(ctx context.Context, projectUUID, analysisUUID, outputDir string) error {
	files := map[string]string{
		ResultSummary:    "summary.txt",
		ResultMutations:  "mutations.tsv",
		ResultBiomarkers: "biomarkers.tsv",
		ResultCNAs:       "cnas.tsv",
		ResultFusions:    "fusions.tsv",
	}
	for kind, name := range files {
		if err := c.DownloadResult(ctx, projectUUID, analysisUUID, kind, filepath.Join(outputDir, name)); err != nil {
			return fmt.Errorf("download %s: %w", kind, err)
		}
	}
	return nil
}

// createBody is the JSON payload shared by Create and CreateDirect.
type createBody struct {
	PatientID                 *string  `json:"patientId,omitempty"`
	SampleID                  *string  `json:"sampleId,omitempty"`
	SequencingID              *string  `json:"sequencingId,omitempty"`
	AnalysisID                string   `json:"analysisId"`
	SampleSource              *string  `json:"sampleSource,omitempty"`
	TumorType                 *string  `json:"tumorType,omitempty"`
	SequencingType            *string  `json:"sequencingType,omitempty"`
	SequencingTypeOther       *string  `json:"sequencingTypeOther,omitempty"`
	ReferenceGenome           string   `json:"referenceGenome"`
	SequencingGermlineControl *string  `json:"sequencingGermlineControl,omitempty"`
	InputFiles                []string `json:"inputFiles,omitempty"`
	InputText                 *string  `json:"inputText,omitempty"`
	Format                    *string  `json:"format,omitempty"`
}

// Create starts an analysis on an existing sequencing. Local input files are
// pushed through the temporal upload workflow first; their stored UUIDs are
// what the create call references.
func (c *Client) Create(ctx context.Context, projectUUID string, req CreateRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	body := createBody{
		AnalysisID:      req.AnalysisID,
		ReferenceGenome: string(req.ReferenceGenome),
	}
	if err := c.attachInput(ctx, projectUUID, &body, req.InputFiles, req.InputText, req.InputFormat); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPost, "/project/"+projectUUID+"/analysis", nil, body)
}

// CreateDirect starts an analysis creating patient, sample and sequencing in
// the same call.
func (c *Client) CreateDirect(ctx context.Context, projectUUID string, req DirectRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	source := string(req.SampleSource)
	germline := string(req.SequencingGermlineControl)
	body := createBody{
		PatientID:                 &req.PatientID,
		SampleID:                  &req.SampleID,
		SequencingID:              &req.SequencingID,
		AnalysisID:                req.AnalysisID,
		SampleSource:              &source,
		TumorType:                 &req.TumorType,
		SequencingType:            &req.SequencingType,
		ReferenceGenome:           string(req.ReferenceGenome),
		SequencingGermlineControl: &germline,
	}
	if req.SequencingTypeOther != "" {
		body.SequencingTypeOther = &req.SequencingTypeOther
	}
	if err := c.attachInput(ctx, projectUUID, &body, req.InputFiles, req.InputText, req.InputFormat); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPost, "/project/"+projectUUID+"/direct-analysis", nil, body)
}

func (c *Client) attachInput(ctx context.Context, projectUUID string, body *createBody, files []string, text, format string) error {
	if text != "" {
		body.InputText = &text
		body.Format = &format
		return nil
	}
	for _, f := range files {
		fileUUID, err := c.UploadFile(ctx, projectUUID, f)
		if err != nil {
			return fmt.Errorf("upload %s: %w", f, err)
		}
		body.InputFiles = append(body.InputFiles, fileUUID)
	}
	return nil
}

// ===================== Temporal upload workflow =====================

// RequestTemporalUpload asks the API for a fresh upload slot.
func (c *Client) RequestTemporalUpload(ctx context.Context, projectUUID string) (UploadSlot, error) {
	data, err := c.rest.Do(ctx, http.MethodPost, "/project/"+projectUUID+"/temporal-upload",
		nil, map[string]string{"type": uploadType})
	if err != nil {
		return UploadSlot{}, err
	}
	return rest.JSON[UploadSlot](data)
}

// UploadToSlot pushes a local file into an upload slot and returns the stored
// file UUID. The slot is validated first; no request is issued for an
// incomplete slot.
func (c *Client) UploadToSlot(ctx context.Context, projectUUID string, slot UploadSlot, filePath string) (string, error) {
	if err := slot.Validate(); err != nil {
		return "", err
	}
	data, err := c.rest.PostMultipart(ctx, "/public/project/"+projectUUID+"/temporal-upload/"+slot.UUID,
		map[string]string{"type": uploadType, "code": slot.Code}, "file", filePath)
	if err != nil {
		return "", err
	}
	stored, err := rest.JSON[struct {
		UUID string `json:"uuid"`
	}](data)
	if err != nil {
		return "", err
	}
	return stored.UUID, nil
}

// UploadFile requests a slot and pushes the file into it. On failure the
// error propagates; an already-issued slot is simply left unreferenced.
func (c *Client) UploadFile(ctx context.Context, projectUUID, filePath string) (string, error) {
	slot, err := c.RequestTemporalUpload(ctx, projectUUID)
	if err != nil {
		return "", err
	}
	return c.UploadToSlot(ctx, projectUUID, slot, filePath)
}

func analysisPath(projectUUID, analysisUUID string) string {
	return "/project/" + projectUUID + "/analysis/" + analysisUUID
}
