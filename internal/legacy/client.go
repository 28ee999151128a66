// Package legacy provides the client for the original CGI-Clinics API at
// api.cgiclinics.eu. It authenticates with a combined "<user> <token>"
// credential and identifies resources by server-assigned ids rather than
// caller-chosen UUIDs. It shares nothing with the v2 client beyond the REST
// core.
package legacy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
)

// Client issues requests against the legacy API.
type Client struct {
	rest *rest.Client
}

// New creates a legacy Client. credential is the "<user> <token>" pair sent
// in the access_token header.
func New(baseURL, credential string, opts ...rest.ClientOption) *Client {
	return &Client{rest: rest.NewClient(baseURL, credential, opts...)}
}

// idResponse is the {"id": ...} envelope the legacy create endpoints return.
type idResponse struct {
	ID string `json:"id"`
}

// GetProject fetches a project, which doubles as an existence check. The API
// answers 400 for unknown projects.
func (c *Client) GetProject(ctx context.Context, projectID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/projects/"+projectID, nil, nil)
}

// GetPatient fetches a patient.
func (c *Client) GetPatient(ctx context.Context, projectID, patientID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/projects/"+projectID+"/patients/"+patientID, nil, nil)
}

// CreatePatient registers a patient under the given key and returns the
// server-assigned id.
func (c *Client) CreatePatient(ctx context.Context, projectID, key string) (string, error) {
	data, err := c.rest.Do(ctx, http.MethodPost, "/projects/"+projectID+"/patients",
		nil, map[string]string{"key": key})
	if err != nil {
		return "", err
	}
	res, err := rest.JSON[idResponse](data)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// DeletePatient removes a patient.
func (c *Client) DeletePatient(ctx context.Context, projectID, patientID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, "/projects/"+projectID+"/patients/"+patientID, nil, nil)
	return err
}

// CreateSample registers a sample on a patient and returns the
// server-assigned id.
func (c *Client) CreateSample(ctx context.Context, projectID, patientID, key string, source SampleSource, cancerType string) (string, error) {
	if err := source.Validate(); err != nil {
		return "", err
	}
	data, err := c.rest.Do(ctx, http.MethodPost,
		"/projects/"+projectID+"/patients/"+patientID+"/samples",
		nil, map[string]string{"key": key, "source": string(source), "cancertype": cancerType})
	if err != nil {
		return "", err
	}
	res, err := rest.JSON[idResponse](data)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// CreateSequencing registers a sequencing on a sample and returns the
// server-assigned id.
func (c *Client) CreateSequencing(ctx context.Context, projectID, patientID, sampleID, key string, seqType SequencingType, germline MutCallGermline) (string, error) {
	if err := seqType.Validate(); err != nil {
		return "", err
	}
	if err := germline.Validate(); err != nil {
		return "", err
	}
	data, err := c.rest.Do(ctx, http.MethodPost,
		samplePath(projectID, patientID, sampleID)+"/sequencing",
		nil, map[string]string{"key": key, "type": string(seqType), "mut_call_germline": string(germline)})
	if err != nil {
		return "", err
	}
	res, err := rest.JSON[idResponse](data)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// RequestUpload asks for a signed upload ticket for a file with the given
// extension. A leading dot on the extension is stripped.
func (c *Client) RequestUpload(ctx context.Context, projectID, patientID, sampleID, sequencingID, extension string) (UploadTicket, error) {
	extension = strings.TrimPrefix(extension, ".")
	q := url.Values{}
	q.Set("extension", extension)
	data, err := c.rest.Do(ctx, http.MethodGet,
		sequencingPath(projectID, patientID, sampleID, sequencingID)+"/upload", q, nil)
	if err != nil {
		return UploadTicket{}, err
	}
	return rest.JSON[UploadTicket](data)
}

// UploadFile PUTs the file body to a signed upload URL. Relative URLs are
// resolved against the API root.
func (c *Client) UploadFile(ctx context.Context, uploadURL, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()
	return c.rest.Put(ctx, uploadURL, f)
}

// StartAnalysis starts an analysis over previously uploaded files and
// returns the server-assigned analysis id.
func (c *Client) StartAnalysis(ctx context.Context, projectID, patientID, sampleID, sequencingID, title string, reference GenomeReference, fileIDs []string) (string, error) {
	if err := reference.Validate(); err != nil {
		return "", err
	}
	body := map[string]any{
		"title":     title,
		"reference": string(reference),
		"file_ids":  fileIDs,
	}
	data, err := c.rest.Do(ctx, http.MethodPost,
		sequencingPath(projectID, patientID, sampleID, sequencingID)+"/analysis", nil, body)
	if err != nil {
		return "", err
	}
	res, err := rest.JSON[idResponse](data)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// AnalysisStatus returns the current status of an analysis and whether it has
// finished. An analysis is done once the status leaves "waiting".
func (c *Client) AnalysisStatus(ctx context.Context, projectID, analysisID string) (string, bool, error) {
	data, err := c.rest.Do(ctx, http.MethodGet, "/projects/"+projectID+"/analysis/"+analysisID, nil, nil)
	if err != nil {
		return "", false, err
	}
	res, err := rest.JSON[struct {
		Status string `json:"status"`
	}](data)
	if err != nil {
		return "", false, err
	}
	return res.Status, res.Status != AnalysisStatusWaiting, nil
}

// DownloadResults fetches the result file list of a finished analysis and
// writes every file into outputDir. Unlike the other sequencing endpoints,
// the results route is not nested under the patient and uses a singular
// "sequencing" segment; the ids travel in the body as well.
func (c *Client) DownloadResults(ctx context.Context, projectID, sampleID, sequencingID, analysisID, outputDir string) error {
	body := map[string]string{
		"project_id":    projectID,
		"sample_id":     sampleID,
		"sequencing_id": sequencingID,
		"analysis_id":   analysisID,
	}
	data, err := c.rest.Do(ctx, http.MethodPost,
		"/projects/"+projectID+"/samples/"+sampleID+"/sequencing/"+sequencingID+"/analysis/"+analysisID+"/results", nil, body)
	if err != nil {
		return err
	}
	res, err := rest.JSON[struct {
		Files []ResultFile `json:"files"`
	}](data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, f := range res.Files {
		if err := c.downloadTo(ctx, f.URL, filepath.Join(outputDir, f.Name)); err != nil {
			return fmt.Errorf("download %s: %w", f.Name, err)
		}
	}
	return nil
}

func (c *Client) downloadTo(ctx context.Context, rawURL, outputFile string) error {
	if strings.HasPrefix(rawURL, "/") {
		return c.rest.Download(ctx, rawURL, nil, outputFile)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return os.WriteFile(outputFile, data, 0o644)
}

func samplePath(projectID, patientID, sampleID string) string {
	return "/projects/" + projectID + "/patients/" + patientID + "/samples/" + sampleID
}

func sequencingPath(projectID, patientID, sampleID, sequencingID string) string {
	return samplePath(projectID, patientID, sampleID) + "/sequencings/" + sequencingID
}
