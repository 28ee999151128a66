// Package patient provides the CGI-Clinics patient client. Patients belong to
// a project and are created under a caller-chosen UUID.
package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

// Client issues patient requests against the v2 API.
type Client struct {
	rest *rest.Client
}

// New creates a patient Client on top of the shared REST core.
func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// GetAll returns every patient visible to the token, narrowed by the filter.
func (c *Client) GetAll(ctx context.Context, f Filter) (json.RawMessage, error) {
	q := url.Values{}
	setIf(q, "project_uuid", f.ProjectUUID)
	setIf(q, "patient_id", f.PatientID)
	setIf(q, "gender", string(f.Gender))
	setIf(q, "diagnosis_date_equals", f.DiagnosisDateEquals)
	setIf(q, "last_cgi_analysis_date_equals", f.LastCGIAnalysisDateEquals)
	setIf(q, "birth_date_before", f.BirthDateBefore)
	setIf(q, "birth_date_after", f.BirthDateAfter)
	return c.rest.Do(ctx, http.MethodGet, "/patient/full", q, nil)
}

// List returns one page of a project's patients.
func (c *Client) List(ctx context.Context, projectUUID string, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/"+projectUUID+"/patient", page.Normalized().Query(nil), nil)
}

// Get returns a single patient.
func (c *Client) Get(ctx context.Context, projectUUID, patientUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, patientPath(projectUUID, patientUUID), nil, nil)
}

// Create registers a patient under the caller-chosen UUID.
func (c *Client) Create(ctx context.Context, projectUUID, patientUUID string, rec Record) (json.RawMessage, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPost, patientPath(projectUUID, patientUUID), nil, rec)
}

// Update replaces the stored patient record.
func (c *Client) Update(ctx context.Context, projectUUID, patientUUID string, rec Record) (json.RawMessage, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPut, patientPath(projectUUID, patientUUID), nil, rec)
}

// Delete removes a patient from the project.
func (c *Client) Delete(ctx context.Context, projectUUID, patientUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, patientPath(projectUUID, patientUUID), nil, nil)
	return err
}

func patientPath(projectUUID, patientUUID string) string {
	return "/" + projectUUID + "/patient/" + patientUUID
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
