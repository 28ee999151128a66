// Package sample provides the CGI-Clinics sample client. Samples belong to a
// patient within a project.
package sample

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

// Client issues sample requests against the v2 API.
type Client struct {
	rest *rest.Client
}

// New creates a sample Client on top of the shared REST core.
func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// listFilter is the JSON body the sample listing endpoints take. The API
// expects UUID lists as comma-joined strings.
type listFilter struct {
	ProjectUUIDs *string `json:"projectUuids,omitempty"`
	PatientUUIDs *string `json:"patientUuids,omitempty"`
	Size         *int    `json:"size,omitempty"`
	Page         *int    `json:"page,omitempty"`
}

// GetAll returns every sample visible to the token, narrowed to the given
// project and patient UUIDs when provided.
func (c *Client) GetAll(ctx context.Context, projectUUIDs, patientUUIDs []string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/sample/full", nil, filterBody(projectUUIDs, patientUUIDs, nil))
}

// List returns one page of a project's samples.
func (c *Client) List(ctx context.Context, projectUUID string, patientUUIDs []string, page pagination.Page) (json.RawMessage, error) {
	body := filterBody(nil, patientUUIDs, &page)
	return c.rest.Do(ctx, http.MethodGet, "/"+projectUUID+"/sample", nil, body)
}

// Get returns a single sample.
func (c *Client) Get(ctx context.Context, projectUUID, sampleUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, samplePath(projectUUID, sampleUUID), nil, nil)
}

// Create registers a sample under the caller-chosen UUID.
func (c *Client) Create(ctx context.Context, projectUUID, sampleUUID string, rec Record) (json.RawMessage, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPost, samplePath(projectUUID, sampleUUID), nil, rec)
}

// Update replaces the stored sample record.
func (c *Client) Update(ctx context.Context, projectUUID, sampleUUID string, rec Record) (json.RawMessage, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPut, samplePath(projectUUID, sampleUUID), nil, rec)
}

// Delete removes a sample from the project.
func (c *Client) Delete(ctx context.Context, projectUUID, sampleUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, samplePath(projectUUID, sampleUUID), nil, nil)
	return err
}

func samplePath(projectUUID, sampleUUID string) string {
	return "/" + projectUUID + "/sample/" + sampleUUID
}

func filterBody(projectUUIDs, patientUUIDs []string, page *pagination.Page) listFilter {
	var f listFilter
	if len(projectUUIDs) > 0 {
		joined := strings.Join(projectUUIDs, ",")
		f.ProjectUUIDs = &joined
	}
	if len(patientUUIDs) > 0 {
		joined := strings.Join(patientUUIDs, ",")
		f.PatientUUIDs = &joined
	}
	if page != nil {
		p := page.Normalized()
		f.Size = &p.Size
		f.Page = &p.Page
	}
	return f
}
