// Package sequencing provides the CGI-Clinics sequencing client, together
// with the per-project sequencing-center and sequencing-type catalogues.
package sequencing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

// Client issues sequencing requests against the v2 API.
type Client struct {
	rest *rest.Client
}

// New creates a sequencing Client on top of the shared REST core.
func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// GetAll returns every sequencing visible to the token, narrowed by the filter.
func (c *Client) GetAll(ctx context.Context, f Filter) (json.RawMessage, error) {
	q := url.Values{}
	if len(f.ProjectUUIDs) > 0 {
		q.Set("projectUuids", strings.Join(f.ProjectUUIDs, ","))
	}
	if len(f.PatientUUIDs) > 0 {
		q.Set("patientUuids", strings.Join(f.PatientUUIDs, ","))
	}
	if len(f.SampleUUIDs) > 0 {
		q.Set("sampleUuids", strings.Join(f.SampleUUIDs, ","))
	}
	if f.PatientID != "" {
		q.Set("patientId", f.PatientID)
	}
	return c.rest.Do(ctx, http.MethodGet, "/sequencing/full", q, nil)
}

// List returns one page of a project's sequencings.
func (c *Client) List(ctx context.Context, projectUUID string, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/"+projectUUID+"/sequencing", page.Normalized().Query(nil), nil)
}

// Get returns a single sequencing.
func (c *Client) Get(ctx context.Context, projectUUID, sequencingUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, sequencingPath(projectUUID, sequencingUUID), nil, nil)
}

// Create registers a sequencing under the caller-chosen UUID.
func (c *Client) Create(ctx context.Context, projectUUID, sequencingUUID string, rec Record) (json.RawMessage, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPost, sequencingPath(projectUUID, sequencingUUID), nil, rec)
}

// Update replaces the stored sequencing record.
func (c *Client) Update(ctx context.Context, projectUUID, sequencingUUID string, rec Record) (json.RawMessage, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPut, sequencingPath(projectUUID, sequencingUUID), nil, rec)
}

// Delete removes a sequencing from the project.
func (c *Client) Delete(ctx context.Context, projectUUID, sequencingUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, sequencingPath(projectUUID, sequencingUUID), nil, nil)
	return err
}

func sequencingPath(projectUUID, sequencingUUID string) string {
	return "/" + projectUUID + "/sequencing/" + sequencingUUID
}

// ===================== Sequencing centers =====================

// GetAllCenters returns the full sequencing-center catalogue of a project.
func (c *Client) GetAllCenters(ctx context.Context, projectUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/sequencing-center/full", nil, nil)
}

// ListCenters returns one page of a project's sequencing centers.
func (c *Client) ListCenters(ctx context.Context, projectUUID string, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/sequencing-center", page.Normalized().Query(nil), nil)
}

// CreateCenter adds a sequencing center to the project catalogue.
func (c *Client) CreateCenter(ctx context.Context, projectUUID, name string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodPost, "/project/"+projectUUID+"/sequencing-center", nil, map[string]string{"name": name})
}

// UpdateCenter renames a sequencing center.
func (c *Client) UpdateCenter(ctx context.Context, projectUUID, centerUUID, name string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodPut, "/project/"+projectUUID+"/sequencing-center/"+centerUUID, nil, map[string]string{"name": name})
}

// DeleteCenter removes a sequencing center from the catalogue.
func (c *Client) DeleteCenter(ctx context.Context, projectUUID, centerUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, "/project/"+projectUUID+"/sequencing-center/"+centerUUID, nil, nil)
	return err
}

// ===================== Sequencing types =====================

// GetAllTypes returns the full sequencing-type catalogue of a project.
func (c *Client) GetAllTypes(ctx context.Context, projectUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/sequencing-type/full", nil, nil)
}

// ListTypes returns one page of a project's sequencing types. The type
// listing and create routes carry a trailing slash, unlike the center ones.
func (c *Client) ListTypes(ctx context.Context, projectUUID string, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/sequencing-type/", page.Normalized().Query(nil), nil)
}

// CreateType adds a sequencing type to the project catalogue.
func (c *Client) CreateType(ctx context.Context, projectUUID, name string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodPost, "/project/"+projectUUID+"/sequencing-type/", nil, map[string]string{"name": name})
}

// UpdateType renames a sequencing type.
func (c *Client) UpdateType(ctx context.Context, projectUUID, typeUUID, name string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodPut, "/project/"+projectUUID+"/sequencing-type/"+typeUUID, nil, map[string]string{"name": name})
}

// DeleteType removes a sequencing type from the catalogue.
func (c *Client) DeleteType(ctx context.Context, projectUUID, typeUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, "/project/"+projectUUID+"/sequencing-type/"+typeUUID, nil, nil)
	return err
}
