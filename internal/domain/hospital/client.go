// Package hospital provides the per-project hospital catalogue client.
package hospital

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

// Client issues hospital catalogue requests against the v2 API.
type Client struct {
	rest *rest.Client
}

// New creates a hospital Client on top of the shared REST core.
func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// List returns one page of a project's hospitals.
func (c *Client) List(ctx context.Context, projectUUID string, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID+"/hospital", page.Normalized().Query(nil), nil)
}

// Create adds a hospital to the project catalogue. An empty name is allowed;
// the field is omitted and the API assigns its default.
func (c *Client) Create(ctx context.Context, projectUUID, name string) (json.RawMessage, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	return c.rest.Do(ctx, http.MethodPost, "/project/"+projectUUID+"/hospital", nil, body)
}

// Update renames a hospital.
func (c *Client) Update(ctx context.Context, projectUUID, hospitalUUID, name string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodPut, "/project/"+projectUUID+"/hospital/"+hospitalUUID, nil, map[string]string{"name": name})
}

// Delete removes a hospital from the catalogue.
func (c *Client) Delete(ctx context.Context, projectUUID, hospitalUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, "/project/"+projectUUID+"/hospital/"+hospitalUUID, nil, nil)
	return err
}
