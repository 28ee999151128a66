// Package project provides the CGI-Clinics project client. Projects are the
// top-level grouping every other resource hangs off.
package project

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

// Client issues project requests against the v2 API.
type Client struct {
	rest *rest.Client
}

// New creates a project Client on top of the shared REST core.
func New(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// GetAll returns every project visible to the token, optionally filtered by
// name. Pagination parameters are forwarded when set.
func (c *Client) GetAll(ctx context.Context, name string, page pagination.Page) (json.RawMessage, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	q = page.Normalized().Query(q)
	return c.rest.Do(ctx, http.MethodGet, "/project/full", q, nil)
}

// List returns one page of projects.
func (c *Client) List(ctx context.Context, page pagination.Page) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project", page.Normalized().Query(nil), nil)
}

// Get returns a single project by UUID.
func (c *Client) Get(ctx context.Context, projectUUID string) (json.RawMessage, error) {
	return c.rest.Do(ctx, http.MethodGet, "/project/"+projectUUID, nil, nil)
}

// Create registers a new project with the given name.
func (c *Client) Create(ctx context.Context, name string) (json.RawMessage, error) {
	body := map[string]string{"name": name}
	return c.rest.Do(ctx, http.MethodPost, "/project", nil, body)
}

// Delete removes a project.
func (c *Client) Delete(ctx context.Context, projectUUID string) error {
	_, err := c.rest.Do(ctx, http.MethodDelete, "/project/"+projectUUID, nil, nil)
	return err
}
