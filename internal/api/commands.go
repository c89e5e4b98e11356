package api

import (
	"context"
	"net/http"
)

// --- Command Endpoints ---

// Create calls POST /{resource}. Inputs with files go out as multipart.
func Create[T any](ctx context.Context, c *Client, resource string, input any) (*T, error) {
	data, err := c.post(ctx, resourcePath(resource), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](data)
}

// Update calls PUT /{resource}/{id}.
func Update[T any](ctx context.Context, c *Client, resource, id string, input any) (*T, error) {
	data, err := c.put(ctx, resourcePath(resource, id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](data)
}

// Delete calls DELETE /{resource}/{id}.
func Delete(ctx context.Context, c *Client, resource, id string) error {
	_, err := c.del(ctx, resourcePath(resource, id))
	return err
}

// StatusInput is the body of the status toggle endpoint.
type StatusInput struct {
	IsActive bool `json:"isActive"`
}

// ChangeStatus calls PUT /{resource}/{id}/status with the desired value.
func ChangeStatus[T any](ctx context.Context, c *Client, resource, id string, active bool) (*T, error) {
	data, _, err := c.do(ctx, http.MethodPut, resourcePath(resource, id, "status"), StatusInput{IsActive: active})
	if err != nil {
		return nil, err
	}
	return decodeOne[T](data)
}

// Get calls GET /{resource}/{id}.
func Get[T any](ctx context.Context, c *Client, resource, id string) (*T, error) {
	data, err := c.get(ctx, resourcePath(resource, id))
	if err != nil {
		return nil, err
	}
	return decodeOne[T](data)
}
