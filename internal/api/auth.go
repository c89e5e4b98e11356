package api

import (
	"context"
	"fmt"
	"strings"
)

// --- Auth Methods ---

// Login exchanges credentials for a bearer token and permission codes.
// It is the only call made without an Authorization header.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	input := LoginInput{Email: strings.TrimSpace(email), Password: password}
	if errs := Validate(input); len(errs) > 0 {
		return nil, errs
	}
	data, err := c.post(ctx, loginPath, input)
	if err != nil {
		return nil, err
	}
	resp, err := decodeOne[LoginResponse](data)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		return nil, fmt.Errorf("login response: %w: missing token", ErrMalformed)
	}
	return resp, nil
}
