package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// lookupPageSize bounds select option lists.
const lookupPageSize = 100

// Lookups holds option lists used by form selects and filters.
type Lookups struct {
	Categories   []Option
	Businesses   []Option
	VehicleTypes []Option
	Roles        []Option
	Vehicles     []Option
	Couriers     []Option
}

// Options returns the option list registered under key.
func (l Lookups) Options(key string) []Option {
	switch key {
	case "categories":
		return l.Categories
	case "businesses":
		return l.Businesses
	case "vehicle-types":
		return l.VehicleTypes
	case "roles":
		return l.Roles
	case "vehicles":
		return l.Vehicles
	case "couriers":
		return l.Couriers
	}
	return nil
}

// LoadLookups fetches every lookup list concurrently. Lists the role may
// not read (403) stay empty without failing the rest. Other failures are
// returned alongside whatever lists did load.
func (c *Client) LoadLookups(ctx context.Context) (Lookups, error) {
	var out Lookups
	var g errgroup.Group

	load := func(dst *[]Option, fetch func() ([]Option, error)) {
		g.Go(func() error {
			opts, err := fetch()
			if isForbidden(err) {
				return nil
			}
			*dst = opts
			return err
		})
	}
	load(&out.Categories, func() ([]Option, error) {
		return lookup(ctx, c, "categories", func(v Category) Option { return Option{ID: v.ID, Label: v.Name} })
	})
	load(&out.Businesses, func() ([]Option, error) {
		return lookup(ctx, c, "businesses", func(v Business) Option { return Option{ID: v.ID, Label: v.Name} })
	})
	load(&out.VehicleTypes, func() ([]Option, error) {
		return lookup(ctx, c, "vehicle-types", func(v VehicleType) Option { return Option{ID: v.ID, Label: v.Name} })
	})
	load(&out.Roles, func() ([]Option, error) {
		return lookup(ctx, c, "roles", func(v Role) Option { return Option{ID: v.ID, Label: v.Name} })
	})
	load(&out.Vehicles, func() ([]Option, error) {
		return lookup(ctx, c, "vehicles", func(v Vehicle) Option { return Option{ID: v.ID, Label: v.Plate} })
	})
	load(&out.Couriers, func() ([]Option, error) {
		return lookup(ctx, c, "couriers", func(v Courier) Option { return Option{ID: v.ID, Label: v.Name} })
	})

	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("load lookups: %w", err)
	}
	return out, nil
}

func isForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

func lookup[T any](ctx context.Context, c *Client, resource string, toOption func(T) Option) ([]Option, error) {
	params := url.Values{}
	params.Set("Page", "1")
	params.Set("PageSize", strconv.Itoa(lookupPageSize))
	params.Set("SortBy", "Name")
	page, err := Search[T](ctx, c, resource, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resource, err)
	}
	opts := make([]Option, 0, len(page.Data))
	for _, row := range page.Data {
		opts = append(opts, toOption(row))
	}
	return opts, nil
}
