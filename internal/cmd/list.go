package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/catalog"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
	"github.com/gravitrone/backoffice/cli/internal/logging"
	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

const maxColumnWidth = 32

type listOptions struct {
	search   string
	page     int
	pageSize int
	sort     string
	desc     bool
	filters  []string
	jq       string
	json     bool
}

// ListCmd returns the `backoffice list <resource>` command.
func ListCmd() *cobra.Command {
	var opts listOptions
	reg := catalog.Default()
	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "Print one page of a resource",
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceKeys(reg),
		RunE: func(c *cobra.Command, args []string) error {
			entry, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}

			rt, err := openRuntime(c.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			q, err := opts.query(entry, rt.cfg.PageSize)
			if err != nil {
				return err
			}
			sess, err := rt.requireSession()
			if err != nil {
				return err
			}
			if !sess.Gate().Has(entry.Perms.View) {
				return fmt.Errorf("your role cannot view %s (%s)", entry.Key, entry.Perms.View)
			}

			listing, err := entry.List(c.Context(), rt.client, q, rt.timeout())
			if err != nil {
				if api.KindOf(err) == api.KindUnauthorized {
					return rt.rejectSession(c.Context())
				}
				return fmt.Errorf("list %s: %w", entry.Key, err)
			}
			logging.Debug("list printed", "resource", entry.Key, "rows", len(listing.Rows), "total", listing.Total)

			out := c.OutOrStdout()
			switch {
			case opts.jq != "":
				return printJQ(c.Context(), out, opts.jq, listing.Rows)
			case opts.json:
				return printJSON(out, listing.Rows)
			}
			printTable(out, entry, listing)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.search, "search", "s", "", "free text search")
	f.IntVar(&opts.page, "page", 1, "page number (1-based)")
	f.IntVar(&opts.pageSize, "page-size", 0, "rows per page (default from config)")
	f.StringVar(&opts.sort, "sort", "", "sort column key")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.StringArrayVarP(&opts.filters, "filter", "f", nil, "filter as Param=value (repeatable)")
	f.StringVar(&opts.jq, "jq", "", "jq expression applied to the rows")
	f.BoolVar(&opts.json, "json", false, "print rows as JSON")
	return cmd
}

// query turns flags into a list query, validating keys against entry.
func (o listOptions) query(entry catalog.Entry, defaultPageSize int) (listctl.Query, error) {
	if o.page < 1 {
		return listctl.Query{}, fmt.Errorf("--page must be at least 1, got %d", o.page)
	}
	if o.pageSize < 0 {
		return listctl.Query{}, fmt.Errorf("--page-size must be positive, got %d", o.pageSize)
	}

	q := listctl.Query{PageIndex: o.page - 1, PageSize: o.pageSize}
	if q.PageSize == 0 {
		q.PageSize = max(defaultPageSize, 1)
	}

	sortKey := o.sort
	if sortKey == "" {
		sortKey = entry.DefaultSort
	}
	if sortKey != "" {
		if !slices.Contains(entry.SortKeys, sortKey) {
			return listctl.Query{}, fmt.Errorf("cannot sort %s by %q (try one of: %s)", entry.Key, sortKey, strings.Join(entry.SortKeys, ", "))
		}
		q.SetSort(sortKey, o.desc)
	}
	q.SetSearch(o.search)

	for _, raw := range o.filters {
		param, value, ok := strings.Cut(raw, "=")
		if !ok {
			return listctl.Query{}, fmt.Errorf("filter %q must look like Param=value", raw)
		}
		def, err := findFilter(entry, strings.TrimSpace(param))
		if err != nil {
			return listctl.Query{}, err
		}
		values, err := listctl.ParseFilterValue(def.Kind, value)
		if err != nil {
			return listctl.Query{}, fmt.Errorf("filter %s: %w", def.Param, err)
		}
		q.SetFilter(def.Param, values...)
	}
	q.SetPage(o.page - 1)
	return q, nil
}

func findFilter(entry catalog.Entry, param string) (catalog.FilterDef, error) {
	names := make([]string, 0, len(entry.Filters))
	for _, def := range entry.Filters {
		if strings.EqualFold(def.Param, param) {
			return def, nil
		}
		names = append(names, def.Param)
	}
	if len(names) == 0 {
		return catalog.FilterDef{}, fmt.Errorf("%s has no filters", entry.Key)
	}
	return catalog.FilterDef{}, fmt.Errorf("unknown filter %q for %s (try one of: %s)", param, entry.Key, strings.Join(names, ", "))
}

func printTable(out io.Writer, entry catalog.Entry, listing *catalog.Listing) {
	if len(listing.Cells) == 0 {
		fmt.Fprintln(out, "no results")
		return
	}
	cols := make([]components.TableColumn, len(listing.Headers))
	total := 0
	for i, h := range listing.Headers {
		w := lipgloss.Width(h)
		for _, row := range listing.Cells {
			if i < len(row) {
				w = max(w, lipgloss.Width(row[i]))
			}
		}
		w = min(w, maxColumnWidth)
		cols[i] = components.TableColumn{Header: h, Width: w}
		total += w + 3
	}
	fmt.Fprintln(out, components.TableGrid(cols, listing.Cells, total))

	pages := max(listing.Pages, 1)
	fmt.Fprintf(out, "\n%s: page %d of %d (%d rows)\n", entry.Title, listing.Page, pages, listing.Total)
}

func printJSON(out io.Writer, rows []any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// printJQ runs expr over the rows as a JSON array and prints each result.
func printJQ(ctx context.Context, out io.Writer, expr string, rows []any) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse jq: %w", err)
	}

	// gojq only accepts plain JSON values.
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}

	iter := query.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				return nil
			}
			return fmt.Errorf("jq: %w", err)
		}
		line, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode jq result: %w", err)
		}
		fmt.Fprintln(out, string(line))
	}
}

func resourceKeys(reg *catalog.Registry) []string {
	entries := reg.All()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
