package catalog

import (
	"strconv"
	"strings"

	"github.com/gravitrone/backoffice/cli/internal/api"
)

// FieldKind selects the form widget for a field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldPassword
	FieldInt
	FieldDecimal
	FieldSelect
	FieldList
	FieldFile
)

// Field is one form input. Key matches the JSON name of the api input so
// validation errors land on the right field.
type Field struct {
	Key   string
	Label string
	Kind  FieldKind
	// Lookup names the api.Lookups list for FieldSelect.
	Lookup   string
	Required bool
	// CreateOnly fields are hidden when editing.
	CreateOnly bool
	Hint       string
}

// Values are raw form values keyed by field key.
type Values map[string]string

// formReader converts raw values into typed ones, collecting errors by field.
type formReader struct {
	values Values
	errs   api.FieldErrors
}

func newFormReader(v Values) *formReader {
	return &formReader{values: v, errs: api.FieldErrors{}}
}

func (r *formReader) str(key string) string {
	return strings.TrimSpace(r.values[key])
}

// raw keeps whitespace, for passwords.
func (r *formReader) raw(key string) string {
	return r.values[key]
}

func (r *formReader) integer(key string) int {
	s := r.str(key)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.errs[key] = "Debe ser un número entero"
		return 0
	}
	return n
}

func (r *formReader) decimal(key string) float64 {
	s := strings.ReplaceAll(r.str(key), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.errs[key] = "Debe ser un número"
		return 0
	}
	return f
}

func (r *formReader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r *formReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs
}
