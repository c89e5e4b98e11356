package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/catalog"
	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

// formAction is what a key press asks the owning list to do.
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// formField is one rendered input. Select fields cycle through options
// instead of holding text.
type formField struct {
	field   catalog.Field
	input   textinput.Model
	options []api.Option
	// choice indexes options; -1 means nothing selected.
	choice int
}

func (f formField) isSelect() bool {
	return f.field.Kind == catalog.FieldSelect
}

func (f formField) value() string {
	if f.isSelect() {
		if f.choice < 0 || f.choice >= len(f.options) {
			return ""
		}
		return f.options[f.choice].ID
	}
	return f.input.Value()
}

// formModel is the create/edit modal of a list screen.
type formModel struct {
	title      string
	fields     []formField
	focus      int
	errs       map[string]string
	submitting bool
}

func newForm(title string, fields []catalog.Field, values catalog.Values, lookups api.Lookups, editing bool) formModel {
	f := formModel{title: title, errs: map[string]string{}}
	for _, def := range fields {
		if editing && def.CreateOnly {
			continue
		}
		ff := formField{field: def, choice: -1}
		current := values[def.Key]
		if def.Kind == catalog.FieldSelect {
			ff.options = lookups.Options(def.Lookup)
			for i, opt := range ff.options {
				if opt.ID == current {
					ff.choice = i
					break
				}
			}
			if ff.choice < 0 && def.Required && len(ff.options) > 0 && current == "" {
				ff.choice = 0
			}
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.CharLimit = 256
			ti.Placeholder = def.Hint
			if def.Kind == catalog.FieldPassword {
				ti.EchoMode = textinput.EchoPassword
				ti.EchoCharacter = '•'
			}
			ti.SetValue(current)
			ti.CursorEnd()
			ff.input = ti
		}
		f.fields = append(f.fields, ff)
	}
	f = f.focusField(0)
	return f
}

// values collects the raw form values keyed by field key.
func (f formModel) values() catalog.Values {
	out := make(catalog.Values, len(f.fields))
	for _, ff := range f.fields {
		out[ff.field.Key] = ff.value()
	}
	return out
}

// withErrors shows errs inline and moves focus to the first failing field.
// Errors for keys without a visible field are kept under "_".
func (f formModel) withErrors(errs map[string]string) formModel {
	f.submitting = false
	f.errs = map[string]string{}
	var stray []string
	for k, msg := range errs {
		if f.indexOf(k) < 0 {
			stray = append(stray, msg)
			continue
		}
		f.errs[k] = msg
	}
	if len(stray) > 0 {
		sort.Strings(stray)
		f.errs["_"] = strings.Join(stray, "; ")
	}
	for i, ff := range f.fields {
		if _, bad := f.errs[ff.field.Key]; bad {
			return f.focusField(i)
		}
	}
	return f
}

func (f formModel) indexOf(key string) int {
	for i, ff := range f.fields {
		if ff.field.Key == key {
			return i
		}
	}
	return -1
}

func (f formModel) focusField(idx int) formModel {
	if len(f.fields) == 0 {
		f.focus = 0
		return f
	}
	if idx < 0 {
		idx = len(f.fields) - 1
	}
	if idx >= len(f.fields) {
		idx = 0
	}
	fields := make([]formField, len(f.fields))
	copy(fields, f.fields)
	for i := range fields {
		if fields[i].isSelect() {
			continue
		}
		if i == idx {
			fields[i].input.Focus()
		} else {
			fields[i].input.Blur()
		}
	}
	f.fields = fields
	f.focus = idx
	return f
}

// Update handles one key. Non-key messages are forwarded to the focused
// text input (cursor blink).
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd, formAction) {
	if f.submitting {
		return f, nil, formNone
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInput(msg)
	}

	switch {
	case isBack(key):
		return f, nil, formCancel
	case isKey(key, "ctrl+s"):
		return f, nil, formSubmit
	case isEnter(key):
		if f.focus >= len(f.fields)-1 {
			return f, nil, formSubmit
		}
		return f.focusField(f.focus + 1), nil, formNone
	case isNextField(key):
		return f.focusField(f.focus + 1), nil, formNone
	case isPrevField(key):
		return f.focusField(f.focus - 1), nil, formNone
	}

	if len(f.fields) == 0 {
		return f, nil, formNone
	}
	cur := f.fields[f.focus]
	if cur.isSelect() {
		switch {
		case isKey(key, "right", " "):
			f = f.cycle(1)
		case isKey(key, "left"):
			f = f.cycle(-1)
		}
		return f, nil, formNone
	}
	return f.updateInput(msg)
}

func (f formModel) updateInput(msg tea.Msg) (formModel, tea.Cmd, formAction) {
	if len(f.fields) == 0 || f.fields[f.focus].isSelect() {
		return f, nil, formNone
	}
	fields := make([]formField, len(f.fields))
	copy(fields, f.fields)
	var cmd tea.Cmd
	fields[f.focus].input, cmd = fields[f.focus].input.Update(msg)
	f.fields = fields
	return f, cmd, formNone
}

// cycle moves the focused select by step. Optional selects include an
// empty position before the first option.
func (f formModel) cycle(step int) formModel {
	fields := make([]formField, len(f.fields))
	copy(fields, f.fields)
	ff := &fields[f.focus]
	if len(ff.options) == 0 {
		return f
	}
	lo := -1
	if ff.field.Required {
		lo = 0
	}
	n := len(ff.options) - lo
	pos := ff.choice - lo
	pos = ((pos+step)%n + n) % n
	ff.choice = pos + lo
	f.fields = fields
	return f
}

func (f formModel) View(width int) string {
	var b strings.Builder
	for i, ff := range f.fields {
		label := ff.field.Label
		if ff.field.Required {
			label += " *"
		}
		marker := "  "
		if i == f.focus {
			marker = SelectedStyle.Render("› ")
		}
		b.WriteString(marker + LabelStyle.Render(label) + "\n")

		var input string
		if ff.isSelect() {
			input = renderSelect(ff, i == f.focus)
		} else {
			input = ff.input.View()
		}
		b.WriteString("    " + input)
		if ff.field.Kind == catalog.FieldList || ff.field.Kind == catalog.FieldFile {
			if ff.field.Hint != "" && ff.value() == "" {
				b.WriteString("  " + MutedStyle.Render(ff.field.Hint))
			}
		}
		if msg, bad := f.errs[ff.field.Key]; bad {
			b.WriteString("\n    " + ErrorStyle.Render(components.SanitizeOneLine(msg)))
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n\n")
		}
	}
	if msg, ok := f.errs["_"]; ok {
		b.WriteString("\n\n" + ErrorStyle.Render(components.SanitizeOneLine(msg)))
	}

	footer := MutedStyle.Render("tab: siguiente | ←/→: opción | ctrl+s: guardar | esc: cancelar")
	if f.submitting {
		footer = MutedStyle.Render("Guardando...")
	}
	b.WriteString("\n\n" + footer)
	return components.TitledBox(f.title, b.String(), width)
}

func renderSelect(ff formField, focused bool) string {
	label := "(ninguno)"
	if ff.choice >= 0 && ff.choice < len(ff.options) {
		label = ff.options[ff.choice].Label
	}
	if len(ff.options) == 0 {
		return MutedStyle.Render("sin opciones")
	}
	if focused {
		return SelectedStyle.Render("‹ " + label + " ›")
	}
	return NormalStyle.Render(label)
}
