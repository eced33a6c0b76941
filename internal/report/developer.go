package report

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// Unassigned is the display name used whenever a developer cannot be
// resolved. Opaque identifiers never leak into the report.
const Unassigned = "Unassigned"

// DeveloperMap resolves raw developer custom-field values to display
// names. It is built once per report from the dropdown option list and
// indexes options both by order-index and by option UUID, because the
// service reports the selected option either way depending on the API
// path that wrote it.
type DeveloperMap struct {
	byIndex map[int]string
	byID    map[string]string
}

// NewDeveloperMap builds the lookup from the custom field definitions,
// using the first dropdown field whose name contains "developer".
func NewDeveloperMap(defs []tracker.CustomFieldDef) DeveloperMap {
	m := DeveloperMap{
		byIndex: make(map[int]string),
		byID:    make(map[string]string),
	}

	for _, def := range defs {
		if !strings.Contains(strings.ToLower(def.Name), "developer") {
			continue
		}
		for _, opt := range def.TypeConfig.Options {
			m.byIndex[opt.OrderIndex] = opt.Name
			m.byID[opt.ID] = opt.Name
		}
		break
	}

	return m
}

// Resolve maps a raw field value to a display name. The value may be a
// number (dropdown order-index), a string (option UUID or
// numeric-as-string), an embedded object carrying a name, or an array
// of any of these; unresolvable values come back as Unassigned.
func (m DeveloperMap) Resolve(raw any) string {
	switch v := raw.(type) {
	case nil:
		return Unassigned
	case float64:
		return m.byIndexOr(int(v))
	case int:
		return m.byIndexOr(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return m.byIndexOr(int(n))
		}
		return Unassigned
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return m.byIndexOr(n)
		}
		if name, ok := m.byID[v]; ok {
			return name
		}
		return Unassigned
	case map[string]any:
		if name, ok := v["name"].(string); ok && name != "" {
			return name
		}
		return Unassigned
	case []any:
		if len(v) > 0 {
			return m.Resolve(v[0])
		}
		return Unassigned
	default:
		return Unassigned
	}
}

func (m DeveloperMap) byIndexOr(idx int) string {
	if name, ok := m.byIndex[idx]; ok {
		return name
	}
	return Unassigned
}

// DeveloperFor resolves the assigned developer for a task from its
// developer custom field.
func (m DeveloperMap) DeveloperFor(t *tracker.Task) string {
	for _, field := range t.CustomFields {
		if strings.Contains(strings.ToLower(field.Name), "developer") {
			return m.Resolve(field.Value)
		}
	}
	return Unassigned
}

// Handle derives a chat handle from a display name: lowercase,
// dot-separated ("Jordan Lee" becomes "jordan.lee").
func Handle(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	for i, p := range parts {
		parts[i] = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, p)
	}
	return strings.Join(parts, ".")
}
