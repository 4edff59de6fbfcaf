package roles

import (
	"fmt"
	"strings"
)

// Table names the host roles that carry tribunal permissions.
// Matching against role labels is exact and case-sensitive.
type Table struct {
	Attorney   string `yaml:"attorney"    json:"attorney"`
	Judge      string `yaml:"judge"       json:"judge"`
	Prosecutor string `yaml:"prosecutor"  json:"prosecutor"`
	CourtStaff string `yaml:"court_staff" json:"court_staff"`
}

// DefaultTable returns the role names used by the tribunal community.
func DefaultTable() Table {
	return Table{
		Attorney:   "Advogado",
		Judge:      "Juiz",
		Prosecutor: "Promotor",
		CourtStaff: "Servidor TJ",
	}
}

// plurals holds the group labels for the default role names. Renamed roles
// are shown as configured.
var plurals = map[string]string{
	"Advogado": "Advogados",
	"Juiz":     "Juízes",
	"Promotor": "Promotores",
}

// Label returns the group label for a role name.
func Label(name string) string {
	if p, ok := plurals[name]; ok {
		return p
	}
	return name
}

// RequesterLabels returns the group labels of the roles allowed to request.
func (t Table) RequesterLabels() []string {
	out := make([]string, 0, 3)
	for _, name := range t.Requesters() {
		out = append(out, Label(name))
	}
	return out
}

// Requesters returns the roles allowed to open a permit request.
func (t Table) Requesters() []string {
	return []string{t.Attorney, t.Judge, t.Prosecutor}
}

// Recognized returns every role that grants some permission, in display order.
func (t Table) Recognized() []string {
	return []string{t.Attorney, t.Judge, t.Prosecutor, t.CourtStaff}
}

// CanRequestPermit reports whether the holder may use the permit request command.
func (t Table) CanRequestPermit(s Set) bool {
	return s.HasAny(t.Requesters()...)
}

// CanReview reports whether the holder may review a process.
func (t Table) CanReview(s Set) bool {
	return s.Has(t.Judge)
}

// IsJudge reports whether the holder carries the judge role.
func (t Table) IsJudge(s Set) bool {
	return s.Has(t.Judge)
}

// Permissions returns the holder's roles that appear in the recognized set,
// in the order the host listed them.
func (t Table) Permissions(s Set) []string {
	return s.Intersect(t.Recognized()...)
}

// Validate rejects tables with empty or duplicate role names.
func (t Table) Validate() error {
	fields := []struct {
		key, value string
	}{
		{"attorney", t.Attorney},
		{"judge", t.Judge},
		{"prosecutor", t.Prosecutor},
		{"court_staff", t.CourtStaff},
	}

	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("role %q must not be empty", f.key)
		}
		if prev, ok := seen[f.value]; ok {
			return fmt.Errorf("roles %q and %q share the name %q", prev, f.key, f.value)
		}
		seen[f.value] = f.key
	}
	return nil
}
