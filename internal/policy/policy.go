package policy

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"staff-scheduling/internal/models"
)

// ShiftTemplate is one of a location's standard shift slots.
type ShiftTemplate struct {
	Name  string           `yaml:"name" validate:"required"`
	Start models.ClockTime `yaml:"start"`
	End   models.ClockTime `yaml:"end"`
	Type  string           `yaml:"type" validate:"required"`
}

// LocationPolicy is the per-location scheduling configuration: capacity,
// operating weekdays, and the shift templates the location runs.
type LocationPolicy struct {
	Code        string          `yaml:"code" validate:"required"`
	Name        string          `yaml:"name" validate:"required"`
	MaxCapacity int             `yaml:"maxCapacity" validate:"required,min=1"`
	Weekdays    []Weekday       `yaml:"weekdays" validate:"required,min=1"`
	Templates   []ShiftTemplate `yaml:"templates" validate:"omitempty,dive"`
}

// Weekday wraps time.Weekday so policy files can spell day names.
type Weekday time.Weekday

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (w *Weekday) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	day, ok := weekdayNames[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("unknown weekday %q", s)
	}
	*w = Weekday(day)
	return nil
}

// AllowsWeekday reports whether the location operates on the given day.
func (p *LocationPolicy) AllowsWeekday(day time.Weekday) bool {
	for _, w := range p.Weekdays {
		if time.Weekday(w) == day {
			return true
		}
	}
	return false
}

// TemplateByName returns the named shift template, if the location has one.
func (p *LocationPolicy) TemplateByName(name string) (*ShiftTemplate, bool) {
	for i := range p.Templates {
		if strings.EqualFold(p.Templates[i].Name, name) {
			return &p.Templates[i], true
		}
	}
	return nil, false
}

type policyFile struct {
	Locations []LocationPolicy `yaml:"locations" validate:"required,min=1,dive"`
}

// Table is the loaded set of location policies keyed by location code.
type Table struct {
	byCode map[string]*LocationPolicy
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads and validates a policy table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Parse(data)
}

// Parse builds a policy table from YAML bytes.
func Parse(data []byte) (*Table, error) {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}
	return NewTable(f.Locations)
}

// NewTable builds a table from already-constructed policies.
func NewTable(policies []LocationPolicy) (*Table, error) {
	t := &Table{byCode: make(map[string]*LocationPolicy, len(policies))}
	for i := range policies {
		p := policies[i]
		if _, dup := t.byCode[p.Code]; dup {
			return nil, fmt.Errorf("duplicate location code %q", p.Code)
		}
		t.byCode[p.Code] = &p
	}
	return t, nil
}

// Lookup returns the policy for a location code.
func (t *Table) Lookup(code string) (*LocationPolicy, bool) {
	p, ok := t.byCode[code]
	return p, ok
}

// Codes lists the configured location codes.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.byCode))
	for code := range t.byCode {
		codes = append(codes, code)
	}
	return codes
}
