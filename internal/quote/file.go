package quote

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a quote form, used by the CLI.
//
//	customer_name: Dockit El & Data AB
//	customer_email: info@dockit.se
//	job_summary: Installation av belysning och uttag i hall
//	apply_rot: true
//	lines:
//	  - kind: work
//	    description: Elmontör, installation och montering
//	    qty: 8
//	    unit_price_sek: 640
type File struct {
	CustomerName  string     `yaml:"customer_name"`
	CustomerEmail string     `yaml:"customer_email"`
	JobSummary    string     `yaml:"job_summary"`
	ApplyROT      *bool      `yaml:"apply_rot,omitempty"`
	Lines         []FileLine `yaml:"lines"`
}

// FileLine keeps qty and price untyped so that invalid values reach the
// validator instead of failing the YAML decode.
type FileLine struct {
	Kind         string `yaml:"kind"`
	Description  string `yaml:"description"`
	Qty          any    `yaml:"qty"`
	UnitPriceSEK any    `yaml:"unit_price_sek"`
	Ref          string `yaml:"ref,omitempty"`
}

// LoadFile reads a YAML quote file into a new Form. apply_rot defaults to
// true when omitted. A file without lines yields a form without lines, which
// Validate rejects.
func LoadFile(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes YAML quote data into a new Form.
func ParseFile(data []byte) (*Form, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse quote file: %w", err)
	}
	return f.Form(), nil
}

// Form converts the file into an editable form.
func (f File) Form() *Form {
	applyROT := true
	if f.ApplyROT != nil {
		applyROT = *f.ApplyROT
	}

	lines := make([]Line, 0, len(f.Lines))
	for _, l := range f.Lines {
		lines = append(lines, Line{
			Kind:        LineKind(l.Kind),
			Description: l.Description,
			Qty:         scalarString(l.Qty),
			UnitPrice:   scalarString(l.UnitPriceSEK),
			Ref:         l.Ref,
		})
	}

	return &Form{
		customerName:  f.CustomerName,
		customerEmail: f.CustomerEmail,
		jobSummary:    f.JobSummary,
		applyROT:      applyROT,
		lines:         lines,
	}
}

// FileFromForm is the inverse of File.Form, used to write example files.
func FileFromForm(form *Form) File {
	s := form.Snapshot()
	applyROT := s.ApplyROT
	f := File{
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		JobSummary:    s.JobSummary,
		ApplyROT:      &applyROT,
	}
	for _, l := range s.Lines {
		f.Lines = append(f.Lines, FileLine{
			Kind:         string(l.Kind),
			Description:  l.Description,
			Qty:          l.Qty,
			UnitPriceSEK: l.UnitPrice,
			Ref:          l.Ref,
		})
	}
	return f
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
