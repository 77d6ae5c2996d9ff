package quote

import "slices"

// Form is the single owner of editable quote data. It is not safe for
// concurrent use; the UI mutates it from its event loop only.
type Form struct {
	customerName  string
	customerEmail string
	jobSummary    string
	applyROT      bool
	lines         []Line
}

// DefaultForm returns an empty form with ROT enabled and one default line.
func DefaultForm() *Form {
	return &Form{
		applyROT: true,
		lines:    []Line{DefaultLine()},
	}
}

// DemoForm returns the Dockit sample quote used for demos and smoke tests.
func DemoForm() *Form {
	return &Form{
		customerName:  "Dockit El & Data AB",
		customerEmail: "info@dockit.se",
		jobSummary:    "Installation av belysning och uttag i hall",
		applyROT:      true,
		lines: []Line{
			{Kind: KindWork, Description: "Elmontör, installation och montering", Qty: "8", UnitPrice: "640"},
			{Kind: KindMaterial, Description: "LED-armatur infälld", Qty: "4", UnitPrice: "390"},
		},
	}
}

// NewForm builds a form from explicit values. An empty line list gets one
// default line so the form never starts without lines.
func NewForm(name, email, summary string, applyROT bool, lines []Line) *Form {
	f := &Form{
		customerName:  name,
		customerEmail: email,
		jobSummary:    summary,
		applyROT:      applyROT,
		lines:         slices.Clone(lines),
	}
	if len(f.lines) == 0 {
		f.lines = []Line{DefaultLine()}
	}
	return f
}

func (f *Form) SetCustomerName(v string)  { f.customerName = v }
func (f *Form) SetCustomerEmail(v string) { f.customerEmail = v }
func (f *Form) SetJobSummary(v string)    { f.jobSummary = v }
func (f *Form) SetApplyROT(v bool)        { f.applyROT = v }

func (f *Form) CustomerName() string  { return f.customerName }
func (f *Form) CustomerEmail() string { return f.customerEmail }
func (f *Form) JobSummary() string    { return f.jobSummary }
func (f *Form) ApplyROT() bool        { return f.applyROT }

// Len returns the number of lines.
func (f *Form) Len() int {
	return len(f.lines)
}

// Line returns the line at index. The second result is false when index is
// out of range.
func (f *Form) Line(index int) (Line, bool) {
	if index < 0 || index >= len(f.lines) {
		return Line{}, false
	}
	return f.lines[index], true
}

// UpdateLine replaces the fields present in patch for the line at index.
// Out-of-range indexes are ignored.
func (f *Form) UpdateLine(index int, patch LinePatch) {
	if index < 0 || index >= len(f.lines) {
		return
	}
	f.lines[index] = f.lines[index].apply(patch)
}

// AddLine appends a default line and returns its index.
func (f *Form) AddLine() int {
	f.lines = append(f.lines, DefaultLine())
	return len(f.lines) - 1
}

// CanRemoveLine reports whether RemoveLine would have any effect. The UI uses
// it to disable the remove action.
func (f *Form) CanRemoveLine() bool {
	return len(f.lines) > 1
}

// RemoveLine deletes the line at index. The last remaining line is never
// removed.
func (f *Form) RemoveLine(index int) {
	if !f.CanRemoveLine() || index < 0 || index >= len(f.lines) {
		return
	}
	f.lines = slices.Delete(f.lines, index, index+1)
}

// Snapshot returns an immutable copy of the current form state.
func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		CustomerName:  f.customerName,
		CustomerEmail: f.customerEmail,
		JobSummary:    f.jobSummary,
		ApplyROT:      f.applyROT,
		Lines:         slices.Clone(f.lines),
	}
}

// Snapshot is a point-in-time copy of a Form.
type Snapshot struct {
	CustomerName  string
	CustomerEmail string
	JobSummary    string
	ApplyROT      bool
	Lines         []Line
}
