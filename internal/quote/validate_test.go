package quote

import (
	"errors"
	"testing"
)

func validSnapshot() Snapshot {
	return DemoForm().Snapshot()
}

func TestValidateDemoForm(t *testing.T) {
	if err := Validate(validSnapshot()); err != nil {
		t.Fatalf("Validate(demo) = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Snapshot)
		want   string
	}{
		{
			name:   "empty customer name",
			modify: func(s *Snapshot) { s.CustomerName = "" },
			want:   "customer name missing",
		},
		{
			name:   "whitespace customer name",
			modify: func(s *Snapshot) { s.CustomerName = "   " },
			want:   "customer name missing",
		},
		{
			name:   "empty email",
			modify: func(s *Snapshot) { s.CustomerEmail = "\t" },
			want:   "email missing",
		},
		{
			name:   "empty summary",
			modify: func(s *Snapshot) { s.JobSummary = "" },
			want:   "job summary missing",
		},
		{
			name:   "no lines",
			modify: func(s *Snapshot) { s.Lines = nil },
			want:   "at least one line required",
		},
		{
			name:   "missing description",
			modify: func(s *Snapshot) { s.Lines[1].Description = " " },
			want:   "line 2: description missing",
		},
		{
			name:   "invalid kind",
			modify: func(s *Snapshot) { s.Lines[0].Kind = "labour" },
			want:   "line 1: invalid kind",
		},
		{
			name:   "zero quantity",
			modify: func(s *Snapshot) { s.Lines[0].Qty = "0" },
			want:   "line 1: quantity must be > 0",
		},
		{
			name:   "negative quantity",
			modify: func(s *Snapshot) { s.Lines[1].Qty = "-2" },
			want:   "line 2: quantity must be > 0",
		},
		{
			name:   "non-numeric quantity",
			modify: func(s *Snapshot) { s.Lines[0].Qty = "åtta" },
			want:   "line 1: quantity must be > 0",
		},
		{
			name:   "empty quantity",
			modify: func(s *Snapshot) { s.Lines[0].Qty = "" },
			want:   "line 1: quantity must be > 0",
		},
		{
			name:   "negative price",
			modify: func(s *Snapshot) { s.Lines[1].UnitPrice = "-1" },
			want:   "line 2: unit price cannot be negative",
		},
		{
			name:   "non-numeric price",
			modify: func(s *Snapshot) { s.Lines[1].UnitPrice = "gratis" },
			want:   "line 2: unit price must be a number",
		},
		{
			name:   "exponent price",
			modify: func(s *Snapshot) { s.Lines[0].UnitPrice = "1e100000000" },
			want:   "line 1: unit price must be a number",
		},
		{
			name:   "exponent quantity",
			modify: func(s *Snapshot) { s.Lines[1].Qty = "4e2" },
			want:   "line 2: quantity must be > 0",
		},
		{
			name:   "infinite quantity",
			modify: func(s *Snapshot) { s.Lines[0].Qty = "Inf" },
			want:   "line 1: quantity must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.modify(&s)
			err := Validate(s)
			if err == nil {
				t.Fatalf("Validate() = nil, want %q", tt.want)
			}
			if err.Error() != tt.want {
				t.Errorf("Validate() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidateAcceptsEdgeValues(t *testing.T) {
	tests := []struct {
		name  string
		qty   string
		price string
	}{
		{"zero price", "1", "0"},
		{"empty price is zero", "1", ""},
		{"fractional qty", "0.5", "100"},
		{"comma decimals", "2,5", "12,50"},
		{"padded numbers", " 3 ", " 99 "},
		{"leading decimal point", ".5", "0,75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			s.Lines[0].Qty = tt.qty
			s.Lines[0].UnitPrice = tt.price
			if err := Validate(s); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// The first failing rule is reported, not the most severe one.
func TestValidateReportsFirstFailure(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Snapshot)
		want   string
	}{
		{
			name: "name before everything",
			modify: func(s *Snapshot) {
				s.CustomerName = ""
				s.CustomerEmail = ""
				s.JobSummary = ""
				s.Lines = nil
			},
			want: "customer name missing",
		},
		{
			name: "email before summary and lines",
			modify: func(s *Snapshot) {
				s.CustomerEmail = ""
				s.JobSummary = ""
				s.Lines[0].Qty = "0"
			},
			want: "email missing",
		},
		{
			name: "summary before lines",
			modify: func(s *Snapshot) {
				s.JobSummary = ""
				s.Lines[0].Kind = "x"
			},
			want: "job summary missing",
		},
		{
			name: "earlier line before later line",
			modify: func(s *Snapshot) {
				s.Lines[0].UnitPrice = "-5"
				s.Lines[1].Description = ""
			},
			want: "line 1: unit price cannot be negative",
		},
		{
			name: "description before kind on the same line",
			modify: func(s *Snapshot) {
				s.Lines[1].Description = ""
				s.Lines[1].Kind = "x"
				s.Lines[1].Qty = "0"
			},
			want: "line 2: description missing",
		},
		{
			name: "kind before quantity",
			modify: func(s *Snapshot) {
				s.Lines[0].Kind = ""
				s.Lines[0].Qty = "-1"
			},
			want: "line 1: invalid kind",
		},
		{
			name: "quantity before price",
			modify: func(s *Snapshot) {
				s.Lines[0].Qty = "0"
				s.Lines[0].UnitPrice = "-1"
			},
			want: "line 1: quantity must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.modify(&s)
			err := Validate(s)
			if err == nil || err.Error() != tt.want {
				t.Errorf("Validate() = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	s := validSnapshot()
	s.Lines[1].Qty = "0"

	var verr *ValidationError
	if !errors.As(Validate(s), &verr) {
		t.Fatal("expected *ValidationError")
	}
	if verr.Field != FieldQty || verr.Line != 2 {
		t.Errorf("got field=%q line=%d, want %q line 2", verr.Field, verr.Line, FieldQty)
	}
}
