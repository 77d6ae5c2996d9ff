package quote

import "testing"

func TestDefaultForm(t *testing.T) {
	f := DefaultForm()
	if f.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", f.Len())
	}
	if !f.ApplyROT() {
		t.Error("ApplyROT() = false, want true")
	}
	l, _ := f.Line(0)
	if l != DefaultLine() {
		t.Errorf("Line(0) = %+v, want %+v", l, DefaultLine())
	}
	if f.CanRemoveLine() {
		t.Error("CanRemoveLine() = true with a single line")
	}
}

func TestAddLine(t *testing.T) {
	f := DemoForm()
	idx := f.AddLine()
	if idx != 2 {
		t.Errorf("AddLine() = %d, want 2", idx)
	}
	l, ok := f.Line(idx)
	if !ok {
		t.Fatal("Line(2) not found")
	}
	if l.Kind != KindWork || l.Description != "" || l.Qty != "1" || l.UnitPrice != "0" {
		t.Errorf("new line = %+v, want work/empty/1/0", l)
	}
}

func TestUpdateLine(t *testing.T) {
	tests := []struct {
		name  string
		index int
		patch LinePatch
		want  Line
	}{
		{
			name:  "description only",
			index: 0,
			patch: LinePatch{Description: Ptr("Dragning av kabel")},
			want:  Line{Kind: KindWork, Description: "Dragning av kabel", Qty: "8", UnitPrice: "640"},
		},
		{
			name:  "kind and price",
			index: 0,
			patch: LinePatch{Kind: Ptr(KindMaterial), UnitPrice: Ptr("12,50")},
			want:  Line{Kind: KindMaterial, Description: "Elmontör, installation och montering", Qty: "8", UnitPrice: "12,50"},
		},
		{
			name:  "empty patch",
			index: 0,
			patch: LinePatch{},
			want:  Line{Kind: KindWork, Description: "Elmontör, installation och montering", Qty: "8", UnitPrice: "640"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DemoForm()
			f.UpdateLine(tt.index, tt.patch)
			got, _ := f.Line(tt.index)
			if got != tt.want {
				t.Errorf("Line(%d) = %+v, want %+v", tt.index, got, tt.want)
			}
			other, _ := f.Line(1)
			if other.Description != "LED-armatur infälld" {
				t.Errorf("UpdateLine touched line 1: %+v", other)
			}
		})
	}
}

func TestUpdateLineOutOfRange(t *testing.T) {
	f := DemoForm()
	before := f.Snapshot()
	f.UpdateLine(5, LinePatch{Description: Ptr("x")})
	f.UpdateLine(-1, LinePatch{Description: Ptr("x")})
	after := f.Snapshot()
	for i := range before.Lines {
		if before.Lines[i] != after.Lines[i] {
			t.Errorf("line %d changed: %+v -> %+v", i, before.Lines[i], after.Lines[i])
		}
	}
}

func TestRemoveLine(t *testing.T) {
	f := DemoForm()
	f.RemoveLine(0)
	if f.Len() != 1 {
		t.Fatalf("Len() = %d after removing, want 1", f.Len())
	}
	l, _ := f.Line(0)
	if l.Kind != KindMaterial {
		t.Errorf("remaining line kind = %q, want material", l.Kind)
	}

	// The last line is never removed.
	f.RemoveLine(0)
	if f.Len() != 1 {
		t.Errorf("Len() = %d after removing the last line, want 1", f.Len())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	f := DemoForm()
	s := f.Snapshot()
	f.UpdateLine(0, LinePatch{Description: Ptr("changed")})
	f.SetCustomerName("Someone else")

	if s.Lines[0].Description != "Elmontör, installation och montering" {
		t.Errorf("snapshot line changed to %q", s.Lines[0].Description)
	}
	if s.CustomerName != "Dockit El & Data AB" {
		t.Errorf("snapshot name changed to %q", s.CustomerName)
	}
}

func TestLineKindToggle(t *testing.T) {
	if KindWork.Toggle() != KindMaterial {
		t.Error("work should toggle to material")
	}
	if KindMaterial.Toggle() != KindWork {
		t.Error("material should toggle to work")
	}
	if LineKind("other").Toggle() != KindWork {
		t.Error("unknown kind should toggle to work")
	}
}
