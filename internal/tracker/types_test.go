package tracker

import "testing"

func TestChangeOp(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   Op
	}{
		{
			name:   "no id means create",
			change: Change{Bug: Bug{Title: "new bug"}},
			want:   OpCreate,
		},
		{
			name:   "id with delete marker means delete",
			change: Change{Bug: Bug{ID: "PROJ-5", Title: "stale"}, Delete: true},
			want:   OpDelete,
		},
		{
			name:   "id without delete marker means update",
			change: Change{Bug: Bug{ID: "PROJ-7", Title: "edited"}},
			want:   OpUpdate,
		},
		{
			name: "delete marker without id still creates",
			// The delete marker only applies to bugs that exist remotely.
			change: Change{Bug: Bug{Title: "never created"}, Delete: true},
			want:   OpCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.change.Op(); got != tt.want {
				t.Errorf("Op() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBugExists(t *testing.T) {
	b := Bug{Title: "local only"}
	if b.Exists() {
		t.Error("Exists() = true for bug without id")
	}
	b.ID = "PROJ-1"
	if !b.Exists() {
		t.Error("Exists() = false for bug with id")
	}
}
