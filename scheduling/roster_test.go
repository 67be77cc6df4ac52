package scheduling

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRosterValidation(t *testing.T) {
	tests := []struct {
		name        string
		members     []int64
		coordinator int64
		wantReason  Reason
	}{
		{"empty", nil, 0, ""},
		{"solo", []int64{1}, 1, ""},
		{"full", []int64{1, 2}, 2, ""},
		{"deferred coordinator", []int64{1}, 0, ""},
		{"over cap", []int64{1, 2, 3}, 0, ReasonInvalidRoster},
		{"duplicate member", []int64{1, 1}, 0, ReasonInvalidRoster},
		{"coordinator not a member", []int64{1, 2}, 3, ReasonInvalidRoster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.members, tt.coordinator)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("NewRoster(%v, %d): %v", tt.members, tt.coordinator, err)
				}
				return
			}
			var te *TransitionError
			if !errors.As(err, &te) || te.Reason != tt.wantReason {
				t.Fatalf("NewRoster(%v, %d) = %v, want reason %s", tt.members, tt.coordinator, err, tt.wantReason)
			}
		})
	}
}

func TestRosterAddCap(t *testing.T) {
	r, err := NewRoster([]int64{1, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	var te *TransitionError
	if err := r.Add(3); !errors.As(err, &te) || te.Reason != ReasonAlreadyFull {
		t.Fatalf("Add beyond cap = %v, want %s", err, ReasonAlreadyFull)
	}
}

func TestRosterRemoveCompactsAndTransfers(t *testing.T) {
	r, err := NewRoster([]int64{1, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Remove(1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.Members(), []int64{2}) {
		t.Fatalf("Members = %v, want [2]", r.Members())
	}
	if r.Coordinator() != 2 {
		t.Fatalf("coordinator must transfer, got %d", r.Coordinator())
	}
	if err := r.Remove(2); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 || r.Coordinator() != 0 {
		t.Fatalf("empty roster must have no coordinator, got %d/%d", r.Len(), r.Coordinator())
	}
}

func TestRosterRemoveNonMember(t *testing.T) {
	r, _ := NewRoster([]int64{1}, 0)
	var te *TransitionError
	if err := r.Remove(9); !errors.As(err, &te) || te.Reason != ReasonNotAMember {
		t.Fatalf("Remove(9) = %v, want %s", err, ReasonNotAMember)
	}
}

func TestRosterSetCoordinatorRequiresMembership(t *testing.T) {
	r, _ := NewRoster([]int64{1, 2}, 0)
	if err := r.SetCoordinator(2); err != nil {
		t.Fatal(err)
	}
	if r.Coordinator() != 2 {
		t.Fatalf("Coordinator = %d, want 2", r.Coordinator())
	}
	var te *TransitionError
	if err := r.SetCoordinator(7); !errors.As(err, &te) || te.Reason != ReasonInvalidRoster {
		t.Fatalf("SetCoordinator(7) = %v, want %s", err, ReasonInvalidRoster)
	}
}
