package lead

import (
	"context"
	"testing"
)

func TestLeadTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"new to contacted", StatusNew, StatusContacted, true},
		{"new to qualified", StatusNew, StatusQualified, true},
		{"new to lost", StatusNew, StatusLost, true},
		{"new to won skips qualification", StatusNew, StatusWon, false},
		{"contacted to qualified", StatusContacted, StatusQualified, true},
		{"qualified to won", StatusQualified, StatusWon, true},
		{"won reopens to contacted", StatusWon, StatusContacted, true},
		{"lost reopens to contacted", StatusLost, StatusContacted, true},
		{"won to lost", StatusWon, StatusLost, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLead("LD-001", "Maria Torres", SourceWeb)
			l.Status = tt.from

			err := l.TransitionTo(tt.to)
			if tt.allowed && err != nil {
				t.Fatalf("expected transition %s -> %s to be allowed: %v", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Fatalf("expected transition %s -> %s to be rejected", tt.from, tt.to)
			}
			if tt.allowed && l.Status != tt.to {
				t.Errorf("status not updated: got %s", l.Status)
			}
		})
	}
}

func TestLeadValidate(t *testing.T) {
	ctx := context.Background()

	l := NewLead("LD-001", "Maria Torres", SourceReferral)
	if err := l.Validate(ctx); err != nil {
		t.Fatalf("valid lead rejected: %v", err)
	}

	bad := NewLead("LD-002", "", SourceWeb)
	if err := bad.Validate(ctx); err == nil {
		t.Error("lead without name must fail validation")
	}

	email := "not-an-email"
	l.Email = &email
	if err := l.Validate(ctx); err == nil {
		t.Error("invalid email must fail validation")
	}

	l2 := NewLead("LD-003", "Juan", Source("carrier_pigeon"))
	if err := l2.Validate(ctx); err == nil {
		t.Error("unknown source must fail validation")
	}
}
