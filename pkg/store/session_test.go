package store

import "testing"

func TestWriteSlotFirstWriteWins(t *testing.T) {
	s := NewSession("3f2504e0-4f89-41d3-9a0c-0305e82c3301")

	s.WriteSlot("billing_policies", "first")
	s.WriteSlot("billing_policies", "second")

	v, ok := s.CachedSlot("billing_policies")
	if !ok || v != "first" {
		t.Errorf("slot = %q, %v; want first write to win", v, ok)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSession("3f2504e0-4f89-41d3-9a0c-0305e82c3302")
	s.AppendTurn(RoleUser, "hello")
	s.WriteSlot("billing_policies", "cached")

	c := s.Clone()
	c.AppendTurn(RoleAssistant, "hi")
	c.CacheSlots["other"] = "x"

	if len(s.Turns) != 1 {
		t.Errorf("original turns = %d, want 1", len(s.Turns))
	}
	if _, ok := s.CachedSlot("other"); ok {
		t.Errorf("original cache mutated through clone")
	}
	if v, _ := c.CachedSlot("billing_policies"); v != "cached" {
		t.Errorf("clone lost cached slot")
	}
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		raw     string
		want    Domain
		wantErr bool
	}{
		{raw: "technical", want: DomainTechnical},
		{raw: " Billing ", want: DomainBilling},
		{raw: "COMPLIANCE", want: DomainCompliance},
		{raw: "sales", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDomain(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDomain(%q) = %v, want error", tt.raw, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDomain(%q) = %v, %v; want %v", tt.raw, got, err, tt.want)
		}
	}
}
