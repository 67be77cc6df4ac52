package validation

import "testing"

func TestValidateNIP(t *testing.T) {
	valid := []string{"123456", "198501012010121002", "000000000000000000000000000000"}
	for _, nip := range valid {
		if !ValidateNIP(nip) {
			t.Errorf("expected %q to be a valid NIP", nip)
		}
	}

	invalid := []string{"", "12345", "12345a", "1985-0101", "1234567890123456789012345678901"}
	for _, nip := range invalid {
		if ValidateNIP(nip) {
			t.Errorf("expected %q to be rejected", nip)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in); got != tc.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Name string `validate:"required,min=3"`
		Week int    `validate:"min=1,max=16"`
	}

	v := NewValidator()

	if err := v.ValidateStruct(payload{Name: "PDB01", Week: 8}); err != nil {
		t.Errorf("expected valid payload to pass, got %v", err)
	}

	if err := v.ValidateStruct(payload{Name: "", Week: 8}); err == nil {
		t.Error("expected missing name to fail validation")
	}

	if err := v.ValidateStruct(payload{Name: "PDB01", Week: 17}); err == nil {
		t.Error("expected out-of-range week to fail validation")
	}
}
