package domain

import "testing"

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Login Screen", want: "Login Screen"},
		{name: "node id colon", in: "12:34", want: "12_34"},
		{name: "slashes", in: "icons/arrow\\left", want: "icons_arrow_left"},
		{name: "windows reserved", in: `a*b?c"d<e>f|g`, want: "a_b_c_d_e_f_g"},
		{name: "control chars", in: "tab\there", want: "tab_here"},
		{name: "surrounding space trimmed", in: "  padded  ", want: "padded"},
		{name: "empty", in: "", want: "_"},
		{name: "only unsafe", in: "///", want: "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFileName(tt.in); got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameAllocator(t *testing.T) {
	a := NewNameAllocator()

	if got := a.Claim("Home"); got != "Home" {
		t.Errorf("first claim = %q, want Home", got)
	}
	if got := a.Claim("Home"); got != "Home 2" {
		t.Errorf("second claim = %q, want Home 2", got)
	}
	if got := a.Claim("Home"); got != "Home 3" {
		t.Errorf("third claim = %q, want Home 3", got)
	}
	if got := a.Claim("Settings"); got != "Settings" {
		t.Errorf("distinct claim = %q, want Settings", got)
	}
}

func TestNameAllocatorSanitizesBeforeCounting(t *testing.T) {
	a := NewNameAllocator()

	// Two names that sanitize to the same base must collide.
	if got := a.Claim("a/b"); got != "a_b" {
		t.Errorf("first claim = %q, want a_b", got)
	}
	if got := a.Claim("a\\b"); got != "a_b 2" {
		t.Errorf("second claim = %q, want a_b 2", got)
	}
}
