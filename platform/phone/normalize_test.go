package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare indian mobile gains the country code", "9876543210", "+919876543210"},
		{"already e164 passes through", "+919876543210", "+919876543210"},
		{"spaces and dashes are absorbed", "98765 43210", "+919876543210"},
		{"invalid number returns trimmed input", "call me anytime", "call me anytime"},
		{"too short returns trimmed input", "12345", "12345"},
		{"empty stays empty", "  ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("9876543210") {
		t.Error("expected a ten digit indian mobile to be valid")
	}
	if IsValid("12345") {
		t.Error("expected a short number to be invalid")
	}
	if IsValid("") {
		t.Error("expected empty input to be invalid")
	}
}
