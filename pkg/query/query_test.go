package query

import "testing"

func TestParse(t *testing.T) {
	testCases := []struct {
		input       string
		term        string
		directive   Directive
		description string
	}{
		{"nginx", "nginx", None, "Plain term"},
		{"  nginx  ", "nginx", None, "Surrounding whitespace"},
		{"nginx sort:memory", "nginx", ByMemory, "Memory directive"},
		{"nginx sort:cpu", "nginx", ByCPUTime, "CPU directive"},
		{"nginx sort:disk", "nginx", None, "Unknown directive"},
		{"nginx sort:", "nginx", None, "Empty directive"},
		{"sort:memory", "", ByMemory, "Directive only"},
		{"205", "205", None, "Pid term"},
		{"my sort:cpu sort:memory", "my", ByMemory, "Memory wins when both present"},
		{"mysort:cpu", "my", ByCPUTime, "Not token-boundary aware"},
		{"", "", None, "Empty input"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			q := Parse(tc.input)
			if q.Term != tc.term {
				t.Errorf("Input '%s': expected term '%s', got '%s'", tc.input, tc.term, q.Term)
			}
			if q.Sort != tc.directive {
				t.Errorf("Input '%s': expected directive %s, got %s", tc.input, tc.directive, q.Sort)
			}
			if q.Raw != tc.input {
				t.Errorf("Input '%s': raw not preserved, got '%s'", tc.input, q.Raw)
			}
		})
	}
}

func TestDirectiveString(t *testing.T) {
	for d, want := range map[Directive]string{None: "none", ByMemory: "memory", ByCPUTime: "cpu"} {
		if got := d.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
