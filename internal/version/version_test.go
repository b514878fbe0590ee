package version

import "testing"

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		version, commit string
		expected        string
	}{
		{"", "", "dev"},
		{"1.2.0", "", "1.2.0"},
		{"1.2.0", "0123456789abcdef", "1.2.0 (0123456789ab)"},
		{"", "abc", "dev (abc)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := String(); got != tt.expected {
			t.Errorf("String() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.expected)
		}
	}
}
