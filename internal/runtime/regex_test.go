package runtime

import "testing"

func TestMatchString(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"simple literal", "abc", "xxabcxx", true},
		{"no match", "abc", "xyz", false},
		{"digit class", `[0-9]+`, "n42", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegexCacheReusesCompiledPattern(t *testing.T) {
	c := NewRegexCache(10)
	r1, err := c.Get("a+")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	r2, err := c.Get("a+")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r1 != r2 {
		t.Error("Get should return the same *Regex for a repeated pattern")
	}
}
