package generator

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"single line fence", "```{\"a\":1}```", `{"a":1}`},
		{"whitespace", "\n\n  {\"a\":1}  \n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractObject(t *testing.T) {
	got, ok := extractObject(`Sure! {"a":{"b":2}} Hope that helps.`)
	if !ok || got != `{"a":{"b":2}}` {
		t.Errorf("extractObject = %q, %v", got, ok)
	}
	if _, ok := extractObject("no json here"); ok {
		t.Error("expected no object")
	}
	if _, ok := extractObject("} backwards {"); ok {
		t.Error("expected no object for reversed braces")
	}
}
