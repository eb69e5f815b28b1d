package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "emphasis",
			input:    "some **bold** text",
			contains: []string{"<strong>bold</strong>"},
		},
		{
			name:     "heading",
			input:    "# Title",
			contains: []string{"<h1", "Title</h1>"},
		},
		{
			name:        "script stripped",
			input:       "hello <script>alert(1)</script>",
			contains:    []string{"hello"},
			notContains: []string{"<script", "alert(1)"},
		},
		{
			name:        "javascript link stripped",
			input:       "[click](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:        "event handler stripped",
			input:       `<img src="x.png" onerror="steal()">`,
			notContains: []string{"onerror", "steal()"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Render(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, bad := range tt.notContains {
				assert.NotContains(t, out, bad)
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", NewRenderer().Render(""))
}
