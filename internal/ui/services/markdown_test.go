package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	out string
	err error
}

func (s *stubRenderer) Render(content string, width int) (string, error) {
	return s.out, s.err
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name     string
		markdown bool
		renderer MarkdownRenderer
		width    int
		want     string
	}{
		{"Plain When Disabled", false, &stubRenderer{out: "rendered"}, 80, "# Title"},
		{"Rendered When Enabled", true, &stubRenderer{out: "rendered"}, 80, "rendered"},
		{"Plain On Error", true, &stubRenderer{err: errors.New("boom")}, 80, "# Title"},
		{"Plain Without Renderer", true, nil, 80, "# Title"},
		{"Plain Without Width", true, &stubRenderer{out: "rendered"}, 0, "# Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderText("# Title", tt.width, tt.markdown, tt.renderer))
		})
	}
}

func TestGlamourRenderer_Render(t *testing.T) {
	out, err := NewGlamourRenderer().Render("# Samples\n\nraw reads", 60)

	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Samples"))
	assert.True(t, strings.Contains(out, "reads"))
}
