package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "planets": [
    {"name":"Sun","thaiName":"อาทิตย์","symbol":"๑","zodiacIndex":5,"degrees":12.4},
    {"name":"Moon","thaiName":"จันทร์","symbol":"๒","zodiacIndex":0,"degrees":3}
  ],
  "ascendant": {"zodiacIndex":2,"degrees":17.25},
  "prediction": "ดวงดี"
}`

func TestRunRenderStdio(t *testing.T) {
	var out bytes.Buffer
	err := runRender(strings.NewReader(samplePayload), &out, renderOptions{in: "-", out: "-"})
	require.NoError(t, err)

	svg := out.String()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "๑")
	assert.Contains(t, svg, "ล")
}

func TestRunRenderFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "payload.json")
	out := filepath.Join(dir, "chart.svg")
	require.NoError(t, os.WriteFile(in, []byte(samplePayload), 0o600))

	require.NoError(t, runRender(nil, nil, renderOptions{in: in, out: out}))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `viewBox="0 0 500 500"`)
}

func TestRunRenderRejectsInvalidPayload(t *testing.T) {
	err := runRender(strings.NewReader(`{"planets":[]}`), &bytes.Buffer{}, renderOptions{in: "-", out: "-"})
	assert.Error(t, err)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "render"}, names)
}
