package eval

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReport(t *testing.T) {
	r := newScenario(t)
	out, err := Evaluate(context.Background(), r, []Result{
		{RefID: 100, Sent: "man on the left"},
		{RefID: 103, Sent: "A small dog!"},
	})
	require.NoError(t, err)

	rep := NewReport(r.Name(), r.SplitBy(), out)
	require.Len(t, rep.Samples, 2)
	assert.Equal(t, "a small dog", rep.Samples[1].Hypothesis)

	t.Run("HTML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, rep.WriteHTML(&buf))

		html := buf.String()
		assert.Contains(t, html, "<th>CIDEr</th>")
		assert.Contains(t, html, "refcoco (unc)")
		assert.Contains(t, html, "guy in red shirt")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, rep.WriteJSON(&buf))
		assert.Contains(t, buf.String(), `"Bleu_1"`)
		assert.Contains(t, buf.String(), `"split_by": "unc"`)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, rep.WriteYAML(&buf))

		var decoded struct {
			Dataset string             `yaml:"dataset"`
			Eval    map[string]float64 `yaml:"eval"`
			Samples []Sample           `yaml:"samples"`
		}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "refcoco", decoded.Dataset)
		assert.InDelta(t, out.Eval["METEOR"], decoded.Eval["METEOR"], 1e-9)
		assert.Len(t, decoded.Samples, 2)
	})
}
