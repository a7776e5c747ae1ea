package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCleanDatasinks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	build := func(t *testing.T) *Workflow {
		wf := newTestWorkflow(t, "afq")
		_, err := wf.AddNode(ctx, "recon", "Recon")
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "ds_afq", "Sink", WithInput("suffix", cty.StringVal("afq")))
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "sink_other", "Sink")
		require.NoError(t, err)
		return wf
	}

	t.Run("with suffix", func(t *testing.T) {
		wf, err := CleanDatasinks(build(t), "pyafq", "/out")
		require.NoError(t, err)

		ds, _ := wf.Node("ds_afq")
		assert.Equal(t, "", ds.Inputs["out_path_base"].AsString())
		assert.Equal(t, filepath.Join("/out", "derivatives", "qsirecon-pyafq"), ds.Inputs["base_directory"].AsString())
		assert.Equal(t, "afq", ds.Inputs["suffix"].AsString(), "other inputs are kept")

		other, _ := wf.Node("sink_other")
		assert.Empty(t, other.Inputs, "only ds_ nodes are touched")
		recon, _ := wf.Node("recon")
		assert.Empty(t, recon.Inputs)
	})

	t.Run("without suffix", func(t *testing.T) {
		wf, err := CleanDatasinks(build(t), "", "/out")
		require.NoError(t, err)

		ds, _ := wf.Node("ds_afq")
		assert.Contains(t, ds.Inputs, "out_path_base")
		assert.NotContains(t, ds.Inputs, "base_directory")
	})

	t.Run("datasink without the expected inputs", func(t *testing.T) {
		wf := newTestWorkflow(t, "afq")
		_, err := wf.AddNode(ctx, "ds_plain", "Plain")
		require.NoError(t, err)
		_, err = CleanDatasinks(wf, "x", "/out")
		require.ErrorContains(t, err, "has no input 'out_path_base'")
	})
}

func TestDerivativesDir(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("out", "derivatives", "qsirecon-afq"), DerivativesDir("out", "afq"))
}
