package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/qsirecon/internal/hcl"
	"github.com/vk/qsirecon/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

const testManifest = `
interface "IdentityInterface" {
  source  = "nipype.interfaces.utility"
  dynamic = true
}

interface "Recon" {
  source = "test.recon"
  input "dwi_file" {
    mandatory = true
  }
  input "kwargs" {}
  input "mask_file" {}
  output "out_dir" {}
}

interface "Sink" {
  source = "test.bids"
  input "in_file" {
    mandatory = true
  }
  input "base_directory" {}
  input "out_path_base" {}
  input "suffix" {}
  output "out_file" {}
}

interface "Plain" {
  source = "test.plain"
  input "in_file" {}
  output "out_file" {}
}
`

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New(hcl.NewLoader())
	require.NoError(t, r.LoadManifest(context.Background(), []byte(testManifest), "test.hcl"))
	return r
}

func newTestWorkflow(t *testing.T, name string) *Workflow {
	t.Helper()
	wf, err := New(name, testRegistry(t))
	require.NoError(t, err)
	return wf
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New("afq-1", testRegistry(t))
	require.ErrorContains(t, err, "invalid workflow name")

	_, err = New("afq", nil)
	require.Error(t, err)

	wf, err := New("afq", testRegistry(t))
	require.NoError(t, err)
	assert.Equal(t, "afq", wf.Name())
	assert.Empty(t, wf.Nodes())
}

func TestAddNode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("dynamic interface takes fields from the node", func(t *testing.T) {
		wf := newTestWorkflow(t, "wf")
		n, err := wf.AddNode(ctx, "inputnode", "IdentityInterface", WithFields("dwi_file", "tck_file"))
		require.NoError(t, err)
		assert.Equal(t, "wf.inputnode", n.Address.String())
		assert.True(t, n.HasInput("tck_file"))
		assert.True(t, n.HasOutput("dwi_file"))
		assert.False(t, n.HasOutput("afq_dir"))
	})

	t.Run("static inputs and resources", func(t *testing.T) {
		wf := newTestWorkflow(t, "wf")
		n, err := wf.AddNode(ctx, "recon", "Recon",
			WithInput("kwargs", cty.EmptyObjectVal),
			WithNProcs(4),
			RunWithoutSubmitting(),
		)
		require.NoError(t, err)
		assert.Equal(t, 4, n.NProcs)
		assert.True(t, n.RunWithoutSubmitting)
		assert.Contains(t, n.Inputs, "kwargs")

		require.NoError(t, wf.SetInput("recon", "mask_file", cty.StringVal("mask.nii.gz")))
		require.Error(t, wf.SetInput("recon", "nope", cty.True))
		require.Error(t, wf.SetInput("missing", "mask_file", cty.True))
	})

	failures := []struct {
		name    string
		node    string
		iface   string
		opts    []Option
		wantErr string
	}{
		{name: "invalid name", node: "run-afq", iface: "Recon", wantErr: "invalid node name"},
		{name: "unknown interface", node: "x", iface: "Nope", wantErr: "unknown interface 'Nope'"},
		{name: "fields on fixed interface", node: "x", iface: "Recon", opts: []Option{WithFields("a")}, wantErr: "has a fixed field list"},
		{name: "invalid field", node: "x", iface: "IdentityInterface", opts: []Option{WithFields("a b")}, wantErr: "invalid field name"},
		{name: "undeclared input", node: "x", iface: "Recon", opts: []Option{WithInput("out_dir", cty.True)}, wantErr: "has no input 'out_dir'"},
		{name: "unknown value", node: "x", iface: "Recon", opts: []Option{WithInput("kwargs", cty.UnknownVal(cty.String))}, wantErr: "must be a known value"},
		{name: "negative n_procs", node: "x", iface: "Recon", opts: []Option{WithNProcs(-1)}, wantErr: "must not be negative"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			wf := newTestWorkflow(t, "wf")
			_, err := wf.AddNode(ctx, tc.node, tc.iface, tc.opts...)
			require.ErrorContains(t, err, tc.wantErr)
			assert.Empty(t, wf.Nodes())
		})
	}

	t.Run("duplicate node", func(t *testing.T) {
		wf := newTestWorkflow(t, "wf")
		_, err := wf.AddNode(ctx, "recon", "Recon")
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "recon", "Plain")
		require.ErrorContains(t, err, "already exists")
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	build := func(t *testing.T) *Workflow {
		wf := newTestWorkflow(t, "wf")
		_, err := wf.AddNode(ctx, "inputnode", "IdentityInterface", WithFields("dwi_file", "dwi_mask"))
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "recon", "Recon")
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "outputnode", "IdentityInterface", WithFields("out_dir"))
		require.NoError(t, err)
		return wf
	}

	t.Run("many", func(t *testing.T) {
		wf := build(t)
		require.NoError(t, wf.ConnectMany(ctx, "inputnode", "recon",
			FieldPair{From: "dwi_file", To: "dwi_file"},
			FieldPair{From: "dwi_mask", To: "mask_file"},
		))
		require.NoError(t, wf.ConnectMany(ctx, "recon", "outputnode", Same("out_dir")...))

		assert.Equal(t, []*Connection{
			{Source: "inputnode", SourceField: "dwi_file", Dest: "recon", DestField: "dwi_file"},
			{Source: "inputnode", SourceField: "dwi_mask", Dest: "recon", DestField: "mask_file"},
			{Source: "recon", SourceField: "out_dir", Dest: "outputnode", DestField: "out_dir"},
		}, wf.Connections())
	})

	failures := []struct {
		name                          string
		src, srcField, dst, dstField string
		wantErr                       string
	}{
		{"unknown source", "nope", "x", "recon", "dwi_file", "node 'nope' not found"},
		{"unknown destination", "inputnode", "dwi_file", "nope", "x", "node 'nope' not found"},
		{"self", "recon", "out_dir", "recon", "dwi_file", "to itself"},
		{"source field is not an output", "recon", "dwi_file", "outputnode", "out_dir", "has no output 'dwi_file'"},
		{"destination field is not an input", "inputnode", "dwi_file", "recon", "out_dir", "has no input 'out_dir'"},
		{"undeclared dynamic field", "inputnode", "tck_file", "recon", "dwi_file", "has no output 'tck_file'"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			wf := build(t)
			err := wf.Connect(ctx, tc.src, tc.srcField, tc.dst, tc.dstField)
			require.ErrorContains(t, err, tc.wantErr)
			assert.Empty(t, wf.Connections())
		})
	}

	t.Run("input fed twice", func(t *testing.T) {
		wf := build(t)
		require.NoError(t, wf.Connect(ctx, "inputnode", "dwi_file", "recon", "dwi_file"))
		err := wf.Connect(ctx, "inputnode", "dwi_mask", "recon", "dwi_file")
		require.ErrorContains(t, err, "already connected from 'inputnode.dwi_file'")
	})
}

func TestListNodeNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	wf := newTestWorkflow(t, "afq")
	for _, name := range []string{"inputnode", "run_afq", "outputnode"} {
		_, err := wf.AddNode(ctx, name, "IdentityInterface", WithFields("x"))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"afq.inputnode", "afq.run_afq", "afq.outputnode"}, wf.ListNodeNames())
}

func TestNode_ByNameOrAddress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	wf := newTestWorkflow(t, "afq")
	want, err := wf.AddNode(ctx, "recon", "Recon")
	require.NoError(t, err)

	for _, name := range wf.ListNodeNames() {
		got, ok := wf.Node(name)
		require.True(t, ok, name)
		assert.Same(t, want, got)
	}

	testCases := []string{"", "other.recon", "afq.missing", "afq.recon.inner", "afq..recon", "missing"}
	for _, name := range testCases {
		_, ok := wf.Node(name)
		assert.False(t, ok, name)
	}

	require.NoError(t, wf.SetInput("afq.recon", "mask_file", cty.StringVal("mask.nii.gz")))
	assert.Equal(t, "mask.nii.gz", want.Inputs["mask_file"].AsString())
	assert.ErrorContains(t, wf.SetInput("other.recon", "mask_file", cty.True), "node 'other.recon' not found in workflow 'afq'")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		wf := newTestWorkflow(t, "wf")
		_, err := wf.AddNode(ctx, "inputnode", "IdentityInterface", WithFields("dwi_file"))
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "recon", "Recon")
		require.NoError(t, err)
		require.NoError(t, wf.Connect(ctx, "inputnode", "dwi_file", "recon", "dwi_file"))
		require.NoError(t, wf.Validate(ctx))
	})

	t.Run("missing mandatory input", func(t *testing.T) {
		wf := newTestWorkflow(t, "wf")
		_, err := wf.AddNode(ctx, "recon", "Recon")
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "ds_recon", "Sink", WithInput("in_file", cty.StringVal("x")))
		require.NoError(t, err)

		err = wf.Validate(ctx)
		require.ErrorContains(t, err, "node 'recon': mandatory input 'dwi_file' is neither set nor connected")
		assert.NotContains(t, err.Error(), "ds_recon")
	})

	t.Run("cycle", func(t *testing.T) {
		wf := newTestWorkflow(t, "wf")
		_, err := wf.AddNode(ctx, "a", "Plain")
		require.NoError(t, err)
		_, err = wf.AddNode(ctx, "b", "Plain")
		require.NoError(t, err)
		require.NoError(t, wf.Connect(ctx, "a", "out_file", "b", "in_file"))
		require.NoError(t, wf.Connect(ctx, "b", "out_file", "a", "in_file"))

		require.ErrorContains(t, wf.Validate(ctx), "cycle detected")
		_, err = wf.TopologicalOrder()
		require.Error(t, err)
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	wf := newTestWorkflow(t, "wf")
	// Added out of data-flow order on purpose.
	_, err := wf.AddNode(ctx, "outputnode", "IdentityInterface", WithFields("out_dir"))
	require.NoError(t, err)
	_, err = wf.AddNode(ctx, "recon", "Recon")
	require.NoError(t, err)
	_, err = wf.AddNode(ctx, "inputnode", "IdentityInterface", WithFields("dwi_file"))
	require.NoError(t, err)
	require.NoError(t, wf.Connect(ctx, "recon", "out_dir", "outputnode", "out_dir"))
	require.NoError(t, wf.Connect(ctx, "inputnode", "dwi_file", "recon", "dwi_file"))

	order, err := wf.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"inputnode", "recon", "outputnode"}, order)
}
