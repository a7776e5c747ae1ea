package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/hcl"
	"github.com/vk/qsirecon/internal/registry"
)

const bidsManifest = `
interface "BIDSInfo" {
  source = "qsiprep.interfaces.bids"
  input "in_file" {
    mandatory = true
  }
  output "subject_id" {}
}

interface "ReadSidecarJSON" {
  source = "qsiprep.interfaces.bids"
  input "in_file" {}
  output "out_dict" {}
}
`

const itkManifest = `
interface "MultiApplyTransforms" {
  source = "fmriprep.interfaces.itk"
  input "input_image" {}
  output "out_files" {}
}
`

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(hcl.NewLoader())
}

func TestRegister_DuplicatePanics(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)

	r.Register(&config.InterfaceDefinition{Name: "FirstEcho", Source: "fmriprep.interfaces.multiecho"})
	require.Equal(t, 1, r.Len())

	require.PanicsWithValue(t,
		"interface 'FirstEcho' already registered from 'fmriprep.interfaces.multiecho'",
		func() {
			r.Register(&config.InterfaceDefinition{Name: "FirstEcho", Source: "qsiprep.interfaces"})
		},
	)
}

func TestRegister_EmptyNamePanics(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	require.Panics(t, func() { r.Register(&config.InterfaceDefinition{Source: "x"}) })
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRegistry(t)

	require.NoError(t, r.LoadManifest(ctx, []byte(bidsManifest), "bids.hcl"))
	require.NoError(t, r.LoadManifest(ctx, []byte(itkManifest), "itk.hcl"))

	require.Equal(t, []string{"BIDSInfo", "MultiApplyTransforms", "ReadSidecarJSON"}, r.Names())

	def, ok := r.Lookup("BIDSInfo")
	require.True(t, ok)
	require.Equal(t, "qsiprep.interfaces.bids", def.Source)
	require.True(t, def.HasInput("in_file"))
	require.True(t, def.HasOutput("subject_id"))
	require.False(t, def.HasOutput("in_file"))
	require.True(t, def.Inputs[0].Mandatory)

	_, ok = r.Lookup("Missing")
	require.False(t, ok)
}

func TestLoadManifest_DuplicateIsError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRegistry(t)

	require.NoError(t, r.LoadManifest(ctx, []byte(itkManifest), "itk.hcl"))
	err := r.LoadManifest(ctx, []byte(itkManifest), "again.hcl")
	require.Error(t, err)
	require.Contains(t, err.Error(), "again.hcl")
	require.Contains(t, err.Error(), "'MultiApplyTransforms' already registered")
}

func TestLoadManifest_SyntaxError(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)

	err := r.LoadManifest(context.Background(), []byte(`interface "Broken" {`), "broken.hcl")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file broken.hcl")
	require.Zero(t, r.Len())
}

func TestMustLookup(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	r.MustLoadManifest([]byte(itkManifest), "itk.hcl")

	require.Equal(t, "MultiApplyTransforms", r.MustLookup("MultiApplyTransforms").Name)
	require.PanicsWithValue(t, "interface 'Nope' is not registered", func() { r.MustLookup("Nope") })
}

func TestBySource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRegistry(t)
	require.NoError(t, r.LoadManifest(ctx, []byte(bidsManifest), "bids.hcl"))
	require.NoError(t, r.LoadManifest(ctx, []byte(itkManifest), "itk.hcl"))

	names := func(defs []*config.InterfaceDefinition) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.Name)
		}
		return out
	}

	cases := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"BIDSInfo", "MultiApplyTransforms", "ReadSidecarJSON"}},
		{"qsiprep", []string{"BIDSInfo", "ReadSidecarJSON"}},
		{"qsiprep.interfaces.bids", []string{"BIDSInfo", "ReadSidecarJSON"}},
		{"fmriprep", []string{"MultiApplyTransforms"}},
		{"fmri", nil},
		{"qsiprep.interfaces.images", nil},
	}
	for _, tc := range cases {
		t.Run(tc.prefix, func(t *testing.T) {
			require.Equal(t, tc.want, names(r.BySource(tc.prefix)))
		})
	}
}

func TestLoadManifestsRecursively(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "extra", "itk"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bids.hcl"), []byte(bidsManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra", "itk", "itk.hcl"), []byte(itkManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a manifest"), 0o644))

	r := newRegistry(t)
	require.NoError(t, r.LoadManifestsRecursively(context.Background(), dir))
	require.Equal(t, 3, r.Len())
}

func TestLoadManifestsRecursively_EmptyDir(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	require.NoError(t, r.LoadManifestsRecursively(context.Background(), t.TempDir()))
	require.Zero(t, r.Len())
}

func TestLoadManifestsRecursively_MissingDir(t *testing.T) {
	t.Parallel()
	r := newRegistry(t)
	err := r.LoadManifestsRecursively(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
