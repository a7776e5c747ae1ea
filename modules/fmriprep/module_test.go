package fmriprep_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/qsirecon/internal/hcl"
	"github.com/vk/qsirecon/internal/registry"
	"github.com/vk/qsirecon/modules/fmriprep"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	r := registry.New(hcl.NewLoader())
	(&fmriprep.Module{}).Register(r)
	require.NoError(t, r.Validate(context.Background()))

	bySource := map[string][]string{
		"fmriprep.interfaces.freesurfer": {"FSDetectInputs", "FSInjectBrainExtracted", "MakeMidthickness", "MedialNaNs", "RefineBrainMask", "StructuralReference"},
		"fmriprep.interfaces.surf":       {"GiftiNameSource", "GiftiSetAnatomicalStructure", "NormalizeSurf"},
		"fmriprep.interfaces.reports":    {"AboutSummary", "FunctionalSummary", "SubjectSummary"},
		"fmriprep.interfaces.utils":      {"AddTPMs", "AddTSVHeader", "ConcatAffines", "JoinTSVColumns", "TPM2ROI"},
		"fmriprep.interfaces.fmap":       {"FieldEnhance", "FieldToHz", "FieldToRadS", "Phasediff2Fieldmap", "Phases2Fieldmap"},
		"fmriprep.interfaces.confounds":  {"FMRISummary", "GatherConfounds", "ICAConfounds"},
		"fmriprep.interfaces.itk":        {"MCFLIRT2ITK", "MultiApplyTransforms"},
		"fmriprep.interfaces.multiecho":  {"FirstEcho"},
	}
	total := 0
	for source, want := range bySource {
		var got []string
		for _, def := range r.BySource(source) {
			got = append(got, def.Name)
		}
		require.Equal(t, want, got, source)
		total += len(want)
	}
	require.Equal(t, total, r.Len())
	require.Len(t, r.BySource(fmriprep.Source), total)
}
