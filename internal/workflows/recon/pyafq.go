package recon

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/qsirecon/internal/afq"
	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/ctxlog"
	"github.com/vk/qsirecon/internal/hcl"
	"github.com/vk/qsirecon/internal/interchange"
	"github.com/vk/qsirecon/internal/pipeline"
	"github.com/vk/qsirecon/internal/registry"
	"github.com/vk/qsirecon/modules/qsirecon"
	"github.com/zclconf/go-cty/cty"
)

// Env carries the process-wide collaborators a workflow builder needs.
type Env struct {
	Config    *config.Config
	Registry  *registry.Registry
	Schema    afq.SchemaProvider
	Converter config.Converter
}

func (e Env) validate() error {
	var errs []error
	if e.Config == nil {
		errs = append(errs, errors.New("process configuration is missing"))
	}
	if e.Registry == nil {
		errs = append(errs, errors.New("interface registry is missing"))
	}
	if e.Schema == nil {
		errs = append(errs, errors.New("argument schema provider is missing"))
	}
	if e.Converter == nil {
		errs = append(errs, errors.New("value converter is missing"))
	}
	return errors.Join(errs...)
}

// PyAFQOptions are the per-call options of InitPyAFQWorkflow.
type PyAFQOptions struct {
	AvailableAnatomicalData interchange.AnatomicalData
	// Name is the workflow name; "afq" when empty.
	Name string
	// QSIReconSuffix selects the derivatives directory. No derivatives are
	// written when it is empty.
	QSIReconSuffix string
	Params         afq.RawParams
}

// UseExternalTrackingParam makes pyAFQ read the tractogram from the
// inputnode's tck_file field instead of tracking itself.
const UseExternalTrackingParam = "use_external_tracking"

// InitPyAFQWorkflow builds the pyAFQ tractometry workflow:
//
//	inputnode -> run_afq -> outputnode
//	                    \-> ds_<name> (only with a suffix)
func InitPyAFQWorkflow(ctx context.Context, env Env, opts PyAFQOptions) (*pipeline.Workflow, error) {
	if err := env.validate(); err != nil {
		return nil, fmt.Errorf("pyAFQ workflow: %w", err)
	}
	name := opts.Name
	if name == "" {
		name = "afq"
	}
	ctx = ctxlog.With(ctx, "workflow", name)
	logger := ctxlog.FromContext(ctx)
	wf, err := pipeline.New(name, env.Registry)
	if err != nil {
		return nil, err
	}

	inputFields := append(interchange.ReconWorkflowInputFields(), "tck_file")
	if _, err := wf.AddNode(ctx, "inputnode", qsirecon.IdentityInterface, pipeline.WithFields(inputFields...)); err != nil {
		return nil, err
	}
	if _, err := wf.AddNode(ctx, "outputnode", qsirecon.IdentityInterface,
		pipeline.WithFields("afq_dir", "recon_scalars"),
		pipeline.WithInput("recon_scalars", cty.EmptyTupleVal),
	); err != nil {
		return nil, err
	}

	schema, err := env.Schema.Schema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pyAFQ argument schema: %w", err)
	}
	kwargs, err := afq.Translate(ctx, schema, opts.Params, env.Converter)
	if err != nil {
		return nil, fmt.Errorf("failed to translate pyAFQ parameters: %w", err)
	}
	ompNThreads := int64(env.Config.Nipype.OMPNThreads)
	kwargs.Set("omp_nthreads", cty.NumberIntVal(ompNThreads))

	if _, err := wf.AddNode(ctx, "run_afq", qsirecon.PyAFQRecon,
		pipeline.WithInputs(map[string]cty.Value{
			"kwargs":  kwargs.Value(),
			"n_procs": cty.NumberIntVal(ompNThreads),
		}),
		pipeline.WithNProcs(int(ompNThreads)),
	); err != nil {
		return nil, err
	}

	external, err := useExternalTracking(opts.Params, env.Converter)
	if err != nil {
		return nil, err
	}
	if external {
		if err := wf.Connect(ctx, "inputnode", "tck_file", "run_afq", "tck_file"); err != nil {
			return nil, err
		}
	}
	inputs := append(pipeline.Same("dwi_file", "bval_file", "bvec_file"),
		pipeline.FieldPair{From: "dwi_mask", To: "mask_file"},
		pipeline.FieldPair{From: "t1_2_mni_reverse_transform", To: "itk_file"},
	)
	if err := wf.ConnectMany(ctx, "inputnode", "run_afq", inputs...); err != nil {
		return nil, err
	}
	if err := wf.Connect(ctx, "run_afq", "afq_dir", "outputnode", "afq_dir"); err != nil {
		return nil, err
	}

	if opts.QSIReconSuffix != "" {
		dsName := pipeline.DatasinkPrefix + name
		if _, err := wf.AddNode(ctx, dsName, qsirecon.ReconDerivativesDataSink,
			pipeline.WithInputs(map[string]cty.Value{
				"qsirecon_suffix":  cty.StringVal(opts.QSIReconSuffix),
				"extension":        cty.StringVal(".nii.gz"),
				"use_ext":          cty.False,
				"dismiss_entities": cty.ListVal([]cty.Value{cty.StringVal("desc")}),
			}),
			pipeline.RunWithoutSubmitting(),
		); err != nil {
			return nil, err
		}
		if err := wf.Connect(ctx, "run_afq", "afq_dir", dsName, "in_file"); err != nil {
			return nil, err
		}
	}

	wf.SetDesc(fmt.Sprintf("PyAFQ run on version %s with the following configuration: %s", schema.Version, kwargs))

	logger.Debug("pyAFQ workflow assembled.",
		"external_tracking", external,
		"suffix", opts.QSIReconSuffix,
		"anatomical_data", availableAnatomicalData(opts.AvailableAnatomicalData),
	)
	return pipeline.CleanDatasinks(wf, opts.QSIReconSuffix, env.Config.Execution.OutputDir)
}

// availableAnatomicalData lists the derivatives present in data, in the
// order of the anatomical input fields.
func availableAnatomicalData(data interchange.AnatomicalData) []string {
	var names []string
	for _, name := range interchange.AnatomicalInputFields() {
		if data.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

// useExternalTracking reports whether the user asked pyAFQ to use an
// externally computed tractogram.
func useExternalTracking(params afq.RawParams, conv config.Converter) (bool, error) {
	raw, ok := params[UseExternalTrackingParam]
	if !ok {
		return false, nil
	}
	v, err := conv.ConvertValue(raw)
	if err != nil {
		return false, fmt.Errorf("parameter %q: %w", UseExternalTrackingParam, err)
	}
	return hcl.Truthy(v), nil
}
