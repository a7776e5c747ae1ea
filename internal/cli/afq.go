package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/qsirecon/internal/afq"
	"github.com/vk/qsirecon/internal/interchange"
	"github.com/vk/qsirecon/internal/paramfile"
	"github.com/vk/qsirecon/internal/pipeline"
	"github.com/vk/qsirecon/internal/workflows/recon"
)

type afqOptions struct {
	paramsPath  string
	suffix      string
	name        string
	outPath     string
	schemaPath  string
	ompNThreads int
	outputDir   string
	anatomical  []string
}

func newAFQCommand(global *globalOptions) *cobra.Command {
	opts := &afqOptions{}
	cmd := &cobra.Command{
		Use:   "afq",
		Short: "Build the pyAFQ tractometry workflow",
		Long: `Translates a pyAFQ parameter file (.toml, .yaml, .yml or .json) into
pyAFQ keyword arguments, assembles the workflow around them and writes it
as an HCL document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAFQ(cmd, global, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.paramsPath, "params", "p", "", "pyAFQ parameter file")
	f.StringVar(&opts.suffix, "suffix", "", "write derivatives to derivatives/qsirecon-<suffix>; none when empty")
	f.StringVar(&opts.name, "name", "afq", "workflow name")
	f.StringVarP(&opts.outPath, "out", "o", "", "write the workflow to this file instead of stdout")
	f.StringVar(&opts.schemaPath, "schema", "", "pyAFQ argument schema file; the built-in schema when empty")
	f.IntVar(&opts.ompNThreads, "omp-nthreads", 0, "threads per node; the process configuration value when 0")
	f.StringVar(&opts.outputDir, "output-dir", "", "qsirecon output directory; the process configuration value when empty")
	f.StringSliceVar(&opts.anatomical, "anat", nil, "anatomical derivatives available to the workflow, e.g. t1w_brain_mask")
	_ = cmd.MarkFlagRequired("params")
	return cmd
}

func runAFQ(cmd *cobra.Command, global *globalOptions, opts *afqOptions) error {
	if opts.ompNThreads < 0 {
		return usageError(fmt.Errorf("--omp-nthreads must not be negative"))
	}
	anat, err := anatomicalData(opts.anatomical)
	if err != nil {
		return usageError(err)
	}
	cfg := global.appConfig()
	cfg.SchemaPath = opts.schemaPath
	cfg.OMPNThreads = opts.ompNThreads
	cfg.OutputDir = opts.outputDir

	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}
	ctx := a.Context(cmdContext(cmd))
	logger := a.Logger()

	params, err := paramfile.Load(opts.paramsPath)
	if err != nil {
		return usageError(err)
	}
	logger.Debug("Parameter file loaded.", "path", opts.paramsPath, "params", len(params))

	wf, err := a.BuildPyAFQ(ctx, recon.PyAFQOptions{
		AvailableAnatomicalData: anat,
		Name:                    opts.name,
		QSIReconSuffix:          opts.suffix,
		Params:                  afq.RawParams(params),
	})
	if err != nil {
		return err
	}

	doc, err := pipeline.Encode(wf)
	if err != nil {
		return fmt.Errorf("failed to encode workflow: %w", err)
	}
	if opts.outPath == "" {
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	}
	if err := os.WriteFile(opts.outPath, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write workflow: %w", err)
	}
	logger.Info("Workflow written.", "path", opts.outPath)
	return nil
}

// anatomicalData marks the named derivatives as available. Every name must
// be one of interchange.AnatomicalInputFields.
func anatomicalData(names []string) (interchange.AnatomicalData, error) {
	known := interchange.AnatomicalInputFields()
	data := make(interchange.AnatomicalData, len(names))
	for _, name := range names {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown anatomical data %q: expected one of %s", name, strings.Join(known, ", "))
		}
		data[name] = true
	}
	return data, nil
}

// cmdContext returns the command's context, which is nil when the command
// runs outside ExecuteContext.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
