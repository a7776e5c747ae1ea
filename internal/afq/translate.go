package afq

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/ctxlog"
)

// DescriptionSection only documents the configuration file and holds no
// session arguments.
const DescriptionSection = "AFQ_desc"

// RawParams is a flat user parameter mapping as decoded from a parameter file.
type RawParams map[string]any

// groupNames maps the schema argument that stands for a parameter group to
// the keyword the group is passed under.
var groupNames = map[string]string{
	"CLEANING":            "clean_params",
	"SEGMENTATION":        "segmentation_params",
	"TRACTOGRAPHY":        "tracking_params",
	"clean_params":        "clean_params",
	"segmentation_params": "segmentation_params",
	"tracking_params":     "tracking_params",
}

// IgnoredParams are the session arguments qsirecon sets up itself. They are
// never passed through from user parameters.
var IgnoredParams = []string{
	"bids_path",
	"bids_filters",
	"preproc_pipeline",
	"participant_labels",
	"output_dir",
	"parallel_params",
	"bids_layout_kwargs",
}

// GroupFor returns the group keyword for a schema argument, and whether the
// argument stands for a parameter group at all.
func GroupFor(arg string) (string, bool) {
	g, ok := groupNames[arg]
	return g, ok
}

// Translate builds the pyAFQ keyword arguments for params according to the
// schema. Parameters the schema does not know are ignored. Conversion errors
// are returned wrapped with the offending parameter name.
func Translate(ctx context.Context, schema *Schema, params RawParams, conv config.Converter) (*Arguments, error) {
	if schema == nil {
		return nil, errors.New("argument schema is nil")
	}
	logger := ctxlog.FromContext(ctx)

	args := NewArguments()
	for _, sec := range schema.Sections {
		if sec.Name == DescriptionSection {
			continue
		}
		for _, arg := range sec.Args {
			if group, ok := GroupFor(arg.Name); ok {
				values := args.EnsureGroup(group)
				for _, sub := range arg.Subs {
					raw, ok := params[sub.Name]
					if !ok {
						continue
					}
					v, err := conv.ConvertValue(raw)
					if err != nil {
						return nil, fmt.Errorf("parameter %q of %s: %w", sub.Name, group, err)
					}
					values[sub.Name] = v
				}
				continue
			}

			raw, ok := params[arg.Name]
			if !ok {
				continue
			}
			v, err := conv.ConvertValue(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", arg.Name, err)
			}
			args.Set(arg.Name, v)
		}
	}

	for _, key := range IgnoredParams {
		if args.Has(key) {
			logger.Debug("Dropping parameter managed by qsirecon.", "param", key)
		}
		args.Delete(key)
	}

	logger.Debug("pyAFQ arguments translated.", "schema_version", schema.Version, "params", len(params), "arguments", args.Len())
	return args, nil
}
