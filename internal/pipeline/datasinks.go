package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// DatasinkPrefix marks nodes that write derivatives.
const DatasinkPrefix = "ds_"

// DerivativesDir returns the directory that reconstruction outputs with the
// given suffix are written to.
func DerivativesDir(outputDir, suffix string) string {
	return filepath.Join(outputDir, "derivatives", "qsirecon-"+suffix)
}

// CleanDatasinks prepares every derivatives-writing node of wf for the
// reconstruction output layout: the engine's own output sub-directory is
// disabled and, when suffix is set, outputs go to DerivativesDir.
func CleanDatasinks(wf *Workflow, suffix, outputDir string) (*Workflow, error) {
	for _, n := range wf.nodes {
		if !strings.HasPrefix(n.Address.Last(), DatasinkPrefix) {
			continue
		}
		addr := n.Address.String()
		if err := wf.SetInput(addr, "out_path_base", cty.StringVal("")); err != nil {
			return nil, fmt.Errorf("cleaning datasink: %w", err)
		}
		if suffix == "" {
			continue
		}
		if err := wf.SetInput(addr, "base_directory", cty.StringVal(DerivativesDir(outputDir, suffix))); err != nil {
			return nil, fmt.Errorf("cleaning datasink: %w", err)
		}
	}
	return wf, nil
}
