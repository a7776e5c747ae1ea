package pipeline

import (
	"errors"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders wf as an HCL document for the workflow engine:
//
//	workflow "afq" {
//	  description = "..."
//	  node "run_afq" {
//	    interface = "PyAFQRecon"
//	    source    = "qsirecon.interfaces.pyafq"
//	    n_procs   = 8
//	    inputs {
//	      n_procs = 8
//	    }
//	  }
//	  connect {
//	    from = inputnode.dwi_file
//	    to   = run_afq.dwi_file
//	  }
//	}
func Encode(wf *Workflow) ([]byte, error) {
	if wf == nil {
		return nil, errors.New("workflow is nil")
	}
	f := hclwrite.NewEmptyFile()
	wb := f.Body().AppendNewBlock("workflow", []string{wf.Name()}).Body()
	if wf.description != "" {
		wb.SetAttributeValue("description", cty.StringVal(wf.description))
	}

	for _, n := range wf.nodes {
		wb.AppendNewline()
		nb := wb.AppendNewBlock("node", []string{n.Name()}).Body()
		nb.SetAttributeValue("interface", cty.StringVal(n.Interface.Name))
		nb.SetAttributeValue("source", cty.StringVal(n.Interface.Source))
		if len(n.Fields) > 0 {
			fields := make([]cty.Value, len(n.Fields))
			for i, field := range n.Fields {
				fields[i] = cty.StringVal(field)
			}
			nb.SetAttributeValue("fields", cty.ListVal(fields))
		}
		if n.NProcs > 0 {
			nb.SetAttributeValue("n_procs", cty.NumberIntVal(int64(n.NProcs)))
		}
		if n.RunWithoutSubmitting {
			nb.SetAttributeValue("run_without_submitting", cty.True)
		}
		if len(n.Inputs) == 0 {
			continue
		}

		ib := nb.AppendNewBlock("inputs", nil).Body()
		keys := make([]string, 0, len(n.Inputs))
		for k := range n.Inputs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			ib.SetAttributeValue(k, n.Inputs[k])
		}
	}

	for _, c := range wf.connections {
		wb.AppendNewline()
		cb := wb.AppendNewBlock("connect", nil).Body()
		cb.SetAttributeTraversal("from", fieldTraversal(c.Source, c.SourceField))
		cb.SetAttributeTraversal("to", fieldTraversal(c.Dest, c.DestField))
	}

	return hclwrite.Format(f.Bytes()), nil
}

func fieldTraversal(node, field string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: node},
		hcl.TraverseAttr{Name: field},
	}
}
