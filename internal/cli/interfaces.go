package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vk/qsirecon/internal/config"
)

func newInterfacesCommand(global *globalOptions) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "interfaces",
		Short: "List the registered workflow interfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, global.appConfig())
			if err != nil {
				return err
			}
			defs := a.Registry().BySource(source)
			if len(defs) == 0 {
				return usageError(fmt.Errorf("no interfaces registered from %q", source))
			}
			return writeInterfaces(cmd, defs)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "only list interfaces from this source package, e.g. fmriprep or qsiprep.interfaces.bids")
	return cmd
}

func writeInterfaces(cmd *cobra.Command, defs []*config.InterfaceDefinition) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tINPUTS\tOUTPUTS")
	for _, def := range defs {
		inputs, outputs := fieldNames(def.Inputs), fieldNames(def.Outputs)
		if def.Dynamic {
			inputs, outputs = "(per node)", "(per node)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, def.Source, inputs, outputs)
	}
	return w.Flush()
}

func fieldNames(fields []*config.FieldDefinition) string {
	if len(fields) == 0 {
		return "-"
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		if f.Mandatory {
			names[i] += "*"
		}
	}
	return strings.Join(names, ",")
}
