package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/qsirecon/internal/afq"
	"github.com/vk/qsirecon/internal/config"
	"github.com/vk/qsirecon/internal/hcl"
)

func newSchemaCommand(global *globalOptions) *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the pyAFQ arguments that parameter files may set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := global.appConfig()
			cfg.SchemaPath = schemaPath
			a, err := newApp(cmd, cfg)
			if err != nil {
				return err
			}
			s, err := a.SchemaProvider().Schema(a.Context(cmdContext(cmd)))
			if err != nil {
				return err
			}
			return writeSchema(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "pyAFQ argument schema file; the built-in schema when empty")
	return cmd
}

func writeSchema(w io.Writer, s *afq.Schema) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", s.Tool, s.Version); err != nil {
		return err
	}
	for _, sec := range s.Sections {
		if sec.Name == afq.DescriptionSection {
			continue
		}
		fmt.Fprintf(w, "\n[%s]\n", sec.Name)
		for _, arg := range sec.Args {
			group, isGroup := afq.GroupFor(arg.Name)
			if !isGroup {
				writeArgument(w, "  ", arg)
				continue
			}
			fmt.Fprintf(w, "  %s (collected into %s)\n", arg.Name, group)
			for _, sub := range arg.Subs {
				writeArgument(w, "    ", sub)
			}
		}
	}
	return nil
}

func writeArgument(w io.Writer, indent string, arg *config.Argument) {
	line := indent + arg.Name
	if arg.Type != "" {
		line += " (" + arg.Type + ")"
	}
	if arg.Default != nil {
		line += " = " + hcl.FormatValue(*arg.Default)
	}
	fmt.Fprintln(w, line)
}
