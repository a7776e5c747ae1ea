package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/qsirecon/internal/app"
	"github.com/vk/qsirecon/internal/hcl"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath     string
	logLevel       string
	logFormat      string
	interfacesPath string
}

// appConfig converts the shared flags into an app.Config.
func (o *globalOptions) appConfig() *app.Config {
	return &app.Config{
		ConfigPath:     o.configPath,
		InterfacesPath: o.interfacesPath,
		LogLevel:       strings.ToLower(o.logLevel),
		LogFormat:      strings.ToLower(o.logFormat),
	}
}

// newApp builds the application. Log output goes to the command's error
// stream so that documents written to stdout stay clean.
func newApp(cmd *cobra.Command, cfg *app.Config) (*app.App, error) {
	a, err := app.NewApp(cmd.ErrOrStderr(), cfg, hcl.NewLoader())
	if err != nil {
		return nil, usageError(err)
	}
	return a, nil
}

// NewRootCommand builds the qsirecon command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "qsirecon",
		Short: "Assemble diffusion MRI reconstruction workflows",
		Long: `qsirecon wires reconstruction interfaces into workflow graphs and writes
them as HCL documents for the workflow engine to execute.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to the HCL process configuration file")
	pf.StringVar(&opts.logLevel, "log-level", "", "logging level: debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", "", "log output format: text or json")
	pf.StringVar(&opts.interfacesPath, "interfaces-path", "", "directory of additional interface manifests (.hcl)")

	root.AddCommand(
		newAFQCommand(opts),
		newInterfacesCommand(opts),
		newSchemaCommand(opts),
	)
	return root
}

// Execute runs the command tree with args, writing to stdout and stderr.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}
