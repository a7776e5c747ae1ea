package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the process-wide settings that used to be ambient global
// state. It is passed explicitly to every workflow constructor.
type Config struct {
	Nipype    Nipype
	Execution Execution
	Log       Log
}

// Nipype holds workflow-engine resource settings.
type Nipype struct {
	// OMPNThreads is the number of threads a single node may use.
	OMPNThreads int `validate:"gte=1"`
	// NProcs is the number of processes the engine may run at once.
	NProcs int `validate:"gte=1,gtefield=OMPNThreads"`
}

// Execution holds run-level settings.
type Execution struct {
	OutputDir string `validate:"required"`
}

// Log holds logging settings.
type Log struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=text json"`
}

// Default returns a configuration sized for the current machine.
func Default() Config {
	n := runtime.NumCPU()
	return Config{
		Nipype:    Nipype{OMPNThreads: n, NProcs: n},
		Execution: Execution{OutputDir: "."},
		Log:       Log{Level: "info", Format: "text"},
	}
}

var validate = validator.New()

// Validate checks every field constraint and reports all violations at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration:\n- %s", strings.Join(msgs, "\n- "))
}
