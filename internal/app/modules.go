package app

import (
	"github.com/vk/qsirecon/internal/registry"
	"github.com/vk/qsirecon/modules/fmriprep"
	"github.com/vk/qsirecon/modules/qsiprep"
	"github.com/vk/qsirecon/modules/qsirecon"
)

// coreModules is the definitive list of all interface sources that are
// compiled into the qsirecon binary.
var coreModules = []registry.Module{
	&qsiprep.Module{},
	&fmriprep.Module{},
	&qsirecon.Module{},
}
