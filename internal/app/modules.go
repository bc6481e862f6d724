package app

import (
	"github.com/vk/modgridgo/internal/registry"
	"github.com/vk/modgridgo/modules/env_vars"
	"github.com/vk/modgridgo/modules/http_client"
	"github.com/vk/modgridgo/modules/print"
	"github.com/vk/modgridgo/modules/socketio"
)

// coreModules is the definitive list of all factory modules compiled into
// the modgridgo binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&http_client.Module{},
	&print.Module{},
	&socketio.Module{},
}
