package app

import (
	"github.com/vk/powerupgo/internal/registry"
	"github.com/vk/powerupgo/modules/attachments"
	"github.com/vk/powerupgo/modules/auth"
	"github.com/vk/powerupgo/modules/badges"
	"github.com/vk/powerupgo/modules/buttons"
	"github.com/vk/powerupgo/modules/enrich"
	"github.com/vk/powerupgo/modules/settings"
)

// coreModules is the definitive list of all modules that are compiled into
// the powerupgo binary.
var coreModules = []registry.Module{
	&badges.Module{},
	&buttons.Module{},
	&attachments.Module{},
	&enrich.Module{},
	&auth.Module{},
	&settings.Module{},
}
