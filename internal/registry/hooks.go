package registry

// ExtensionPoints is the fixed set of hooks the host runtime may invoke.
// A capability manifest binding any other name is a configuration error.
var ExtensionPoints = []string{
	"attachment-sections",
	"attachment-thumbnail",
	"authorization-status",
	"board-buttons",
	"card-badges",
	"card-buttons",
	"card-detail-badges",
	"card-from-url",
	"format-url",
	"show-authorization",
	"show-settings",
}

// KnownExtensionPoint reports whether name is one of the host's hooks.
func KnownExtensionPoint(name string) bool {
	for _, hook := range ExtensionPoints {
		if hook == name {
			return true
		}
	}
	return false
}
