package scriptvec

import "runtime/debug"

// Version reports the module's build version string for diagnostic display.
// The value is stamped by the build tooling; it has no interaction with the
// safe-integer domain.
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
