package pipeline

import "errors"

// Fatal pipeline conditions. ToolProvisioningFailed has no sentinel: a
// failed tool install is recorded on its stage result but never
// propagates.
var (
	ErrToolchainMissing  = errors.New("toolchain missing")
	ErrDependencyInstall = errors.New("dependency install failed")
	ErrPackaging         = errors.New("packaging failed")
)
