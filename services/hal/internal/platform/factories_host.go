//go:build !stm32f4

package platform

// DefaultBackend on host builds is a fresh register simulator so the boot
// path can run under go test and in the pintable tool.
func DefaultBackend() Backend { return NewSim() }
