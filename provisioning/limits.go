package provisioning

import "github.com/ruteri/panel-provisioning-backend/interfaces"

const (
	unlimitedDiskMB     = 5120
	unlimitedCPUPercent = 400
	diskPerMemoryFactor = 3
	ioWeight            = 500

	// MaxMemoryMB keeps the derived disk and CPU limits far from int64 overflow.
	MaxMemoryMB = 1 << 20
)

// DeriveLimits applies the resource policy for a requested memory size.
// memoryMB == 0 means unlimited memory with a fixed disk and CPU allowance.
func DeriveLimits(memoryMB int64) interfaces.ResourceLimits {
	limits := interfaces.ResourceLimits{
		Memory: memoryMB,
		Swap:   0,
		IO:     ioWeight,
	}
	if memoryMB > 0 {
		limits.Disk = memoryMB * diskPerMemoryFactor
		limits.CPU = memoryMB * 100 / 1024
		// cpu 0 is unlimited on the panel
		if limits.CPU < 1 {
			limits.CPU = 1
		}
	} else {
		limits.Disk = unlimitedDiskMB
		limits.CPU = unlimitedCPUPercent
	}
	return limits
}

// DefaultFeatureLimits are applied to every created server.
func DefaultFeatureLimits() interfaces.FeatureLimits {
	return interfaces.FeatureLimits{
		Databases:   1,
		Allocations: 1,
		Backups:     1,
	}
}
