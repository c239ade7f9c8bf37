package domain

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/turris-cz/turrishw/src/internal/metrics"
	"github.com/turris-cz/turrishw/src/internal/pciids"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
	"github.com/turris-cz/turrishw/src/internal/utils"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Usage:
//
//	deps, err := domain.NewAppDependencies(domain.AppConfig{Root: "/"})
//	acc := deps.Accessor()
type AppDependencies struct {
	accessor HardwareAccessor
	vendors  VendorResolver
	recorder EnumerationRecorder
	metrics  *metrics.Collector
}

// AppConfig holds configuration for creating application dependencies.
type AppConfig struct {
	// Root is the directory sys/, proc/ and usr/ are read from. Empty means "/".
	Root string

	// PCIIDsPath is the pci.ids database, relative to Root unless absolute.
	// Empty means the hwdata default.
	PCIIDsPath string

	// Registerer receives the metrics. Nil means the global Prometheus registry.
	Registerer prometheus.Registerer

	// DisableMetrics skips metrics registration entirely.
	DisableMetrics bool
}

// NewAppDependencies creates a new dependency container with production implementations.
func NewAppDependencies(cfg AppConfig) (*AppDependencies, error) {
	accessor := sysfs.New(cfg.Root)

	pciIDsPath := cfg.PCIIDsPath
	if pciIDsPath == "" {
		pciIDsPath = sysfs.DefaultPCIIDs
	}
	vendors := pciids.NewCache(utils.GetAbsolutePath(pciIDsPath, accessor.Root()))

	deps := &AppDependencies{
		accessor: accessor,
		vendors:  vendors,
	}

	if !cfg.DisableMetrics {
		collector, err := metrics.NewCollector(cfg.Registerer)
		if err != nil {
			return nil, err
		}
		deps.metrics = collector
		deps.recorder = collector
	}

	return deps, nil
}

// NewTestDependencies creates a dependency container from the given parts.
//
// Any of them may be nil; a nil vendors resolver disables vendor lookup and a
// nil recorder disables metrics.
func NewTestDependencies(accessor HardwareAccessor, vendors VendorResolver, recorder EnumerationRecorder) *AppDependencies {
	return &AppDependencies{
		accessor: accessor,
		vendors:  vendors,
		recorder: recorder,
	}
}

// Accessor returns the hardware view.
func (d *AppDependencies) Accessor() HardwareAccessor {
	return d.accessor
}

// Vendors returns the PCI vendor resolver, or nil.
func (d *AppDependencies) Vendors() VendorResolver {
	return d.vendors
}

// Recorder returns the enumeration recorder, or nil.
func (d *AppDependencies) Recorder() EnumerationRecorder {
	return d.recorder
}

// Metrics returns the Prometheus collector, or nil when metrics are disabled
// or a custom recorder was injected.
func (d *AppDependencies) Metrics() *metrics.Collector {
	return d.metrics
}
