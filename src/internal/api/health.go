package api

import (
	"net/http"

	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// CheckHealth reports whether the hardware view is usable.
// GET /api/v1/health
//
// An unhealthy service answers 503. The PCI ID database is optional, so its
// check never makes the service unhealthy.
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Checks:  make(map[string]CheckResult),
	}

	info, err := h.interfaces.GetBoard()
	switch {
	case err != nil:
		response.Healthy = false
		response.Checks["board"] = CheckResult{
			Passed:  false,
			Message: "Failed to identify board: " + err.Error(),
		}
	case !info.Supported:
		response.Healthy = false
		response.Checks["board"] = CheckResult{
			Passed:  false,
			Message: "Unsupported board model: " + info.Model,
		}
	default:
		response.Checks["board"] = CheckResult{
			Passed:  true,
			Message: "Detected " + info.Board.String(),
		}
	}

	if h.deps.Accessor().IsDir(sysfs.NetClassDir) {
		response.Checks["net_class"] = CheckResult{
			Passed:  true,
			Message: "Network class directory is present",
		}
	} else {
		response.Healthy = false
		response.Checks["net_class"] = CheckResult{
			Passed:  false,
			Message: "Network class directory is missing",
		}
	}

	if vendors := h.deps.Vendors(); vendors == nil {
		response.Checks["pci_ids"] = CheckResult{
			Passed:  true,
			Message: "Vendor lookup disabled",
		}
	} else if err := vendors.Err(); err != nil {
		response.Checks["pci_ids"] = CheckResult{
			Passed:  false,
			Message: "Vendor names unavailable: " + err.Error(),
		}
	} else {
		response.Checks["pci_ids"] = CheckResult{
			Passed:  true,
			Message: "PCI ID database loaded from " + vendors.Path(),
		}
	}

	status := http.StatusOK
	if !response.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
