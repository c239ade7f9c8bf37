package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/hw"
)

// FormatJSON renders result as an indented JSON object keyed by interface
// name.
func FormatJSON(result *hw.Result) ([]byte, error) {
	if result == nil {
		result = hw.NewResult(nil)
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, errors.NewInternalError("failed to encode interfaces", err)
	}
	return append(out, '\n'), nil
}

// FormatText renders one line per interface using tmpl, whose {{placeholders}}
// are the JSON attribute names plus {{name}}. Unset optional attributes render
// as empty strings.
func FormatText(result *hw.Result, tmpl string) (string, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{{", "}}")
	if err != nil {
		return "", errors.NewValidationError("invalid text template", err)
	}

	var sb strings.Builder
	for _, iface := range result.Interfaces() {
		sb.WriteString(t.ExecuteString(templateValues(&iface)))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func templateValues(iface *hw.Interface) map[string]interface{} {
	vlanID := ""
	if iface.IsVLAN() {
		vlanID = strconv.Itoa(*iface.VLANID)
	}
	return map[string]interface{}{
		"name":       iface.Name,
		"type":       iface.Type,
		"bus":        iface.Bus,
		"slot":       iface.Slot,
		"module_id":  strconv.Itoa(iface.ModuleID),
		"macaddr":    iface.MACAddr,
		"state":      string(iface.State),
		"link_speed": strconv.FormatInt(iface.LinkSpeed, 10),
		"vlan_id":    vlanID,
		"slot_path":  iface.SlotPath,
		"qmi_device": iface.QMIDevice,
		"vendor":     iface.Vendor,
		"pci_id":     iface.PCIID,
	}
}
