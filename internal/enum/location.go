package enum

import (
	"strconv"
	"strings"
)

// parseLocationInformation normalizes the LocationInformation value a PCI
// device carries in its Enum key. Two shapes exist in the wild:
//
//	PCI bus 1, device 0, function 0
//	@System32\drivers\pci.sys,#65536;PCI bus %1, device %2, function %3;(1,0,0)
//
// The second is the indirect-string form: a display template between the
// first and second semicolons, positional arguments in the trailing
// parenthesized list.
func parseLocationInformation(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "@") {
		return raw
	}
	parts := strings.Split(raw, ";")
	if len(parts) < 3 {
		return ""
	}
	template := parts[1]
	args := strings.TrimSpace(parts[2])
	args = strings.TrimPrefix(args, "(")
	args = strings.TrimSuffix(args, ")")
	for i, arg := range strings.Split(args, ",") {
		placeholder := "%" + strconv.Itoa(i+1)
		template = strings.ReplaceAll(template, placeholder, strings.TrimSpace(arg))
	}
	return template
}
