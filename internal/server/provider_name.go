package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/goal-light/internal/providers"
)

// normalizeProviderName is the provider label used in metrics and logs. The
// configured name wins; otherwise the label is the implementing package
// ("*shl.Client" becomes "shl").
func normalizeProviderName(raw string, provider providers.ScheduleProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider == nil {
		return "provider"
	}
	typeName := strings.TrimPrefix(fmt.Sprintf("%T", provider), "*")
	pkg, _, _ := strings.Cut(typeName, ".")
	return strings.ToLower(pkg)
}
