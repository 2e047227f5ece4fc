package permissions

import (
	"fmt"
	"sort"

	"github.com/tdeslauriers/tales/pkg/capability"
)

// BuildFamily derives a capability.Family for one service from that
// service's active permission records. Records are sorted by
// Permission name before being added to the builder, so the family's
// ordinals are stable across process restarts regardless of the
// order rows come back from the database.
func BuildFamily(serviceName string, records []PermissionRecord) (*capability.Family, error) {

	ordered := make([]PermissionRecord, 0, len(records))
	for _, r := range records {
		if r.ServiceName != serviceName || !r.Active {
			continue
		}
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Permission < ordered[j].Permission })

	b := capability.NewBuilder(serviceName)
	for _, r := range ordered {
		if err := b.Add(r.Permission); err != nil {
			return nil, fmt.Errorf("failed to add permission %q to family %q: %w", r.Permission, serviceName, err)
		}
	}
	return b.Seal(), nil
}

// BuildSet builds the capability.Set a principal holds within family,
// given the subset of permission records granted to that principal.
func BuildSet(family *capability.Family, granted []PermissionRecord) (*capability.Set, error) {

	names := make([]string, 0, len(granted))
	for _, r := range granted {
		if !r.Active {
			continue
		}
		names = append(names, r.Permission)
	}
	return capability.Of(family, names...)
}
