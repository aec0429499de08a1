package service

import (
	"golang.org/x/exp/slices"
)

// Canonical OpenStack service names as published in the keystone catalog of
// a charm deployment.
const (
	Ceilometer = "ceilometer"
	Cinder     = "cinder"
	CinderV2   = "cinderv2"
	CinderV3   = "cinderv3"
	Designate  = "designate"
	Glance     = "glance"
	Heat       = "heat"
	Horizon    = "horizon"
	Ironic     = "ironic"
	Keystone   = "keystone"
	Magnum     = "magnum"
	Manila     = "manila"
	Neutron    = "neutron"
	Nova       = "nova"
	Octavia    = "octavia"
	Sahara     = "sahara"
	Swift      = "swift"
	Trove      = "trove"
	Watcher    = "watcher"
	Zaqar      = "zaqar"
)

// List keeps service names in caller order. The renderer iterates lists as
// given and never reorders or deduplicates them.
type List []string

// Catalog returns the candidate services consulted when deriving the
// disabled service list for a deployment.
func Catalog() List {
	return List{
		Ceilometer, Cinder, Glance, Heat, Horizon, Ironic, Manila,
		Neutron, Nova, Octavia, Sahara, Swift, Trove, Watcher, Zaqar,
	}
}

// Contains tells whether the list includes the given service name.
func (list List) Contains(name string) bool {
	return slices.Contains(list, name)
}

// Add returns the list extended with the given names, skipping names the
// list already includes.
func (list List) Add(names ...string) List {
	for _, name := range names {
		if !list.Contains(name) {
			list = append(list, name)
		}
	}

	return list
}

// Difference returns the members of the list absent from other, preserving
// list order.
func (list List) Difference(other List) List {
	var result List

	for _, name := range list {
		if !other.Contains(name) {
			result = append(result, name)
		}
	}

	return result
}

// Normalize returns a copy of the list with duplicates removed and, when a
// versioned volume endpoint such as cinderv2 or cinderv3 is present, the
// plain cinder service appended so volume sections are rendered.
func (list List) Normalize() List {
	result := make(List, 0, len(list))
	result = result.Add(list...)

	if result.Contains(CinderV2) || result.Contains(CinderV3) {
		result = result.Add(Cinder)
	}

	return result
}

// DisabledFrom derives the disabled service list from the enabled one by
// removing enabled services from the catalog, preserving catalog order.
func DisabledFrom(enabled List) List {
	return Catalog().Difference(enabled)
}
