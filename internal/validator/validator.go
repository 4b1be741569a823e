// Package validator checks a node registry for consistency before the
// bot goes live: every node id a node can transition to must either be
// registered or be one of the flow sentinels.
package validator

import (
	"fmt"
	"sort"

	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
)

// Issue describes one broken reference.
type Issue struct {
	NodeID string
	Target string
}

func (i Issue) String() string {
	return fmt.Sprintf("node %q references unknown node %q", i.NodeID, i.Target)
}

// Check walks every registered node and collects references to node ids
// nothing registered. Sentinel targets are always valid. A nil result
// means the registry is consistent.
func Check(reg *dialog.Registry) []Issue {
	var issues []Issue
	for _, id := range reg.IDs() {
		node, err := reg.Get(id)
		if err != nil {
			continue
		}
		ref, ok := node.(dialog.Referencer)
		if !ok {
			continue
		}
		targets := ref.References()
		sort.Strings(targets)
		for _, target := range targets {
			if target == "" || target == domain.RepeatNodeID || target == domain.HomeNodeID {
				continue
			}
			if !reg.Has(target) {
				issues = append(issues, Issue{NodeID: id, Target: target})
			}
		}
	}
	return issues
}
