package claude

import (
	"github.com/joshharrison/beadpert/internal/pert"
)

// SkipReason says why an inferred edge was rejected.
type SkipReason string

const (
	SkipUnknownBlocked SkipReason = "unknown blocked_id"
	SkipUnknownBlocker SkipReason = "unknown blocker_id"
	SkipSelf           SkipReason = "self-dependency"
	SkipExisting       SkipReason = "already present"
	SkipCycle          SkipReason = "would create a cycle"
)

// Skipped is a rejected edge.
type Skipped struct {
	Edge   DepEdge    `json:"edge"`
	Reason SkipReason `json:"reason"`
}

// Validate accepts inferred edges greedily in order, skipping those that name
// unknown items, repeat an existing dependency, or would close a cycle with
// the items' own dependencies and the edges accepted so far. Cycles already
// present among the items do not block unrelated edges.
func Validate(items []pert.Item, edges []DepEdge) (accepted []DepEdge, skipped []Skipped) {
	work := make([]pert.Item, len(items))
	pos := make(map[string]int, len(items))
	for i, it := range items {
		work[i] = it
		work[i].DependsOn = append([]string(nil), it.DependsOn...)
		if _, dup := pos[it.ID]; !dup {
			pos[it.ID] = i
		}
	}

	for _, e := range edges {
		blocked, okBlocked := pos[e.BlockedID]
		_, okBlocker := pos[e.BlockerID]
		switch {
		case !okBlocked:
			skipped = append(skipped, Skipped{e, SkipUnknownBlocked})
			continue
		case !okBlocker:
			skipped = append(skipped, Skipped{e, SkipUnknownBlocker})
			continue
		case e.BlockedID == e.BlockerID:
			skipped = append(skipped, Skipped{e, SkipSelf})
			continue
		case contains(work[blocked].DependsOn, e.BlockerID):
			skipped = append(skipped, Skipped{e, SkipExisting})
			continue
		}

		// blocker -> blocked closes a cycle iff blocked already reaches blocker
		reach, _ := pert.Build(work, pert.Options{}).Subgraph(e.BlockedID, len(work), pert.Downstream)
		if contains(reach, e.BlockerID) {
			skipped = append(skipped, Skipped{e, SkipCycle})
			continue
		}
		work[blocked].DependsOn = append(work[blocked].DependsOn, e.BlockerID)
		accepted = append(accepted, e)
	}
	return accepted, skipped
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
