package pert

import "math"

// computeLayout places nodes on a grid: the column comes from bucketing the
// earliest start time into roughly opts.BucketTarget buckets, the row is the
// next free lane in that bucket. This is a greedy per-bucket packing, not an
// optimal one, and it never moves a node once placed.
func (g *Graph) computeLayout() {
	bucketSize := math.Max(g.ProjectDuration/float64(g.opts.BucketTarget), 1)

	// Lanes within a bucket are handed out in sequence, so the lowest unused
	// lane is always the number already taken.
	used := make(map[int]int)
	for _, idx := range g.order {
		n := g.nodes[idx]
		bucket := int(math.Floor(n.EarliestStart / bucketSize))
		lane := used[bucket]
		used[bucket] = lane + 1

		n.X = bucket * g.opts.XSpacing
		n.Y = lane * g.opts.YSpacing
	}
}
