package pert

// Status is the lifecycle state of a work item.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// ParseStatus maps a bd status string to a Status. Unknown values are open.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusInProgress, StatusBlocked, StatusClosed:
		return Status(s)
	default:
		return StatusOpen
	}
}

// Item is a work item as supplied by the item source.
type Item struct {
	ID        string   `json:"id"`
	Title     string   `json:"title,omitempty"`
	Status    Status   `json:"status,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"` // ids this item waits on
}

// Node is an item placed in the network together with its schedule.
type Node struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Status   Status  `json:"status"`
	Duration float64 `json:"duration"` // hours

	EarliestStart  float64 `json:"earliest_start"`
	EarliestFinish float64 `json:"earliest_finish"`
	LatestStart    float64 `json:"latest_start"`
	LatestFinish   float64 `json:"latest_finish"`
	Slack          float64 `json:"slack"`
	IsCritical     bool    `json:"is_critical"`

	X int `json:"x"`
	Y int `json:"y"`
}

// Edge means From must finish before To can start.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CycleDetection is the outcome of the DFS back-edge search.
type CycleDetection struct {
	HasCycle   bool       `json:"has_cycle"`
	CycleEdges []Edge     `json:"cycle_edges"`
	Cycles     [][]string `json:"cycles"` // members of each closed cycle, starting at the edge target
}

// Options control how a graph is built and scheduled.
type Options struct {
	DefaultDuration float64 // hours applied to every node
	Tolerance       float64 // |slack| below this is critical
	BucketTarget    int     // approximate number of horizontal layout buckets
	XSpacing        int
	YSpacing        int
}

// Defaults used when an Options field is left at zero.
const (
	DefaultDuration     = 24.0
	DefaultTolerance    = 0.001
	DefaultBucketTarget = 20
	DefaultXSpacing     = 4
	DefaultYSpacing     = 3
)

// DefaultOptions returns the options the dashboard uses out of the box.
func DefaultOptions() Options {
	return Options{
		DefaultDuration: DefaultDuration,
		Tolerance:       DefaultTolerance,
		BucketTarget:    DefaultBucketTarget,
		XSpacing:        DefaultXSpacing,
		YSpacing:        DefaultYSpacing,
	}
}

// withDefaults fills zero fields. DefaultDuration is left alone: zero is a
// legal duration and negatives are clamped.
func (o Options) withDefaults() Options {
	if o.DefaultDuration < 0 {
		o.DefaultDuration = 0
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.BucketTarget <= 0 {
		o.BucketTarget = DefaultBucketTarget
	}
	if o.XSpacing <= 0 {
		o.XSpacing = DefaultXSpacing
	}
	if o.YSpacing <= 0 {
		o.YSpacing = DefaultYSpacing
	}
	return o
}
