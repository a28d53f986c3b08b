package valueobjects

import "fmt"

// Priority runs from 1 (most urgent) to 5.
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityNormal   Priority = 3
	PriorityLow      Priority = 4
	PriorityVeryLow  Priority = 5
)

var priorityLabels = map[Priority]string{
	PriorityCritical: "Critical",
	PriorityHigh:     "High",
	PriorityNormal:   "Normal",
	PriorityLow:      "Low",
	PriorityVeryLow:  "Very Low",
}

func (p Priority) Int() int {
	return int(p)
}

func (p Priority) String() string {
	return priorityLabels[p]
}

func (p Priority) IsValid() bool {
	return p >= PriorityCritical && p <= PriorityVeryLow
}

func NewPriority(v int) (Priority, error) {
	p := Priority(v)
	if !p.IsValid() {
		return 0, fmt.Errorf("invalid priority: %d", v)
	}
	return p, nil
}
