// Package autogroup classifies unassigned datasets by the order of
// magnitude of their intensity values and buckets them into new groups
// with decade-spaced stack factors.
package autogroup

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"scatterforge/internal/dataset"
)

var (
	// ErrEmptyPool is returned when there are no unassigned datasets.
	ErrEmptyPool = errors.New("no unassigned datasets to group")

	// ErrNoPositiveData is returned when no dataset has any strictly
	// positive intensity values, so nothing can be classified.
	ErrNoPositiveData = errors.New("no datasets with positive intensity values")
)

// Magnitude computes the integer decade label for an intensity series:
// round(log10(mean of the strictly positive values)). It reports ok=false
// when no positive values exist, in which case the dataset is excluded
// from grouping.
func Magnitude(y []float64) (int, bool) {
	positive := make([]float64, 0, len(y))
	for _, v := range y {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) == 0 {
		return 0, false
	}
	mean := stat.Mean(positive, nil)
	return int(math.Round(math.Log10(mean))), true
}

// GroupSummary describes one created group for user feedback.
type GroupSummary struct {
	Name        string
	Count       int
	StackFactor float64
}

// Plan is the outcome of classification and assembly: new groups in
// ascending-magnitude order, not yet applied to any collection.
type Plan struct {
	// Groups are freshly constructed and populated with the grouped
	// datasets, ordered by ascending magnitude label.
	Groups []*dataset.Group

	// Summaries mirrors Groups one-to-one.
	Summaries []GroupSummary

	// grouped tracks which pool members were taken.
	grouped map[*dataset.Dataset]bool
}

// Build classifies every dataset in the pool and assembles new groups.
//
// Datasets without positive intensity values are skipped and stay in the
// pool. One group is created per distinct magnitude label; labels are
// exact-match partitions, never range merges. The i-th group in ascending
// label order receives stack factor 10^i, independent of the label values
// themselves, so visual separation is one decade per group regardless of
// the actual magnitude gaps.
//
// Build never mutates the pool or any existing group.
func Build(pool []*dataset.Dataset) (*Plan, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	byLabel := make(map[int][]*dataset.Dataset)
	grouped := make(map[*dataset.Dataset]bool)
	for _, ds := range pool {
		label, ok := Magnitude(ds.Y)
		if !ok {
			continue
		}
		byLabel[label] = append(byLabel[label], ds)
		grouped[ds] = true
	}
	if len(byLabel) == 0 {
		return nil, ErrNoPositiveData
	}

	labels := make([]int, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	plan := &Plan{grouped: grouped}
	for i, label := range labels {
		g := dataset.NewGroup(GroupName(label), math.Pow(10, float64(i)))
		for _, ds := range byLabel[label] {
			g.Add(ds)
		}
		plan.Groups = append(plan.Groups, g)
		plan.Summaries = append(plan.Summaries, GroupSummary{
			Name:        g.Name,
			Count:       len(g.Datasets),
			StackFactor: g.StackFactor,
		})
	}
	return plan, nil
}

// Took reports whether the plan claims the given pool dataset.
func (p *Plan) Took(ds *dataset.Dataset) bool {
	return p.grouped[ds]
}

// Summary renders one line per created group, in ascending-magnitude order.
func (p *Plan) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d group(s) created:\n", len(p.Groups))
	for _, s := range p.Summaries {
		fmt.Fprintf(&b, "  %s: %d dataset(s), stack factor %g\n", s.Name, s.Count, s.StackFactor)
	}
	return b.String()
}

// GroupName renders a magnitude label as a group name: "10^2" for
// non-negative labels, "10^(-3)" for negative ones.
func GroupName(label int) string {
	if label < 0 {
		return fmt.Sprintf("10^(%d)", label)
	}
	return fmt.Sprintf("10^%d", label)
}
