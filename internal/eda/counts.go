package eda

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

const (
	AbsCountColumn = "abs_count"
	RelCountColumn = "rel_count"
	ValueColumn    = "value"
)

// CountRow holds the absolute and relative frequency of one distinct value.
type CountRow struct {
	Group    []string // values of the grouping columns, nil when ungrouped
	Value    string
	AbsCount int
	RelCount float64
}

// CountTable is the result of ComputeCounts. Rows are ordered by group and,
// within a group, by descending AbsCount with ties in first-seen order.
type CountTable struct {
	Column  string
	GroupBy []string
	Rows    []CountRow
}

// ComputeCounts computes absolute and relative frequency counts.
//
// For a table, col names the counted column and is required; by optionally
// names grouping columns, in which case relative counts are computed within
// each group. For a labeled sequence or raw values, col and by are ignored.
// Missing entries are counted as the value "NaN".
func ComputeCounts(data Dataset, col string, by ...string) (*CountTable, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}

	if data.shape != ShapeTable {
		return &CountTable{
			Column: data.series.Name,
			Rows:   tally(data.series, nil),
		}, nil
	}

	df := data.table
	if col == "" {
		return nil, errors.Wrap(ErrMissingParameter, "col must be set when the input data is a table")
	}
	for _, name := range append([]string{col}, by...) {
		if !hasColumn(df, name) {
			return nil, errors.Wrapf(ErrMissingColumn, "%q", name)
		}
	}

	target := df.Col(col)
	if len(by) == 0 {
		return &CountTable{Column: col, Rows: tally(target, nil)}, nil
	}

	table := &CountTable{
		Column:  col,
		GroupBy: append([]string(nil), by...),
	}
	for _, g := range partition(df, by) {
		table.Rows = append(table.Rows, tally(target.Subset(g.rows), g.key)...)
	}
	return table, nil
}

// tally counts the distinct values of s.
func tally(s series.Series, group []string) []CountRow {
	n := s.Len()
	index := make(map[string]int)
	var rows []CountRow

	for i := 0; i < n; i++ {
		v := elemKey(s.Elem(i))
		k, ok := index[v]
		if !ok {
			k = len(rows)
			index[v] = k
			rows = append(rows, CountRow{Group: copyKey(group), Value: v})
		}
		rows[k].AbsCount++
	}

	for i := range rows {
		rows[i].RelCount = float64(rows[i].AbsCount) / float64(n)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AbsCount > rows[j].AbsCount
	})
	return rows
}

type group struct {
	key   []string
	elems []series.Element
	rows  []int
}

// partition splits the rows of df by the distinct combinations of the by
// columns. Groups come back sorted by key, missing values last.
func partition(df dataframe.DataFrame, by []string) []*group {
	cols := make([]series.Series, len(by))
	for i, name := range by {
		cols[i] = df.Col(name)
	}

	index := make(map[string]*group)
	var groups []*group
	for r := 0; r < df.Nrow(); r++ {
		key := make([]string, len(cols))
		for i, c := range cols {
			key[i] = elemKey(c.Elem(r))
		}
		id := strings.Join(key, "\x00")

		g, ok := index[id]
		if !ok {
			elems := make([]series.Element, len(cols))
			for i, c := range cols {
				elems[i] = c.Elem(r)
			}
			g = &group{key: key, elems: elems}
			index[id] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return keyLess(groups[i].elems, groups[j].elems)
	})
	return groups
}

func keyLess(a, b []series.Element) bool {
	for i := range a {
		x, y := a[i], b[i]
		switch {
		case x.IsNA() && y.IsNA():
			continue
		case x.IsNA():
			return false
		case y.IsNA():
			return true
		case x.Eq(y):
			continue
		}
		return x.Less(y)
	}
	return false
}

func copyKey(key []string) []string {
	if key == nil {
		return nil
	}
	return append([]string(nil), key...)
}

// Group returns the rows belonging to the group with the given key values.
func (t *CountTable) Group(key ...string) []CountRow {
	var rows []CountRow
	for _, row := range t.Rows {
		if equalKey(row.Group, key) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Groups returns the distinct group keys in row order.
func (t *CountTable) Groups() [][]string {
	var keys [][]string
	for _, row := range t.Rows {
		if len(keys) == 0 || !equalKey(keys[len(keys)-1], row.Group) {
			keys = append(keys, copyKey(row.Group))
		}
	}
	return keys
}

// Total returns the sum of AbsCount over all rows.
func (t *CountTable) Total() int {
	total := 0
	for _, row := range t.Rows {
		total += row.AbsCount
	}
	return total
}

// DataFrame converts the table into columns [by..., value, abs_count, rel_count].
func (t *CountTable) DataFrame() dataframe.DataFrame {
	n := len(t.Rows)
	cols := make([]series.Series, 0, len(t.GroupBy)+3)

	for i, name := range t.GroupBy {
		vals := make([]string, n)
		for r, row := range t.Rows {
			vals[r] = row.Group[i]
		}
		cols = append(cols, series.New(vals, series.String, name))
	}

	values := make([]string, n)
	abs := make([]int, n)
	rel := make([]float64, n)
	for r, row := range t.Rows {
		values[r] = row.Value
		abs[r] = row.AbsCount
		rel[r] = row.RelCount
	}

	name := t.Column
	if name == "" {
		name = ValueColumn
	}
	cols = append(cols,
		series.New(values, series.String, name),
		series.New(abs, series.Int, AbsCountColumn),
		series.New(rel, series.Float, RelCountColumn),
	)
	return dataframe.New(cols...)
}

func equalKey(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
