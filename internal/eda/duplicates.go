package eda

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// ShowDuplicates returns every row whose values in keys occur in more than
// one row, all occurrences kept, sorted by keys. With no keys every column
// takes part in the comparison.
func ShowDuplicates(df dataframe.DataFrame, keys ...string) (dataframe.DataFrame, error) {
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(ErrInvalidInput, "table: %v", err)
	}
	if df.Ncol() == 0 {
		return df, nil
	}
	if len(keys) == 0 {
		keys = df.Names()
	}
	for _, k := range keys {
		if !hasColumn(df, k) {
			return dataframe.DataFrame{}, errors.Wrapf(ErrMissingColumn, "%q", k)
		}
	}

	ids := rowKeys(df, keys)
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}

	idx := []int{}
	for i, id := range ids {
		if seen[id] > 1 {
			idx = append(idx, i)
		}
	}

	dups := df.Subset(idx)
	if len(idx) < 2 {
		return dups, nil
	}
	return sortRows(dups, keys), nil
}

// sortRows orders df by keys, stable, missing values last.
func sortRows(df dataframe.DataFrame, keys []string) dataframe.DataFrame {
	cols := make([]series.Series, len(keys))
	for i, k := range keys {
		cols[i] = df.Col(k)
	}
	row := func(r int) []series.Element {
		elems := make([]series.Element, len(cols))
		for i, c := range cols {
			elems[i] = c.Elem(r)
		}
		return elems
	}

	perm := make([]int, df.Nrow())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return keyLess(row(perm[i]), row(perm[j]))
	})
	return df.Subset(perm)
}

// DuplicateCount returns how many rows repeat an earlier row on keys.
func DuplicateCount(df dataframe.DataFrame, keys ...string) (int, error) {
	if err := df.Error(); err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "table: %v", err)
	}
	if len(keys) == 0 {
		keys = df.Names()
	}
	for _, k := range keys {
		if !hasColumn(df, k) {
			return 0, errors.Wrapf(ErrMissingColumn, "%q", k)
		}
	}

	seen := make(map[string]struct{})
	dups := 0
	for _, id := range rowKeys(df, keys) {
		if _, ok := seen[id]; ok {
			dups++
			continue
		}
		seen[id] = struct{}{}
	}
	return dups, nil
}

func rowKeys(df dataframe.DataFrame, keys []string) []string {
	cols := make([]series.Series, len(keys))
	for i, k := range keys {
		cols[i] = df.Col(k)
	}

	ids := make([]string, df.Nrow())
	parts := make([]string, len(cols))
	for r := range ids {
		for i, c := range cols {
			parts[i] = elemKey(c.Elem(r))
		}
		ids[r] = strings.Join(parts, "\x00")
	}
	return ids
}
