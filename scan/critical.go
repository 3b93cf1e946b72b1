package scan

// Transitions returns the indices at which the stability label changes
// from the previous successful row. Errored rows neither count as
// transitions nor reset the comparison baseline.
func Transitions(rows []Row) []int {
	var (
		out  []int
		prev *Row
	)
	for i := range rows {
		if rows[i].Err != "" {
			continue
		}
		if prev != nil && rows[i].Class != prev.Class {
			out = append(out, rows[i].Index)
		}
		prev = &rows[i]
	}

	return out
}
