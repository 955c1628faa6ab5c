package coauthor

// Filter returns a new matrix with only those authors that have at least
// minWeight publications. The input matrix is left untouched; the order of
// the remaining authors does not change.
func Filter(m *Matrix, u *Universe, minWeight int) (*Matrix, error) {
	if minWeight < 1 {
		return nil, &ConfigurationError{
			Field:  "threshold",
			Value:  minWeight,
			Reason: "minimum number of publications must be at least 1",
		}
	}
	keep := make(map[string]struct{}, len(m.authors))
	for _, a := range m.authors {
		if u.Count(a) >= minWeight {
			keep[a] = struct{}{}
		}
	}
	filtered := &Matrix{rows: make(map[string]map[string]int, len(keep))}
	for _, a := range m.authors {
		if _, ok := keep[a]; !ok {
			continue
		}
		filtered.authors = append(filtered.authors, a)
		row := make(map[string]int)
		for b, w := range m.rows[a] {
			if _, ok := keep[b]; ok {
				row[b] = w
			}
		}
		filtered.rows[a] = row
	}
	return filtered, nil
}
