package mapper

import "fmt"

// ToEntities converts persistence rows to domain entities. Nil rows and rows the
// converter drops are skipped. The first failure is reported with the row ID.
func ToEntities[M any, E any](rows []*M, convert func(*M) (*E, error), idOf func(*M) string) ([]*E, error) {
	if rows == nil {
		return nil, nil
	}

	out := make([]*E, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			continue
		}
		entity, err := convert(row)
		switch {
		case err != nil:
			return nil, fmt.Errorf("row %d (%s): %w", i, idOf(row), err)
		case entity != nil:
			out = append(out, entity)
		}
	}
	return out, nil
}
