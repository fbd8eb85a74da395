package scenario

import (
	"fmt"

	"github.com/samber/lo"
)

// Table builds one scenario per parameter record.
func Table[T any](records []T, build func(i int, rec T) *Scenario) []*Scenario {
	return lo.Map(records, func(rec T, i int) *Scenario {
		return build(i, rec)
	})
}

// Steps builds a group of steps per parameter record and concatenates them in
// record order. Use Indexed to keep step identifiers unique.
func Steps[T any](records []T, build func(i int, rec T) []Step) []Step {
	return lo.FlatMap(records, func(rec T, i int) []Step {
		return build(i, rec)
	})
}

// Indexed returns id suffixed with the record index ("editFilterTemplate_3").
func Indexed(id string, i int) string {
	return fmt.Sprintf("%s_%d", id, i)
}
