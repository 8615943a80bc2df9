package cli

import (
	"strconv"

	"github.com/itradeops/itradectl/internal/collection"
)

// recordByIndex resolves a 1-based row number, as printed by the list views,
// to the record at that position.
func recordByIndex[T any](col *collection.Collection[T], arg string) (collection.Record[T], bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return collection.Record[T]{}, false
	}
	snap := col.Snapshot()
	if n > len(snap) {
		return collection.Record[T]{}, false
	}
	return snap[n-1], true
}
