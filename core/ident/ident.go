// Package ident allocates "<prefix>-NNN" record identifiers.
package ident

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tutorren/desk/core"
)

// Column holding identifiers.
const Column = "id"

// NextID returns the identifier following the highest numeric "<prefix>-N"
// id found in `records`, zero-padded to 3 digits. Ids with a non-numeric
// suffix are ignored. Nothing is persisted: the result only depends on the
// records currently present.
func NextID(prefix string, records []core.Record) string {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec[Column])
	}
	return Next(prefix, ids)
}

// Next is NextID over bare identifiers.
func Next(prefix string, ids []string) string {
	var max int
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix+"-") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix+"-"))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
