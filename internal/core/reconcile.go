package core

import "sort"

// Split partitions the union of the route and roster identifier sets into
// overlap, missing-only and route-only parts. Each part is sorted.
func Split(routeIDs, missingIDs []EmployeeID) Partition {
	route := toSet(routeIDs)
	missing := toSet(missingIDs)

	p := Partition{
		Overlap:     []EmployeeID{},
		MissingOnly: []EmployeeID{},
		RouteOnly:   []EmployeeID{},
	}
	for id := range missing {
		if _, ok := route[id]; ok {
			p.Overlap = append(p.Overlap, id)
		} else {
			p.MissingOnly = append(p.MissingOnly, id)
		}
	}
	for id := range route {
		if _, ok := missing[id]; !ok {
			p.RouteOnly = append(p.RouteOnly, id)
		}
	}

	sortIDs(p.Overlap)
	sortIDs(p.MissingOnly)
	sortIDs(p.RouteOnly)
	return p
}

// Reconcile cross-references the identifiers of both datasets and resolves
// missing-only employees back to their roster rows. Roster rows repeating
// the same (code, name, title, governorate) are reported once, in the order
// they first appear. Empty inputs produce a valid, empty result.
func Reconcile(routeIDs, missingIDs []EmployeeID, roster []MissingRecord) ReconciliationResult {
	p := Split(routeIDs, missingIDs)

	result := ReconciliationResult{
		Overlap:            p.Overlap,
		MissingOnly:        p.MissingOnly,
		MissingOnlyRecords: []MissingRecord{},
		NoEntries:          len(p.MissingOnly) == 0,
	}
	if result.NoEntries {
		return result
	}

	only := toSet(p.MissingOnly)
	type rosterKey struct {
		id          EmployeeID
		name        string
		title       string
		governorate string
	}
	seen := make(map[rosterKey]struct{})
	for _, rec := range roster {
		if _, ok := only[rec.EmployeeID]; !ok {
			continue
		}
		k := rosterKey{rec.EmployeeID, rec.EmployeeName, rec.Title, rec.GovernorateName}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		result.MissingOnlyRecords = append(result.MissingOnlyRecords, rec)
	}
	return result
}

func toSet(ids []EmployeeID) map[EmployeeID]struct{} {
	set := make(map[EmployeeID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortIDs(ids []EmployeeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
