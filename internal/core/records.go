package core

import "github.com/JonMunkholm/RouteAudit/internal/dataset"

// VisitsFrom builds visit records from a conformed route map.
// Rows without an employee code are skipped.
func VisitsFrom(ds dataset.Dataset) []VisitRecord {
	idx := ds.Index()
	get := func(row []string, col string) string {
		pos, ok := idx.Lookup(col)
		if !ok {
			return ""
		}
		return dataset.Cell(row, pos)
	}

	visits := make([]VisitRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		id := EmployeeID(dataset.CoerceIdentifier(get(row, ColCode)))
		if id == "" {
			continue
		}

		date, _ := ParseDate(get(row, ColDate))
		checked, _ := ParseBool(get(row, ColCheck))

		visits = append(visits, VisitRecord{
			Division:     get(row, ColSubDiv),
			Job:          get(row, ColJob),
			EmployeeID:   id,
			EmployeeName: get(row, ColName),
			VisitDate:    date,
			ShopCode:     get(row, ColShopCode),
			ShopName:     get(row, ColShopName),
			Area:         get(row, ColArea),
			Governorate:  get(row, ColGovernorate),
			District:     get(row, ColDistrict),
			Comment:      get(row, ColComment),
			Checked:      checked,
		})
	}
	return visits
}

// RosterFrom builds missing roster records from a conformed roster.
// Rows without an employee code are skipped.
func RosterFrom(ds dataset.Dataset) []MissingRecord {
	idx := ds.Index()
	get := func(row []string, col string) string {
		pos, ok := idx.Lookup(col)
		if !ok {
			return ""
		}
		return dataset.Cell(row, pos)
	}

	roster := make([]MissingRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		id := EmployeeID(dataset.CoerceIdentifier(get(row, ColEmployeeCode)))
		if id == "" {
			continue
		}

		roster = append(roster, MissingRecord{
			CompositeKey:    get(row, ColCompositeKey),
			Title:           get(row, ColTitle),
			EmployeeID:      id,
			EmployeeName:    get(row, ColEmployeeName),
			GovernorateName: get(row, ColGovernorateName),
		})
	}
	return roster
}
