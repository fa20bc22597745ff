package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplianceOf(t *testing.T) {
	visits := []VisitRecord{
		{EmployeeID: "A-1", Governorate: "Cairo", Checked: true},
		{EmployeeID: "A-1", Governorate: "Cairo", Checked: false},
		{EmployeeID: "A-2", Governorate: "Giza", Checked: true},
		{EmployeeID: "A-2", Governorate: "", Checked: false},
		{EmployeeID: "A-3", Governorate: "Cairo", Checked: true},
	}

	c := ComplianceOf(visits)

	assert.Equal(t, 5, c.TotalVisits)
	assert.Equal(t, 3, c.CompletedVisits)
	assert.Equal(t, 2, c.MissedVisits)
	assert.Equal(t, 60, c.Rate)
	assert.Equal(t, 3, c.ActiveStaff)

	require.Len(t, c.Governorates, 3)
	assert.Equal(t, GovernorateCompliance{Name: "Cairo", Visits: 3, Completed: 2, Rate: 67}, c.Governorates[0])
	assert.Equal(t, GovernorateCompliance{Name: "Giza", Visits: 1, Completed: 1, Rate: 100}, c.Governorates[1])
	assert.Equal(t, GovernorateCompliance{Name: UnknownGovernorate, Visits: 1, Completed: 0, Rate: 0}, c.Governorates[2])
}

func TestComplianceOf_NoVisits(t *testing.T) {
	c := ComplianceOf(nil)

	assert.Equal(t, 0, c.Rate)
	assert.NotNil(t, c.Governorates)
	assert.Empty(t, c.Governorates)
	assert.NotNil(t, c.Daily)
	assert.Empty(t, c.Daily)
}

func TestComplianceOf_Daily(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC) }
	visits := []VisitRecord{
		{EmployeeID: "A-1", VisitDate: day(27), Checked: true},
		{EmployeeID: "A-1", Checked: false},
		{EmployeeID: "A-2", VisitDate: day(25), Checked: true},
		{EmployeeID: "A-2", VisitDate: day(27), Checked: false},
		{EmployeeID: "A-3", VisitDate: day(27), Checked: false},
		{EmployeeID: "A-3", VisitDate: day(26).Add(9 * time.Hour), Checked: true},
	}

	c := ComplianceOf(visits)

	assert.Equal(t, []DailyCompliance{
		{Date: "2025-10-25", Visits: 1, Completed: 1, Rate: 100},
		{Date: "2025-10-26", Visits: 1, Completed: 1, Rate: 100},
		{Date: "2025-10-27", Visits: 3, Completed: 1, Rate: 33},
		{Date: UndatedLabel, Visits: 1, Completed: 0, Rate: 0},
	}, c.Daily)

	total := 0
	for _, d := range c.Daily {
		total += d.Visits
	}
	assert.Equal(t, c.TotalVisits, total)
}

func TestCompliance_RecentDays(t *testing.T) {
	c := Compliance{Daily: []DailyCompliance{
		{Date: "2025-10-24"}, {Date: "2025-10-25"}, {Date: "2025-10-26"},
	}}

	assert.Equal(t, []DailyCompliance{{Date: "2025-10-25"}, {Date: "2025-10-26"}}, c.RecentDays(2))
	assert.Len(t, c.RecentDays(TrendDays), 3)
	assert.Len(t, c.RecentDays(0), 3)
}

func TestBuildAlerts(t *testing.T) {
	visits := []VisitRecord{
		{EmployeeID: "A-1", EmployeeName: "One", ShopName: "Metro", District: "Smouha", Governorate: "Alexandria", Checked: false},
		{EmployeeID: "A-1", EmployeeName: "One", ShopName: "Seoudi", Checked: true},
		{EmployeeID: "A-2", EmployeeName: "Two", ShopName: "Spinneys", Checked: false},
	}
	rec := ReconciliationResult{
		Overlap:     ids("A-1", "A-2"),
		MissingOnly: ids("A-9"),
		MissingOnlyRecords: []MissingRecord{
			{EmployeeID: "A-9", EmployeeName: "Nine", GovernorateName: "Sidi Bishr", Title: "Manager"},
			{EmployeeID: "A-9", EmployeeName: "Nine", GovernorateName: "Cairo", Title: "Manager"},
		},
	}

	alerts := BuildAlerts(visits, rec)
	require.Len(t, alerts, 4)

	assert.Equal(t, Alert{
		Type:         AlertUnreportedCoverage,
		EmployeeID:   "A-9",
		EmployeeName: "Nine",
		Details:      "Employee was expected to execute routes but reported zero visits in the route map.",
		Location:     "Sidi Bishr",
	}, alerts[0])

	assert.Equal(t, AlertVisitGap, alerts[1].Type)
	assert.Equal(t, "Did not check in at Metro.", alerts[1].Details)
	assert.Equal(t, "Smouha, Alexandria", alerts[1].Location)

	assert.Equal(t, "Did not check in at Spinneys.", alerts[2].Details)
	assert.Equal(t, UnknownGovernorate, alerts[2].Location)

	assert.Equal(t, AlertDualReporting, alerts[3].Type)
	assert.Contains(t, alerts[3].Details, "2 employee(s)")
	assert.Equal(t, "Multiple Regions", alerts[3].Location)
}

func TestBuildAlerts_Quiet(t *testing.T) {
	visits := []VisitRecord{{EmployeeID: "A-1", Checked: true}}
	alerts := BuildAlerts(visits, Reconcile(ids("A-1"), nil, nil))

	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
