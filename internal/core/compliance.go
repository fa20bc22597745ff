package core

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// UnknownGovernorate labels visits whose governorate cell is blank.
const UnknownGovernorate = "Unknown"

// UndatedLabel groups visits whose date cell is blank or unparseable.
const UndatedLabel = "Undated"

// TrendDays is how many days of the daily series summaries show.
const TrendDays = 7

// Compliance summarizes how many recorded visits were actually checked in.
//
// Only visits with an employee code are counted, so TotalVisits can be lower
// than RouteStats.TotalVisits, which counts every route map row.
type Compliance struct {
	TotalVisits     int                     `json:"totalVisits"`
	CompletedVisits int                     `json:"completedVisits"`
	MissedVisits    int                     `json:"missedVisits"`
	Rate            int                     `json:"rate"` // Percent, rounded
	ActiveStaff     int                     `json:"activeStaff"`
	Governorates    []GovernorateCompliance `json:"governorates"`
	Daily           []DailyCompliance       `json:"daily"`
}

// DailyCompliance is the visit compliance of one visit date.
// Date is YYYY-MM-DD, or UndatedLabel.
type DailyCompliance struct {
	Date      string `json:"date"`
	Visits    int    `json:"visits"`
	Completed int    `json:"completed"`
	Rate      int    `json:"rate"`
}

// RecentDays returns the last n entries of the daily series.
func (c Compliance) RecentDays(n int) []DailyCompliance {
	if n <= 0 || n >= len(c.Daily) {
		return c.Daily
	}
	return c.Daily[len(c.Daily)-n:]
}

// GovernorateCompliance is the visit compliance of one governorate.
type GovernorateCompliance struct {
	Name      string `json:"name"`
	Visits    int    `json:"visits"`
	Completed int    `json:"completed"`
	Rate      int    `json:"rate"`
}

// ComplianceOf computes visit compliance over the route map visits.
// Governorates are sorted by visits descending, ties in first-appearance order.
func ComplianceOf(visits []VisitRecord) Compliance {
	c := Compliance{
		TotalVisits:  len(visits),
		Governorates: []GovernorateCompliance{},
		Daily:        []DailyCompliance{},
	}

	staff := make(map[EmployeeID]struct{})
	govIdx := make(map[string]int)
	for _, v := range visits {
		staff[v.EmployeeID] = struct{}{}
		if v.Checked {
			c.CompletedVisits++
		}

		gov := v.Governorate
		if gov == "" {
			gov = UnknownGovernorate
		}
		i, ok := govIdx[gov]
		if !ok {
			i = len(c.Governorates)
			govIdx[gov] = i
			c.Governorates = append(c.Governorates, GovernorateCompliance{Name: gov})
		}
		c.Governorates[i].Visits++
		if v.Checked {
			c.Governorates[i].Completed++
		}
	}

	c.Daily = dailyCompliance(visits)
	c.MissedVisits = c.TotalVisits - c.CompletedVisits
	c.Rate = percent(c.CompletedVisits, c.TotalVisits)
	c.ActiveStaff = len(staff)
	for i := range c.Governorates {
		g := &c.Governorates[i]
		g.Rate = percent(g.Completed, g.Visits)
	}

	sort.SliceStable(c.Governorates, func(i, j int) bool {
		return c.Governorates[i].Visits > c.Governorates[j].Visits
	})
	return c
}

// dailyCompliance groups visits by date, oldest first. Undated visits form
// a single trailing entry.
func dailyCompliance(visits []VisitRecord) []DailyCompliance {
	byDate := make(map[string]*DailyCompliance)
	var undated *DailyCompliance
	for _, v := range visits {
		var d *DailyCompliance
		if v.VisitDate.IsZero() {
			if undated == nil {
				undated = &DailyCompliance{Date: UndatedLabel}
			}
			d = undated
		} else {
			key := v.VisitDate.Format(time.DateOnly)
			if d = byDate[key]; d == nil {
				d = &DailyCompliance{Date: key}
				byDate[key] = d
			}
		}
		d.Visits++
		if v.Checked {
			d.Completed++
		}
	}

	days := make([]DailyCompliance, 0, len(byDate)+1)
	for _, d := range byDate {
		d.Rate = percent(d.Completed, d.Visits)
		days = append(days, *d)
	}
	// YYYY-MM-DD sorts chronologically as text.
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	if undated != nil {
		undated.Rate = percent(undated.Completed, undated.Visits)
		days = append(days, *undated)
	}
	return days
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// AlertType classifies an alert.
type AlertType string

const (
	AlertUnreportedCoverage AlertType = "UNREPORTED COVERAGE"
	AlertVisitGap           AlertType = "VISIT GAP"
	AlertDualReporting      AlertType = "DUAL REPORTING RISK"
)

// Alert flags an employee, or the run as a whole, for follow-up.
type Alert struct {
	Type         AlertType  `json:"type"`
	EmployeeID   EmployeeID `json:"employeeId,omitempty"`
	EmployeeName string     `json:"employeeName"`
	Details      string     `json:"details"`
	Location     string     `json:"location"`
}

// BuildAlerts derives alerts from the visits and the reconciliation result.
// Unreported coverage alerts come first, then visit gaps in visit order,
// then a single dual reporting alert when any employee is in both datasets.
func BuildAlerts(visits []VisitRecord, rec ReconciliationResult) []Alert {
	alerts := []Alert{}

	seen := make(map[EmployeeID]struct{})
	for _, m := range rec.MissingOnlyRecords {
		if _, dup := seen[m.EmployeeID]; dup {
			continue
		}
		seen[m.EmployeeID] = struct{}{}
		alerts = append(alerts, Alert{
			Type:         AlertUnreportedCoverage,
			EmployeeID:   m.EmployeeID,
			EmployeeName: m.EmployeeName,
			Details:      "Employee was expected to execute routes but reported zero visits in the route map.",
			Location:     m.GovernorateName,
		})
	}

	for _, v := range visits {
		if v.Checked {
			continue
		}
		gov := v.Governorate
		if gov == "" {
			gov = UnknownGovernorate
		}
		alerts = append(alerts, Alert{
			Type:         AlertVisitGap,
			EmployeeID:   v.EmployeeID,
			EmployeeName: v.EmployeeName,
			Details:      fmt.Sprintf("Did not check in at %s.", v.ShopName),
			Location:     joinLocation(v.District, gov),
		})
	}

	if n := len(rec.Overlap); n > 0 {
		alerts = append(alerts, Alert{
			Type:         AlertDualReporting,
			EmployeeName: "System Flag",
			Details:      fmt.Sprintf("%d employee(s) appear in both the route map and the missing roster. Audit for conflicting records.", n),
			Location:     "Multiple Regions",
		})
	}

	return alerts
}

func joinLocation(district, governorate string) string {
	if district == "" {
		return governorate
	}
	return district + ", " + governorate
}
