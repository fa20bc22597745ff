package core

import "github.com/JonMunkholm/RouteAudit/internal/dataset"

var routeHeader = []string{
	"Sub Div.", "Job", "Code", "Name", "DATE", "Shop Code", "Shop Name",
	"Area", "Governorate", "District", "Comment", "Check",
}

var rosterHeader = []string{"&&&", "TITLE", "EMPLOYEE CODE", "EMPLOYEE NAME", "GOVERNORATE NAME"}

// visit builds a route map row for the given employee and shop.
func visit(code, name, job, shop, gov, check string) []string {
	return []string{
		"Retail", job, code, name, "27-Oct-25", "S-" + shop, shop,
		"East", gov, "Sidi Gaber", "", check,
	}
}

// rosterRow builds a missing roster row.
func rosterRow(code, name, title, gov string) []string {
	return []string{code + title + gov, title, code, name, gov}
}

func routeMap(rows ...[]string) dataset.Dataset {
	return dataset.New("Route Map", routeHeader, rows)
}

func missingRoster(rows ...[]string) dataset.Dataset {
	return dataset.New("Missing Roster", rosterHeader, rows)
}

// sampleRoute is a small route map with uneven supervisor activity.
func sampleRoute() dataset.Dataset {
	return routeMap(
		visit("A-1168", "Ahmed Adel", "Supervisor", "Kheir Zaman", "Alexandria", "TRUE"),
		visit("A-1168", "Ahmed Adel", "Supervisor", "Metro", "Alexandria", "TRUE"),
		visit("A-1168", "Ahmed Adel", "Supervisor", "Seoudi", "Alexandria", "FALSE"),
		visit("A-1201", "Sara Nabil", "Merchandiser", "Carrefour", "Cairo", "TRUE"),
		visit("A-1201", "Sara Nabil", "Merchandiser", "Metro", "Cairo", "TRUE"),
		visit("A-1310", "Omar Fathy", "Supervisor", "Spinneys", "Giza", "FALSE"),
	)
}

func sampleRoster() dataset.Dataset {
	return missingRoster(
		rosterRow("A-1168", "Ahmed Adel", "Supervisor", "Alexandria"),
		rosterRow("A-1001", "Mohamed Saeed Khedr Ahmed", "Manager", "Sidi Bishr"),
		rosterRow("A-1001", "Mohamed Saeed Khedr Ahmed", "Manager", "Sidi Bishr"),
		rosterRow("A-2040", "Hany Fouad", "Supervisor", "Cairo"),
	)
}
