package core

// Route map columns.
const (
	ColSubDiv      = "Sub Div"
	ColJob         = "Job"
	ColCode        = "Code"
	ColName        = "Name"
	ColDate        = "DATE"
	ColShopCode    = "Shop Code"
	ColShopName    = "Shop Name"
	ColArea        = "Area"
	ColGovernorate = "Governorate"
	ColDistrict    = "District"
	ColComment     = "Comment"
	ColCheck       = "Check"
)

// Missing roster columns.
const (
	ColCompositeKey    = "Composite Key"
	ColTitle           = "TITLE"
	ColEmployeeCode    = "EMPLOYEE CODE"
	ColEmployeeName    = "EMPLOYEE NAME"
	ColGovernorateName = "GOVERNORATE NAME"
)

// Schema keys.
const (
	RouteMapKey      = "route_map"
	MissingRosterKey = "missing_roster"
)

// RouteMapSchema describes the supervisor visit log.
var RouteMapSchema = Schema{
	Key:        RouteMapKey,
	Label:      "Route Map",
	IDColumn:   ColCode,
	NameColumn: ColName,
	FieldSpecs: []FieldSpec{
		{Name: ColSubDiv, Aliases: []string{"Sub Div.", "SubDiv", "Division"}, Type: FieldText},
		{Name: ColJob, Type: FieldText, Required: true},
		{Name: ColCode, Type: FieldIdentifier, Required: true},
		{Name: ColName, Type: FieldText, Required: true},
		{Name: ColDate, Aliases: []string{"Date"}, Type: FieldDate},
		{Name: ColShopCode, Type: FieldText, Required: true},
		{Name: ColShopName, Type: FieldText, Required: true},
		{Name: ColArea, Type: FieldText},
		{Name: ColGovernorate, Type: FieldText, Required: true},
		{Name: ColDistrict, Type: FieldText},
		{Name: ColComment, Type: FieldText},
		{Name: ColCheck, Type: FieldBool},
	},
}

// MissingRosterSchema describes the roster of employees lacking records.
// The first column is an opaque composite key whose header text varies
// between exports ("&&&" in the weekly workbook).
var MissingRosterSchema = Schema{
	Key:        MissingRosterKey,
	Label:      "Missing Roster",
	IDColumn:   ColEmployeeCode,
	NameColumn: ColEmployeeName,
	FieldSpecs: []FieldSpec{
		{Name: ColCompositeKey, Type: FieldText, Leading: true},
		{Name: ColTitle, Type: FieldText, Required: true},
		{Name: ColEmployeeCode, Type: FieldIdentifier, Required: true},
		{Name: ColEmployeeName, Type: FieldText, Required: true},
		{Name: ColGovernorateName, Type: FieldText, Required: true},
	},
}

func init() {
	Register(RouteMapSchema)
	Register(MissingRosterSchema)
}
