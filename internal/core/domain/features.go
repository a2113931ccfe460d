package domain

// AliasBinding maps a human-facing name to a canonical dataset column.
type AliasBinding struct {
	Alias  string
	Column string
	Help   string
}

// MelbourneAliases is the fixed alias table for the Melbourne housing
// dataset. The CLI registers one named flag per entry; the HTTP layer
// accepts the same names as query parameters. Canonical column names
// resolve through their identity mapping regardless of this list.
var MelbourneAliases = []AliasBinding{
	{Alias: "suburb", Column: "Suburb", Help: "Suburb name"},
	{Alias: "address", Column: "Address", Help: "Street address"},
	{Alias: "rooms", Column: "Rooms", Help: "Number of rooms"},
	{Alias: "type", Column: "Type", Help: "Property type code (h, u, t)"},
	{Alias: "method", Column: "Method", Help: "Sale method code"},
	{Alias: "seller", Column: "SellerG", Help: "Selling agency"},
	{Alias: "date", Column: "Date", Help: "Sale date (e.g., 4/03/2017)"},
	{Alias: "distance", Column: "Distance", Help: "Distance to CBD in km"},
	{Alias: "postcode", Column: "Postcode", Help: "Postcode"},
	{Alias: "bedroom2", Column: "Bedroom2", Help: "Secondary bedroom count"},
	{Alias: "bathroom", Column: "Bathroom", Help: "Bathroom count"},
	{Alias: "car", Column: "Car", Help: "Car spots"},
	{Alias: "landsize", Column: "Landsize", Help: "Land size in m^2"},
	{Alias: "building-area", Column: "BuildingArea", Help: "Building area in m^2"},
	{Alias: "year-built", Column: "YearBuilt", Help: "Year built"},
	{Alias: "council-area", Column: "CouncilArea", Help: "Council area"},
	{Alias: "lattitude", Column: "Lattitude", Help: "Latitude"},
	{Alias: "longtitude", Column: "Longtitude", Help: "Longitude"},
	{Alias: "region", Column: "Regionname", Help: "Region name"},
	{Alias: "property-count", Column: "Propertycount", Help: "Number of properties in the suburb"},
}
