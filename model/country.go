package model

import "strings"

// Country is a selectable market filter.
type Country struct {
	Key  string `json:"key"`
	Code string `json:"code"` // market parameter sent to the catalog
	Name string `json:"name"`
}

// DefaultCountry is selected when nothing else has been chosen.
const DefaultCountry = "GLOBAL"

// Countries lists the market filters in display order.
var Countries = []Country{
	{Key: "GLOBAL", Code: "US", Name: "Global"},
	{Key: "BR", Code: "BR", Name: "Brasil"},
	{Key: "DE", Code: "DE", Name: "Germany"},
	{Key: "MX", Code: "MX", Name: "Mexico"},
}

// LookupCountry finds a country by key, case-insensitively.
func LookupCountry(key string) (Country, bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for _, c := range Countries {
		if c.Key == key {
			return c, true
		}
	}
	return Country{}, false
}
