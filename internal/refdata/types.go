package refdata

// CityRecord is one element of the AFS cities endpoint.
type CityRecord struct {
	City    string `json:"city" yaml:"city"`
	Country string `json:"country" yaml:"country"`
}

// AirportRecord is one element of the AFS airports endpoint.
// City and Country are free text and may not match the cities endpoint exactly.
type AirportRecord struct {
	ID      string `json:"id" yaml:"id"`
	Code    string `json:"code" yaml:"code"`
	Name    string `json:"name" yaml:"name"`
	City    string `json:"city" yaml:"city"`
	Country string `json:"country" yaml:"country"`
}

// City is a row of the City table.
type City struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Airport is a row of the Airport table.
type Airport struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	CityID string `json:"city_id"`
}

// NewCity builds the City row for a name/country pair with its derived ID.
func NewCity(name, country string) City {
	return City{
		ID:      CityID(name, country),
		Name:    name,
		Country: country,
	}
}
