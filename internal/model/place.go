package model

// Place is a physical location listings are attached to.  Identifier is a
// human-chosen key and doubles as the primary key of the `places` table.
type Place struct {
	Identifier string  `json:"identifier"` // places.identifier
	Name       string  `json:"name"`       // places.name
	Lng        float64 `json:"lng"`        // places.lng
	Lat        float64 `json:"lat"`        // places.lat
}
