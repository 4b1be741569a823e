package ports

// Municipality is the result of a postal code lookup.
type Municipality struct {
	Name string
	// Link is the municipality's home page.
	Link string
	// KomvuxLink points to the municipality's adult education
	// (vuxenutbildning) page. Empty when the municipality has none.
	KomvuxLink string
}

// MunicipalityIndex resolves a five-digit Swedish postal code to its
// municipality. Lookup returns ok=false for unknown codes.
type MunicipalityIndex interface {
	Lookup(postalCode string) (Municipality, bool)
}
