package model

import "math"

// BuyerType is the kind of collection point.
type BuyerType string

const (
	BuyerBankSampah BuyerType = "bank-sampah"
	BuyerPengepul   BuyerType = "pengepul"
	BuyerPabrik     BuyerType = "pabrik"
)

// Valid reports whether t is one of the known buyer types.
func (t BuyerType) Valid() bool {
	switch t {
	case BuyerBankSampah, BuyerPengepul, BuyerPabrik:
		return true
	}
	return false
}

// Location is a latitude/longitude pair in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Valid reports whether both coordinates are finite and within range.
func (l Location) Valid() bool {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// WasteBuyer is a physical collection point. Location is nil until an
// operator places the buyer on the map.
type WasteBuyer struct {
	ID       string    `json:"id" yaml:"id" db:"id"`
	Name     string    `json:"name" yaml:"name" db:"name"`
	Type     BuyerType `json:"type" yaml:"type" db:"type"`
	Address  string    `json:"address" yaml:"address" db:"address"`
	City     string    `json:"city" yaml:"city" db:"city"`
	Province string    `json:"province" yaml:"province" db:"province"`
	Contact  string    `json:"contact" yaml:"contact" db:"contact"`
	Location *Location `json:"location,omitempty" yaml:"location"`
}

func (b WasteBuyer) ListingName() string { return b.Name }

// ListingDescription lets address and city take part in text search.
func (b WasteBuyer) ListingDescription() string { return b.Address + " " + b.City + " " + b.Province }

func (b WasteBuyer) ListingCategory() string       { return string(b.Type) }
func (b WasteBuyer) ListingPrice() (float64, bool) { return 0, false }

// LocationRequest is the payload for placing a buyer on the map. Both
// coordinates are pointers so a missing one can be told apart from zero.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// EditSessionRequest opens a map editing session for a buyer.
type EditSessionRequest struct {
	BuyerID string `json:"buyerId"`
}
