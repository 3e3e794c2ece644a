package domain

import (
	"fmt"
	"strings"
)

// FieldError tags a validation failure with the wire-level field that caused it.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError builds a validation error for a single named field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// AddressParams carries the raw inputs for building a delivery address.
// Optional values are pointers so "absent" and "zero" stay distinguishable.
type AddressParams struct {
	Street     string
	Number     int
	Floor      string
	Unit       string
	PostalCode string
	City       string
	Province   string
	Country    string
	Latitude   *float64
	Longitude  *float64
}

// Address is the delivery address owned by an order. It is validated at
// construction and immutable afterwards.
type Address struct {
	street     string
	number     int
	floor      string
	unit       string
	postalCode string
	city       string
	province   string
	country    string
	latitude   *float64
	longitude  *float64
}

// NewAddress validates the params and builds an Address. Checks run in a fixed
// order and fail with a FieldError naming the first offending field:
// calle, altura, ciudad, provincia, pais, codPostal, piso, departamento, lat, lon.
func NewAddress(params AddressParams) (Address, error) {
	if strings.TrimSpace(params.Street) == "" {
		return Address{}, NewFieldError("calle", "la calle es obligatoria")
	}
	if params.Number <= 0 {
		return Address{}, NewFieldError("altura", "la altura debe ser un número positivo")
	}
	if strings.TrimSpace(params.City) == "" {
		return Address{}, NewFieldError("ciudad", "la ciudad es obligatoria")
	}
	if strings.TrimSpace(params.Province) == "" {
		return Address{}, NewFieldError("provincia", "la provincia es obligatoria")
	}
	if strings.TrimSpace(params.Country) == "" {
		return Address{}, NewFieldError("pais", "el país es obligatorio")
	}
	if params.Latitude != nil && (*params.Latitude < -90 || *params.Latitude > 90) {
		return Address{}, NewFieldError("lat", "la latitud debe estar entre -90 y 90")
	}
	if params.Longitude != nil && (*params.Longitude < -180 || *params.Longitude > 180) {
		return Address{}, NewFieldError("lon", "la longitud debe estar entre -180 y 180")
	}
	return Address{
		street:     params.Street,
		number:     params.Number,
		floor:      params.Floor,
		unit:       params.Unit,
		postalCode: params.PostalCode,
		city:       params.City,
		province:   params.Province,
		country:    params.Country,
		latitude:   copyCoord(params.Latitude),
		longitude:  copyCoord(params.Longitude),
	}, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) Number() int        { return a.number }
func (a Address) Floor() string      { return a.floor }
func (a Address) Unit() string       { return a.unit }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) City() string       { return a.city }
func (a Address) Province() string   { return a.province }
func (a Address) Country() string    { return a.country }

// Latitude returns a copy of the optional coordinate.
func (a Address) Latitude() *float64 { return copyCoord(a.latitude) }

// Longitude returns a copy of the optional coordinate.
func (a Address) Longitude() *float64 { return copyCoord(a.longitude) }

// Params exports the address back into its raw form, used by persistence and
// transport mappers.
func (a Address) Params() AddressParams {
	return AddressParams{
		Street:     a.street,
		Number:     a.number,
		Floor:      a.floor,
		Unit:       a.unit,
		PostalCode: a.postalCode,
		City:       a.city,
		Province:   a.province,
		Country:    a.country,
		Latitude:   copyCoord(a.latitude),
		Longitude:  copyCoord(a.longitude),
	}
}

func copyCoord(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
