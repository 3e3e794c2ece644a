package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validAddressParams() AddressParams {
	return AddressParams{
		Street:   "Av. Corrientes",
		Number:   1234,
		City:     "Buenos Aires",
		Province: "CABA",
		Country:  "Argentina",
	}
}

func TestNewAddress_Valid(t *testing.T) {
	params := validAddressParams()
	params.Floor = "3"
	params.Unit = "B"
	params.PostalCode = "C1043"
	lat, lon := -34.6037, -58.3816
	params.Latitude = &lat
	params.Longitude = &lon

	address, err := NewAddress(params)
	require.NoError(t, err)
	require.Equal(t, "Av. Corrientes", address.Street())
	require.Equal(t, 1234, address.Number())
	require.Equal(t, "3", address.Floor())
	require.Equal(t, "B", address.Unit())
	require.Equal(t, -34.6037, *address.Latitude())
	require.Equal(t, -58.3816, *address.Longitude())
}

func TestNewAddress_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AddressParams)
		field  string
	}{
		{"missing street", func(p *AddressParams) { p.Street = "  " }, "calle"},
		{"zero number", func(p *AddressParams) { p.Number = 0 }, "altura"},
		{"negative number", func(p *AddressParams) { p.Number = -4 }, "altura"},
		{"missing city", func(p *AddressParams) { p.City = "" }, "ciudad"},
		{"missing province", func(p *AddressParams) { p.Province = "" }, "provincia"},
		{"missing country", func(p *AddressParams) { p.Country = "" }, "pais"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validAddressParams()
			tc.mutate(&params)
			_, err := NewAddress(params)
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			require.Equal(t, tc.field, fieldErr.Field)
		})
	}
}

func TestNewAddress_CoordinateBounds(t *testing.T) {
	params := validAddressParams()
	lat := 91.0
	params.Latitude = &lat
	_, err := NewAddress(params)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "lat", fieldErr.Field)

	params = validAddressParams()
	lon := -181.0
	params.Longitude = &lon
	_, err = NewAddress(params)
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "lon", fieldErr.Field)
}

func TestNewAddress_OptionalCoordinatesAbsent(t *testing.T) {
	address, err := NewAddress(validAddressParams())
	require.NoError(t, err)
	require.Nil(t, address.Latitude())
	require.Nil(t, address.Longitude())
}

func TestAddress_ParamsRoundTrip(t *testing.T) {
	params := validAddressParams()
	lat := -31.4201
	params.Latitude = &lat

	address, err := NewAddress(params)
	require.NoError(t, err)

	exported := address.Params()
	require.Equal(t, params.Street, exported.Street)
	require.Equal(t, params.Number, exported.Number)
	require.Equal(t, *params.Latitude, *exported.Latitude)
	require.NotSame(t, params.Latitude, exported.Latitude)
}
