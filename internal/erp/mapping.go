package erp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// vehicleField is one entry in the vehicle → Car mapping table. The table is
// data, not code, so it can be inspected and tested without a live endpoint.
type vehicleField struct {
	key      string
	fallback any
	assign   func(car *domain.Car, value any)
}

// vehicleToCar maps Odoo fleet vehicle fields onto the domain Car.
var vehicleToCar = []vehicleField{
	{key: "license_plate", assign: func(c *domain.Car, v any) { c.RegistrationNumber = asString(v) }},
	{key: "brand", fallback: "Unknown", assign: func(c *domain.Car, v any) { c.Make = asString(v) }},
	{key: "model_id", fallback: "Unknown", assign: func(c *domain.Car, v any) { c.Model = asRelationName(v) }},
	{key: "acquisition_date", assign: func(c *domain.Car, v any) { c.Year = asYear(v) }},
	{key: "daily_rate", fallback: 0, assign: func(c *domain.Car, v any) { c.DailyRate = asDecimal(v) }},
	{key: "fuel_type", fallback: "GASOLINE", assign: func(c *domain.Car, v any) { c.FuelType = domain.FuelType(strings.ToUpper(asString(v))) }},
	{key: "transmission", fallback: "AUTOMATIC", assign: func(c *domain.Car, v any) { c.Transmission = domain.Transmission(strings.ToUpper(asString(v))) }},
	{key: "seats", fallback: 5, assign: func(c *domain.Car, v any) { c.Seats = asInt(v) }},
	{key: "color", fallback: "Unknown", assign: func(c *domain.Car, v any) { c.Color = asString(v) }},
	{key: "odometer", fallback: 0, assign: func(c *domain.Car, v any) { c.Mileage = asInt(v) }},
	{key: "id", assign: func(c *domain.Car, v any) { c.OdooID = int64(asInt(v)) }},
}

// MapVehicle maps an external vehicle record to a domain Car. The
// registration number is the upsert key and is required; everything else
// falls back to the table defaults.
func MapVehicle(record Record) (*domain.Car, error) {
	car := &domain.Car{Status: domain.CarStatusAvailable}

	for _, field := range vehicleToCar {
		value, ok := record[field.key]
		if !ok || value == nil {
			if field.fallback == nil {
				continue
			}
			value = field.fallback
		}
		field.assign(car, value)
	}

	if car.RegistrationNumber == "" {
		return nil, fmt.Errorf("vehicle record %v has no license_plate", record["id"])
	}
	return car, nil
}

// MapCustomer maps a domain Customer to the external partner record shape.
func MapCustomer(customer *domain.Customer) Record {
	return Record{
		"full_name":   customer.FullName,
		"email":       customer.Email,
		"phone":       customer.Phone,
		"address":     customer.Address,
		"city":        customer.City,
		"postal_code": customer.PostalCode,
		"country":     customer.Country,
	}
}

// MapBooking maps a domain Booking to the external rental record shape.
// Both the car and the customer must already carry their external IDs.
func MapBooking(booking *domain.Booking, car *domain.Car, customer *domain.Customer) (Record, error) {
	if car.OdooID == 0 {
		return nil, fmt.Errorf("car %s has no external id", car.ID)
	}
	if customer.OdooID == 0 {
		return nil, fmt.Errorf("customer %s has no external id", customer.ID)
	}

	return Record{
		"vehicle_id":     car.OdooID,
		"customer_id":    customer.OdooID,
		"reference":      booking.Reference,
		"start_date":     booking.StartDate.Format(time.RFC3339),
		"end_date":       booking.EndDate.Format(time.RFC3339),
		"daily_rate":     booking.DailyRate.String(),
		"number_of_days": booking.NumberOfDays,
		"total_cost":     booking.TotalCost.String(),
		"notes":          booking.Notes,
	}, nil
}

// The converters below absorb the ERP's loose typing: JSON numbers arrive as
// float64, some deployments send numerics as strings.

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// asRelationName extracts the display name from an Odoo [id, name] pair,
// accepting a bare string as well.
func asRelationName(v any) string {
	if pair, ok := v.([]any); ok && len(pair) == 2 {
		return asString(pair[1])
	}
	return asString(v)
}

// asYear pulls the year out of an ISO date string.
func asYear(v any) int {
	s := asString(v)
	if len(s) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(s[:4])
	return year
}
