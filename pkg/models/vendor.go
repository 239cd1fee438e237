package models

import (
	"github.com/google/uuid"
)

// Coordinates is a WGS84 latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Vendor is the read model of a vendor including its delivery pricing policy.
// Nil policy fields mean the vendor has not configured that rule.
type Vendor struct {
	ID                  uuid.UUID    `json:"id" db:"id"`
	Name                string       `json:"name" db:"name"`
	Location            *Coordinates `json:"location,omitempty"`
	Region              *string      `json:"region,omitempty" db:"region"`
	MinDeliveryFee      *float64     `json:"min_delivery_fee,omitempty" db:"min_delivery_fee"`
	PerKmRate           *float64     `json:"per_km_rate,omitempty" db:"per_km_rate"`
	InRegionFlatRate    *float64     `json:"in_region_flat_rate,omitempty" db:"in_region_flat_rate"`
	CrossRegionFee      *float64     `json:"cross_region_fee,omitempty" db:"cross_region_fee"`
	MaxDeliveryRadiusKm *float64     `json:"max_delivery_radius_km,omitempty" db:"max_delivery_radius_km"`
	AllowCrossRegion    bool         `json:"allow_cross_region" db:"allow_cross_region"`
}
