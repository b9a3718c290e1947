// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Point is a geographic position. X is the longitude and Y the latitude, matching orb.Point.
// A missing point is always represented by a nil *Point, never by a partial value.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint assembles a point from two nullable coordinates.
// It returns nil unless both coordinates are present.
func NewPoint(x, y *float64) *Point {
	if x == nil || y == nil {
		return nil
	}

	return &Point{X: *x, Y: *y}
}

// Coordinates splits a possibly nil point into two nullable coordinates.
func (p *Point) Coordinates() (x, y *float64) {
	if p == nil {
		return nil, nil
	}

	px, py := p.X, p.Y

	return &px, &py
}

// Orb converts the point to an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// DistanceTo returns the haversine distance in meters between two points.
func (p Point) DistanceTo(other Point) float64 {
	return geo.Distance(p.Orb(), other.Orb())
}

// String renders the point as a parenthesized pair, e.g. "(121.5,25.03)".
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
