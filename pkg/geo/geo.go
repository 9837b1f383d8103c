package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a geographic coordinate. The JSON form is a bare
// [lon, lat] pair, matching the fence payloads clients send.
type Point struct {
	Lon float64
	Lat float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lon, p.Lat})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	p.Lon = pair[0]
	p.Lat = pair[1]
	return nil
}

// Ring is an ordered polygon boundary. A valid ring is closed: the
// last vertex equals the first.
type Ring []Point

// ParseRing validates vertices and normalizes closure, appending the
// first vertex when the input ring is open.
func ParseRing(points []Point) (Ring, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("ring needs at least 3 vertices, got %d", len(points))
	}
	for _, p := range points {
		if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) ||
			math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
			return nil, fmt.Errorf("ring has non-finite vertex (%v, %v)", p.Lon, p.Lat)
		}
	}

	ring := make(Ring, len(points), len(points)+1)
	copy(ring, points)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// Contains reports whether p is inside or on the boundary of the ring,
// using ray casting with an explicit edge check so boundary points
// count as contained.
func (r Ring) Contains(p Point) bool {
	if len(r) < 4 {
		return false
	}

	inside := false
	for i := 0; i < len(r)-1; i++ {
		a, b := r[i], r[i+1]

		if onSegment(p, a, b) {
			return true
		}

		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			xCross := a.Lon + (p.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lon-a.Lon)
			if p.Lon < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b Point) bool {
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	if math.Abs(cross) > 1e-12 {
		return false
	}
	if p.Lon < math.Min(a.Lon, b.Lon) || p.Lon > math.Max(a.Lon, b.Lon) {
		return false
	}
	if p.Lat < math.Min(a.Lat, b.Lat) || p.Lat > math.Max(a.Lat, b.Lat) {
		return false
	}
	return true
}
