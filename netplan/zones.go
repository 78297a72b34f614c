package netplan

import "fmt"

// Zone is one availability zone slot in the topology.
// Index feeds Fn::Select over Fn::GetAZs; Suffix feeds Name tags.
type Zone struct {
	Index  int
	Suffix string
}

// maxZones is the most zones any AWS region exposes today.
const maxZones = 6

// Zones returns the first n availability-zone slots (a, b, c, ...).
func Zones(n int) ([]Zone, error) {
	if n < 1 {
		return nil, fmt.Errorf("need at least one availability zone, got %d", n)
	}
	if n > maxZones {
		return nil, fmt.Errorf("at most %d availability zones supported, got %d", maxZones, n)
	}

	zones := make([]Zone, n)
	for i := 0; i < n; i++ {
		zones[i] = Zone{Index: i, Suffix: string(rune('a' + i))}
	}
	return zones, nil
}
