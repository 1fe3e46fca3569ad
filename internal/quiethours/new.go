package quiethours

import (
	"sync"
	"time"
)

type implCalculator struct {
	locations sync.Map // name -> *time.Location
}

func New() Calculator {
	return &implCalculator{}
}

// location resolves an IANA name. An empty name means UTC.
func (c *implCalculator) location(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	if v, ok := c.locations.Load(name); ok {
		return v.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	c.locations.Store(name, loc)
	return loc, nil
}
