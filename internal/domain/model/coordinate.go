package model

import (
	"encoding/json"
	"fmt"
)

// 緯度・経度。JSONでは [lat, lng] の配列。
type Coordinate struct {
	Lat float64
	Lng float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have 2 elements, got %d", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}
