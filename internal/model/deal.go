package model

// Deal is a single transaction record reshaped for the client. Fields absent
// from the upstream record stay at their zero values.
type Deal struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Price   float64 `json:"price"`
	Size    float64 `json:"size"`
	Rooms   float64 `json:"rooms"`
	Floor   string  `json:"floor"`
	Date    string  `json:"date"` // YYYY-MM
	Type    string  `json:"type"`
	PPM     int     `json:"ppm"` // price per square meter, 0 when not computable
}
