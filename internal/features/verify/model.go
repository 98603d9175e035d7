package verify

// Result is the AI verification verdict for a report photo
type Result struct {
	Verified    bool    `json:"verified" example:"true"`
	Confidence  float64 `json:"ai_confidence" example:"0.92"`
	Explanation string  `json:"explanation" example:"Large pothole visible on asphalt road"`
}
