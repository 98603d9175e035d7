package broadcasts

import "time"

type AlertType string

const (
	AlertFire           AlertType = "Fire Alert"
	AlertRoadBlock      AlertType = "Road Block"
	AlertWaterIssue     AlertType = "Water Issue"
	AlertWeatherWarning AlertType = "Weather Warning"
	AlertGeneral        AlertType = "General"
)

var knownTypes = map[AlertType]bool{
	AlertFire:           true,
	AlertRoadBlock:      true,
	AlertWaterIssue:     true,
	AlertWeatherWarning: true,
	AlertGeneral:        true,
}

const (
	StatusSent = "Sent"

	// WholeCity reaches every citizen regardless of address
	WholeCity = "Whole City"
)

// Broadcast is an alert pushed by an official to citizens in an area
type Broadcast struct {
	ID      string    `json:"id" bson:"_id" example:"3f0c2f8e-6a55-4f3e-9d0b-1b1c1d1e1f20"`
	Area    string    `json:"area" bson:"area" example:"Sector 4"`
	Type    AlertType `json:"type" bson:"type" example:"Fire Alert"`
	Message string    `json:"message" bson:"message"`
	Reach   int       `json:"reach" bson:"reach" example:"450"`
	Status  string    `json:"status" bson:"status" example:"Sent"`
	SentBy  string    `json:"sentBy" bson:"sentBy"`
	SentAt  time.Time `json:"sentAt" bson:"sentAt"`
}

type CreateBroadcastRequest struct {
	Area    string    `json:"area" binding:"required" example:"Sector 4"`
	Type    AlertType `json:"type" binding:"required" example:"Fire Alert"`
	Message string    `json:"message" binding:"required" example:"Fire reported at Central Market. Avoid the area."`
}
