package internal

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Sleep quality ratings as they appear on the wire and in the store.
const (
	QualityWell     = "Slept well"
	QualityAverage  = "Average sleep"
	QualityPoor     = "Poor sleep"
	QualityVeryPoor = "Very poor sleep"
)

type User struct {
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Child struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"` // YYYY-MM-DD
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}

type SleepSession struct {
	ID        int64      `json:"id"`
	ChildID   int64      `json:"child_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Quality   *string    `json:"quality"`
	IsOngoing bool       `json:"is_ongoing"`
	CreatedAt time.Time  `json:"created_at"`
}

// Prediction is the five-field forecast shape. Field values coming back from
// the forecasting service are passed through as-is.
type Prediction struct {
	NextSleepTime    string `json:"nextSleepTime"`
	TimeUntilSleep   string `json:"timeUntilSleep"`
	ExpectedDuration string `json:"expectedDuration"`
	Confidence       string `json:"confidence"`
	Reasoning        string `json:"reasoning"`
}
