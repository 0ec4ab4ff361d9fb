package forecast

import (
	"time"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

const nextSleepOffset = 3 * time.Hour

// UnconfiguredPrediction is returned when no forecasting-service key is set:
// a fixed medium-confidence estimate three hours out.
func UnconfiguredPrediction(now time.Time) internal.Prediction {
	return internal.Prediction{
		NextSleepTime:    now.Add(nextSleepOffset).Format(time.RFC3339),
		TimeUntilSleep:   "3 hours 0 minutes",
		ExpectedDuration: "2 hours 30 minutes",
		Confidence:       "medium",
		Reasoning:        "Mock prediction - Please configure your Gemini API key for AI-powered predictions",
	}
}

// FallbackPrediction is returned when the live call fails; reasoning carries
// the failure kind, the structured fields are fixed.
func FallbackPrediction(now time.Time, reasoning string) internal.Prediction {
	return internal.Prediction{
		NextSleepTime:    now.Add(nextSleepOffset).Format(time.RFC3339),
		TimeUntilSleep:   "3 hours 0 minutes",
		ExpectedDuration: "2 hours 0 minutes",
		Confidence:       "low",
		Reasoning:        reasoning,
	}
}

const (
	ReasonParseError = "Default prediction due to parsing error"
	ReasonAPIError   = "Default prediction due to API error"
)
