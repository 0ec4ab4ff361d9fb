package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

func buildPrompt(child *internal.Child, history []internal.SleepSession, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are a baby sleep expert. Based on the following information, predict the next optimal sleep time for this baby.

Child Information:
- Age: %d months
- Gender: %s
- Current time: %s

Recent Sleep History (last 7 sessions):
`, AgeInMonths(child.BirthDate, now), child.Gender, now.Format(time.RFC3339))

	for _, s := range history {
		end := "Still sleeping"
		duration := "Ongoing"
		if s.EndTime != nil {
			end = s.EndTime.Format(time.RFC3339)
			duration = FormatDuration(s.StartTime, *s.EndTime)
		}
		quality := "Not rated"
		if s.Quality != nil {
			quality = *s.Quality
		}
		fmt.Fprintf(&sb, `
- Start: %s
- End: %s
- Quality: %s
- Duration: %s
`, s.StartTime.Format(time.RFC3339), end, quality, duration)
	}

	sb.WriteString(`
Please provide your prediction in this exact JSON format:
{
  "nextSleepTime": "YYYY-MM-DDTHH:MM:SS.000Z",
  "timeUntilSleep": "X hours Y minutes",
  "expectedDuration": "X hours Y minutes",
  "confidence": "high/medium/low",
  "reasoning": "Brief explanation of your prediction"
}

Consider typical sleep patterns for babies of this age, the quality of recent sleep, and natural circadian rhythms. Base your prediction on established pediatric sleep guidelines.`)

	return sb.String()
}
