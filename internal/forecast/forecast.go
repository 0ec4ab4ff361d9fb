// Package forecast produces next-sleep predictions for a child from recent
// session history. The live path calls the Gemini text-generation API; every
// failure mode degrades to a fixed prediction so Predict never fails.
package forecast

import (
	"context"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

type Predictor interface {
	Predict(ctx context.Context, child *internal.Child, history []internal.SleepSession) internal.Prediction
}
