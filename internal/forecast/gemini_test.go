package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

func testLogger() internal.Logger {
	return internal.NewZapLogger(zap.NewNop().Sugar())
}

func testChild() *internal.Child {
	return &internal.Child{
		ID:        1,
		UserID:    42,
		Name:      "Mia",
		BirthDate: time.Now().UTC().AddDate(0, -6, 0).Format("2006-01-02"),
		Gender:    internal.GenderFemale,
	}
}

func geminiBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(body)
}

func assertPredictionShape(t *testing.T, pred internal.Prediction) {
	t.Helper()
	assert.NotEmpty(t, pred.NextSleepTime)
	assert.NotEmpty(t, pred.TimeUntilSleep)
	assert.NotEmpty(t, pred.ExpectedDuration)
	assert.NotEmpty(t, pred.Confidence)
	assert.NotEmpty(t, pred.Reasoning)
}

func TestPredict_Unconfigured(t *testing.T) {
	p := NewGeminiPredictor("http://localhost:1", "", testLogger())

	pred := p.Predict(context.Background(), testChild(), nil)

	assert.Equal(t, "medium", pred.Confidence)
	assert.Equal(t, "3 hours 0 minutes", pred.TimeUntilSleep)
	assert.Equal(t, "2 hours 30 minutes", pred.ExpectedDuration)
	assertPredictionShape(t, pred)

	next, err := time.Parse(time.RFC3339, pred.NextSleepTime)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), next, time.Minute)
}

func TestPredict_NetworkFailure(t *testing.T) {
	// Nothing listens on this address, so the call fails at the transport.
	p := NewGeminiPredictor("http://127.0.0.1:1", "test-key", testLogger())

	pred := p.Predict(context.Background(), testChild(), nil)

	assert.Equal(t, "low", pred.Confidence)
	assert.Equal(t, "2 hours 0 minutes", pred.ExpectedDuration)
	assert.Equal(t, ReasonAPIError, pred.Reasoning)
	assertPredictionShape(t, pred)
}

func TestPredict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiPredictor(srv.URL, "test-key", testLogger())
	pred := p.Predict(context.Background(), testChild(), nil)

	assert.Equal(t, "low", pred.Confidence)
	assert.Equal(t, ReasonAPIError, pred.Reasoning)
}

func TestPredict_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	p := NewGeminiPredictor(srv.URL, "test-key", testLogger())
	pred := p.Predict(context.Background(), testChild(), nil)

	assert.Equal(t, "low", pred.Confidence)
	assert.Equal(t, ReasonAPIError, pred.Reasoning)
}

func TestPredict_UnparseableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiBody("the baby will sleep when it sleeps")))
	}))
	defer srv.Close()

	p := NewGeminiPredictor(srv.URL, "test-key", testLogger())
	pred := p.Predict(context.Background(), testChild(), nil)

	assert.Equal(t, "low", pred.Confidence)
	assert.Equal(t, "2 hours 0 minutes", pred.ExpectedDuration)
	assert.Equal(t, ReasonParseError, pred.Reasoning)
}

func TestPredict_LivePassThrough(t *testing.T) {
	answer := `Based on the history:
{"nextSleepTime": "2024-05-01T13:00:00.000Z", "timeUntilSleep": "1 hours 30 minutes", "expectedDuration": "2 hours 0 minutes", "confidence": "high", "reasoning": "Regular nap cadence"}`

	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiBody(answer)))
	}))
	defer srv.Close()

	end := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	quality := internal.QualityWell
	history := []internal.SleepSession{
		{
			ChildID:   1,
			StartTime: time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC),
			EndTime:   &end,
			Quality:   &quality,
		},
		{
			ChildID:   1,
			StartTime: time.Date(2024, 4, 30, 19, 0, 0, 0, time.UTC),
			IsOngoing: true,
		},
	}

	p := NewGeminiPredictor(srv.URL, "test-key", testLogger())
	pred := p.Predict(context.Background(), testChild(), history)

	assert.Equal(t, "high", pred.Confidence)
	assert.Equal(t, "2024-05-01T13:00:00.000Z", pred.NextSleepTime)
	assert.Equal(t, "Regular nap cadence", pred.Reasoning)

	assert.Contains(t, gotPrompt, "You are a baby sleep expert")
	assert.Contains(t, gotPrompt, "Gender: Female")
	assert.Contains(t, gotPrompt, "Quality: Slept well")
	assert.Contains(t, gotPrompt, "Duration: 2 hours 30 minutes")
	assert.Contains(t, gotPrompt, "Still sleeping")
	assert.Contains(t, gotPrompt, "Quality: Not rated")
	assert.Contains(t, gotPrompt, "Duration: Ongoing")
}
