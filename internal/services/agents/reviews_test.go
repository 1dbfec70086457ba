package agents

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/models"
)

func TestAnalyzeNoReviews(t *testing.T) {
	svc := &stubCompletion{Response: `{"overall_sentiment": "positive"}`}
	analyzer := NewReviewAnalyzer(svc, arbor.NewLogger())

	analysis := analyzer.Analyze(context.Background(), models.Product{ID: "p1", Title: "Empty"})

	assert.Equal(t, models.SentimentNeutral, analysis.OverallSentiment)
	assert.Equal(t, models.SentimentBreakdown{Positive: 50, Neutral: 30, Negative: 20}, analysis.Breakdown)
	assert.Equal(t, models.ConfidenceLow, analysis.Confidence)
	assert.Equal(t, 0, analysis.Statistics.TotalReviews)
	// No reviews means nothing to send to the model.
	assert.Zero(t, svc.Calls)
}

func TestAnalyzeFallbackFromRatings(t *testing.T) {
	analyzer := NewReviewAnalyzer(&stubCompletion{Err: errStubDown}, arbor.NewLogger())
	product := models.Product{
		ID: "p1", Title: "Mixed",
		Reviews: []models.Review{
			{Rating: 5, Verified: true},
			{Rating: 5},
			{Rating: 4, Verified: true},
			{Rating: 3},
			{Rating: 2},
		},
	}

	analysis := analyzer.Analyze(context.Background(), product)

	assert.Equal(t, models.SentimentPositive, analysis.OverallSentiment)
	assert.Equal(t, 60, analysis.Breakdown.Positive)
	assert.Equal(t, 20, analysis.Breakdown.Negative)
	assert.Equal(t, 100, analysis.Breakdown.Sum())
	assert.Equal(t, models.ConfidenceMedium, analysis.Confidence)
	assert.Equal(t, 5, analysis.Statistics.TotalReviews)
}

func TestAnalyzeWithAI(t *testing.T) {
	svc := &stubCompletion{Response: `{
		"overall_sentiment": "positive",
		"sentiment_breakdown": {"positive": 70, "neutral": 20, "negative": 10},
		"key_themes": ["battery"],
		"pros": ["long battery"],
		"cons": ["slow charger"],
		"red_flags": [],
		"summary": "Well liked overall.",
		"confidence": "high"
	}`}
	analyzer := NewReviewAnalyzer(svc, arbor.NewLogger())
	product := models.Product{
		ID: "p1", Title: "Liked",
		Reviews: []models.Review{{Rating: 5, Text: "great"}, {Rating: 4, Text: "good"}},
	}

	analysis := analyzer.Analyze(context.Background(), product)

	assert.Equal(t, models.SentimentPositive, analysis.OverallSentiment)
	assert.Equal(t, 70, analysis.Breakdown.Positive)
	assert.Equal(t, "Well liked overall.", analysis.Summary)
	assert.Equal(t, models.ConfidenceHigh, analysis.Confidence)
	assert.Equal(t, 2, analysis.Statistics.TotalReviews)
}

func TestAnalyzeRepairsInvalidEnums(t *testing.T) {
	svc := &stubCompletion{Response: `{
		"overall_sentiment": "fantastic",
		"sentiment_breakdown": {"positive": 80, "neutral": 10, "negative": 10},
		"confidence": "absolutely"
	}`}
	analyzer := NewReviewAnalyzer(svc, arbor.NewLogger())
	product := models.Product{ID: "p1", Reviews: []models.Review{{Rating: 5}}}

	analysis := analyzer.Analyze(context.Background(), product)

	assert.Equal(t, models.SentimentPositive, analysis.OverallSentiment)
	assert.Equal(t, models.ConfidenceMedium, analysis.Confidence)
}

func TestAnalyzeUnusableBreakdownFallsBack(t *testing.T) {
	svc := &stubCompletion{Response: `{
		"overall_sentiment": "positive",
		"sentiment_breakdown": {"positive": 0, "neutral": 0, "negative": 0}
	}`}
	analyzer := NewReviewAnalyzer(svc, arbor.NewLogger())
	product := models.Product{ID: "p1", Reviews: []models.Review{{Rating: 5}, {Rating: 5}}}

	analysis := analyzer.Analyze(context.Background(), product)

	// All-zero breakdown is rejected, so the ratings fallback applies.
	assert.Equal(t, 100, analysis.Breakdown.Positive)
	assert.Equal(t, models.ConfidenceMedium, analysis.Confidence)
}

func TestNormalizeBreakdown(t *testing.T) {
	tests := []struct {
		name string
		in   models.SentimentBreakdown
		want models.SentimentBreakdown
		ok   bool
	}{
		{
			name: "exact hundred",
			in:   models.SentimentBreakdown{Positive: 50, Neutral: 30, Negative: 20},
			want: models.SentimentBreakdown{Positive: 50, Neutral: 30, Negative: 20},
			ok:   true,
		},
		{
			name: "rounding slack accepted",
			in:   models.SentimentBreakdown{Positive: 50, Neutral: 29, Negative: 20},
			want: models.SentimentBreakdown{Positive: 50, Neutral: 29, Negative: 20},
			ok:   true,
		},
		{
			name: "rescaled when far off",
			in:   models.SentimentBreakdown{Positive: 70, Neutral: 20, Negative: 20},
			want: models.SentimentBreakdown{Positive: 64, Neutral: 18, Negative: 18},
			ok:   true,
		},
		{
			name: "all zero rejected",
			in:   models.SentimentBreakdown{},
			ok:   false,
		},
		{
			name: "negative rejected",
			in:   models.SentimentBreakdown{Positive: 120, Neutral: -10, Negative: -10},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeBreakdown(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.InDelta(t, 100, got.Sum(), 1)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "short text unchanged", text: "hello", max: 10, want: "hello"},
		{name: "ascii cut", text: "abcdef", max: 3, want: "abc"},
		{name: "multibyte rune not split", text: "ab₹cd", max: 3, want: "ab"},
		{name: "cut lands after rune", text: "ab₹cd", max: 5, want: "ab₹"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateText(tt.text, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestReviewDigestKeepsValidUTF8(t *testing.T) {
	// A review long enough to truncate, with a multibyte rune sitting
	// on the cut point.
	text := strings.Repeat("a", 299) + "₹₹₹"
	digest := reviewDigest([]models.Review{{Rating: 4, Text: text}})
	assert.True(t, utf8.ValidString(digest))
}

func TestComputeReviewStatistics(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5, Verified: true},
		{Rating: 4.4, Verified: true},
		{Rating: 3},
		{Rating: 0.5},
	}

	stats := ComputeReviewStatistics(reviews)

	assert.Equal(t, 4, stats.TotalReviews)
	assert.InDelta(t, 3.2, stats.AverageRating, 0.001)
	assert.Equal(t, 1, stats.RatingDistribution[5])
	assert.Equal(t, 1, stats.RatingDistribution[4])
	assert.Equal(t, 1, stats.RatingDistribution[3])
	// Ratings below 1 clamp into the lowest bucket.
	assert.Equal(t, 1, stats.RatingDistribution[1])
	assert.InDelta(t, 50.0, stats.VerifiedPercentage, 0.001)
}

func TestComputeReviewStatisticsEmpty(t *testing.T) {
	stats := ComputeReviewStatistics(nil)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Zero(t, stats.AverageRating)
	assert.Equal(t, 0, stats.RatingDistribution[5])
}

func TestCompareWithoutAI(t *testing.T) {
	analyzer := NewReviewAnalyzer(&stubCompletion{Err: errStubDown}, arbor.NewLogger())
	products := []models.Product{
		{ID: "a", Title: "A", Reviews: []models.Review{{Rating: 5}}},
		{ID: "b", Title: "B", Reviews: []models.Review{{Rating: 2}}},
	}

	comparison := analyzer.Compare(context.Background(), products)

	require.Len(t, comparison.Entries, 2)
	assert.Equal(t, "a", comparison.Entries[0].ProductID)
	assert.Equal(t, models.SentimentPositive, comparison.Entries[0].Analysis.OverallSentiment)
	assert.Equal(t, models.SentimentNegative, comparison.Entries[1].Analysis.OverallSentiment)
	// Narrative stays empty when the model is unavailable.
	assert.Empty(t, comparison.Summary)
	assert.Empty(t, comparison.Recommendation)
}
