package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/cognicart/internal/models"
)

func TestSearchEmptyQuery(t *testing.T) {
	svc := newFallbackService(t)
	_, err := svc.Search(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, models.ErrEmptyQuery)
}

func TestSearchFallbackPipeline(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.Search(context.Background(), "laptop under 40000", nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.KindRecommendations, result.Kind)
	assert.NotEmpty(t, result.Response)
	require.NotNil(t, result.Requirement)
	assert.Equal(t, "laptop", result.Requirement.ProductType)

	// Only one laptop in the catalog survives the 40000 budget filter.
	require.Len(t, result.Products, 1)
	top := result.Products[0]
	assert.Equal(t, "prod_asus_vivobook15", top.ID)
	assert.Equal(t, 1, result.TotalFound)
	assert.Empty(t, result.AdditionalProducts)

	// Enrichment attaches both analyses even without a model.
	require.NotNil(t, top.ReviewAnalysis)
	assert.Equal(t, 100, top.ReviewAnalysis.Breakdown.Sum())
	require.NotNil(t, top.DealAnalysis)
	assert.GreaterOrEqual(t, top.DealAnalysis.DealScore, 0.0)
	assert.LessOrEqual(t, top.DealAnalysis.DealScore, 100.0)
	assert.NotEmpty(t, top.Reviews)
}

func TestSearchEnrichesOnlyTopProducts(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.Search(context.Background(), "smartphone", nil)
	require.NoError(t, err)
	require.Equal(t, models.KindRecommendations, result.Kind)

	assert.LessOrEqual(t, len(result.Products), 3)
	assert.Equal(t, result.TotalFound, len(result.Products)+len(result.AdditionalProducts))
	for _, p := range result.Products {
		assert.NotNil(t, p.ReviewAnalysis)
	}
	for _, p := range result.AdditionalProducts {
		assert.Empty(t, p.Reviews)
	}
}

func TestSearchNoMatches(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.Search(context.Background(), "submarine under 500", nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.KindNoProducts, result.Kind)
	assert.NotEmpty(t, result.Message)
	assert.NotEmpty(t, result.Suggestions)
}

func TestSearchStream(t *testing.T) {
	svc := newFallbackService(t)

	events, err := svc.SearchStream(context.Background(), "laptop under 40000", nil)
	require.NoError(t, err)

	var stages []string
	var final *models.Result
	for event := range events {
		stages = append(stages, event.Stage)
		if event.Stage == models.StageComplete {
			final = event.Result
		}
	}

	require.NotEmpty(t, stages)
	assert.Equal(t, models.StageInterpreting, stages[0])
	assert.Equal(t, models.StageSearching, stages[1])
	assert.Equal(t, models.StageComplete, stages[len(stages)-1])
	assert.Contains(t, stages, models.StageFound)
	assert.Contains(t, stages, models.StageSynthesizing)

	require.NotNil(t, final)
	assert.Equal(t, models.KindRecommendations, final.Kind)
}

func TestSearchStreamEmptyQuery(t *testing.T) {
	svc := newFallbackService(t)
	_, err := svc.SearchStream(context.Background(), "", nil)
	assert.ErrorIs(t, err, models.ErrEmptyQuery)
}

func TestCompareInsufficientProducts(t *testing.T) {
	svc := newFallbackService(t)
	ctx := context.Background()

	_, err := svc.Compare(ctx, []string{"prod_iphone_13"}, nil)
	assert.ErrorIs(t, err, models.ErrInsufficientProducts)

	// Unresolvable ids reduce the set below two as well.
	_, err = svc.Compare(ctx, []string{"prod_iphone_13", "prod_unknown", ""}, nil)
	assert.ErrorIs(t, err, models.ErrInsufficientProducts)

	_, err = svc.Compare(ctx, nil, nil)
	assert.ErrorIs(t, err, models.ErrInsufficientProducts)
}

func TestCompare(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.Compare(context.Background(), []string{"prod_iphone_13", "prod_samsung_m34"}, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.KindComparison, result.Kind)
	assert.NotEmpty(t, result.Response)

	require.NotNil(t, result.ReviewComparison)
	require.Len(t, result.ReviewComparison.Entries, 2)
	assert.Equal(t, "prod_iphone_13", result.ReviewComparison.Entries[0].ProductID)

	require.NotNil(t, result.DealComparison)
	require.Len(t, result.DealComparison.Entries, 2)
	assert.NotEmpty(t, result.DealComparison.BestOverallValue)
	// The cheaper phone is the budget pick.
	assert.Equal(t, "Samsung Galaxy M34 5G (Midnight Blue, 8GB, 128GB)", result.DealComparison.BestBudgetOption)
}

func TestCompareRecoversFromCatalogPanic(t *testing.T) {
	// A fault while resolving ids must come back as an error-kind
	// Result, never as an escaped panic.
	svc := newFallbackService(t)
	svc.catalog = &panickyDetailCatalog{svc.catalog}

	result, err := svc.Compare(context.Background(), []string{"prod_iphone_13", "prod_samsung_m34"}, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.KindError, result.Kind)
	assert.NotEmpty(t, result.Message)
}

func TestEnrichDetailTimeoutDegradesToListing(t *testing.T) {
	svc := newFallbackService(t)
	svc.catalog = &slowDetailCatalog{svc.catalog}
	svc.config.EnhanceTimeout = "20ms"

	listing := models.Product{ID: "prod_slow", Title: "Slow Fetch", Price: 15000, Rating: 4.3, ReviewCount: 800}
	enhanced := svc.enrichOne(context.Background(), listing)

	// The bounded wait expired, so the listing-level product carries
	// the enrichment instead of the synthesized detail payload.
	assert.Equal(t, "Slow Fetch", enhanced.Title)
	assert.Empty(t, enhanced.Reviews)
	require.NotNil(t, enhanced.ReviewAnalysis)
	assert.Equal(t, models.SentimentNeutral, enhanced.ReviewAnalysis.OverallSentiment)
	require.NotNil(t, enhanced.DealAnalysis)
}

func TestDetailsEmptyID(t *testing.T) {
	svc := newFallbackService(t)
	_, err := svc.Details(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, models.ErrEmptyProductID)
}

func TestDetailsNotFound(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.Details(context.Background(), "prod_missing", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.KindError, result.Kind)
	assert.Contains(t, result.Message, "prod_missing")
}

func TestDetails(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.Details(context.Background(), "prod_sony_whch720n", []string{"battery"})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.KindDetails, result.Kind)
	assert.NotEmpty(t, result.Response)
	require.NotNil(t, result.Product)
	assert.NotEmpty(t, result.Product.Reviews)
	assert.NotEmpty(t, result.Product.Specifications)
	require.NotNil(t, result.ReviewAnalysis)
	assert.Equal(t, 100, result.ReviewAnalysis.Breakdown.Sum())
	require.NotNil(t, result.DealAnalysis)
}

func TestFollowUpEmptyText(t *testing.T) {
	svc := newFallbackService(t)
	_, err := svc.FollowUp(context.Background(), "", &models.Result{})
	assert.ErrorIs(t, err, models.ErrEmptyQuery)
}

func TestFollowUpFallsBackToContextualReply(t *testing.T) {
	svc := newFallbackService(t)

	result, err := svc.FollowUp(context.Background(), "what do you think?", nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Classification is unavailable, so the generic reply applies.
	assert.Equal(t, models.KindFollowUp, result.Kind)
	assert.Equal(t, models.IntentClarifyRequirements, result.Intent)
	assert.NotEmpty(t, result.Response)
}

func TestFollowUpAskAboutDeals(t *testing.T) {
	completion := &scriptedCompletion{Responses: []string{
		`{"intent": "ask_about_deals", "entities": [], "requires_new_search": false, "confidence": "high"}`,
		`{"narrative": "Both picks are solid value right now."}`,
	}}
	svc := newScriptedService(t, completion)

	prior := &models.Result{
		Kind: models.KindRecommendations,
		Products: []models.EnhancedProduct{
			{
				Product:      models.Product{ID: "a", Title: "A", Price: 1000},
				DealAnalysis: &models.DealAnalysis{DealScore: 85, DealType: models.DealExcellentValue},
			},
			{
				Product:      models.Product{ID: "b", Title: "B", Price: 2000},
				DealAnalysis: &models.DealAnalysis{DealScore: 70, DealType: models.DealGoodValue},
			},
		},
	}

	result, err := svc.FollowUp(context.Background(), "are these good deals?", prior)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.KindFollowUp, result.Kind)
	assert.Equal(t, models.IntentAskAboutDeals, result.Intent)
	require.NotNil(t, result.DealSummary)
	assert.Equal(t, 2, result.DealSummary.TotalAnalyzed)
	assert.Equal(t, 1, result.DealSummary.ExcellentDeals)
	assert.Equal(t, "Both picks are solid value right now.", result.Response)
}

func TestFollowUpFindAlternatives(t *testing.T) {
	completion := &scriptedCompletion{Responses: []string{
		`{"intent": "find_alternatives", "entities": [], "requires_new_search": false, "confidence": "high"}`,
	}}
	svc := newScriptedService(t, completion)

	prior := &models.Result{
		Kind: models.KindRecommendations,
		Products: []models.EnhancedProduct{
			{Product: models.Product{ID: "prod_sony_whch720n", Title: "Sony WH-CH720N"}},
		},
	}

	result, err := svc.FollowUp(context.Background(), "show me something else", prior)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.KindFollowUp, result.Kind)
	assert.Equal(t, models.IntentFindAlternatives, result.Intent)
	require.NotEmpty(t, result.AdditionalProducts)
	for _, p := range result.AdditionalProducts {
		assert.NotEqual(t, "prod_sony_whch720n", p.ID)
	}
}

func TestPriorProductIDs(t *testing.T) {
	prior := &models.Result{
		Products: []models.EnhancedProduct{
			{Product: models.Product{ID: "a"}},
			{Product: models.Product{ID: "b"}},
			{Product: models.Product{ID: "c"}},
			{Product: models.Product{ID: "d"}},
		},
	}
	assert.Equal(t, []string{"a", "b", "c"}, priorProductIDs(prior, 3))
	assert.Empty(t, priorProductIDs(nil, 3))
}

func TestMatchPriorProduct(t *testing.T) {
	prior := &models.Result{
		Products: []models.EnhancedProduct{
			{Product: models.Product{ID: "laptop1", Title: "HP Pavilion 15", Brand: "HP"}},
			{Product: models.Product{ID: "laptop2", Title: "Lenovo IdeaPad 3", Brand: "Lenovo"}},
		},
	}

	assert.Equal(t, "laptop2", matchPriorProduct(prior, "tell me about the lenovo one", nil))
	assert.Equal(t, "laptop2", matchPriorProduct(prior, "more details", []string{"IdeaPad"}))
	// No match defaults to the top recommendation.
	assert.Equal(t, "laptop1", matchPriorProduct(prior, "tell me more", nil))
	assert.Equal(t, "", matchPriorProduct(nil, "anything", nil))
}
