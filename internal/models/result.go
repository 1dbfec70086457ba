package models

import "errors"

// Input validation errors. These are returned before any pipeline work
// starts; everything that fails later is folded into an error Result.
var (
	ErrEmptyQuery           = errors.New("query is empty")
	ErrEmptyProductID       = errors.New("product id is empty")
	ErrInsufficientProducts = errors.New("at least two products are required for comparison")
	ErrProductNotFound      = errors.New("product not found")
	ErrCompletionDisabled   = errors.New("completion provider is disabled")
)

// ResultKind discriminates the assistant's response payloads.
type ResultKind string

const (
	KindRecommendations ResultKind = "product_recommendations"
	KindNoProducts      ResultKind = "no_products_found"
	KindComparison      ResultKind = "product_comparison"
	KindDetails         ResultKind = "detailed_product_info"
	KindFollowUp        ResultKind = "follow_up_response"
	KindError           ResultKind = "error"
)

// ChatTurn is one prior exchange in the conversation, newest last.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the uniform response envelope for every assistant operation.
// Kind decides which optional fields are populated.
type Result struct {
	Kind     ResultKind `json:"type"`
	Response string     `json:"response,omitempty"`
	Message  string     `json:"message,omitempty"`

	Products           []EnhancedProduct `json:"products,omitempty"`
	Product            *Product          `json:"product,omitempty"`
	AdditionalProducts []Product         `json:"additional_products,omitempty"`
	TotalFound         int               `json:"total_found,omitempty"`
	Requirement        *Requirement      `json:"requirement,omitempty"`

	ReviewComparison *ReviewComparison `json:"review_comparison,omitempty"`
	DealComparison   *DealComparison   `json:"deal_comparison,omitempty"`
	DealSummary      *DealSummary      `json:"deal_summary,omitempty"`
	ReviewAnalysis   *ReviewAnalysis   `json:"review_analysis,omitempty"`
	DealAnalysis     *DealAnalysis     `json:"deal_analysis,omitempty"`

	Suggestions []string `json:"suggestions,omitempty"`
	Intent      string   `json:"intent,omitempty"`
	Err         string   `json:"error,omitempty"`
}

// ErrorResult builds the uniform error envelope.
func ErrorResult(message string, err error) *Result {
	r := &Result{
		Kind:    KindError,
		Message: message,
	}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// Progress stages emitted by the streaming search variant, in order.
const (
	StageInterpreting = "interpreting"
	StageSearching    = "searching"
	StageFound        = "found"
	StageAnalyzing    = "analyzing"
	StageSynthesizing = "synthesizing"
	StageComplete     = "complete"
)

// ProgressEvent is one step of a streaming search. The terminal event
// has Stage "complete" and carries the full Result.
type ProgressEvent struct {
	Stage   string  `json:"stage"`
	Message string  `json:"message"`
	Payload any     `json:"payload,omitempty"`
	Result  *Result `json:"result,omitempty"`
}
