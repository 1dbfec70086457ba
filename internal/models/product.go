package models

// Review is a single customer review attached to a product.
type Review struct {
	ID       string  `json:"id" yaml:"id"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Author   string  `json:"author,omitempty" yaml:"author,omitempty"`
	Date     string  `json:"date,omitempty" yaml:"date,omitempty"`
	Verified bool    `json:"verified" yaml:"verified"`
}

// Product is a catalog item. Listing-level fields are always populated;
// detail-level fields (Description, Reviews, Specifications, Pros, Cons)
// are filled by detail lookups. Products are treated as immutable once
// returned from a provider; enrichment works on copies.
type Product struct {
	ID           string   `json:"id" yaml:"id" badgerhold:"key"`
	Title        string   `json:"title" yaml:"title"`
	Brand        string   `json:"brand" yaml:"brand"`
	Category     string   `json:"category" yaml:"category"`
	ProductType  string   `json:"product_type" yaml:"product_type"`
	Price        float64  `json:"price" yaml:"price"`
	Currency     string   `json:"currency" yaml:"currency"`
	Rating       float64  `json:"rating" yaml:"rating"`
	ReviewCount  int      `json:"review_count" yaml:"review_count"`
	Features     []string `json:"features,omitempty" yaml:"features,omitempty"`
	Availability string   `json:"availability,omitempty" yaml:"availability,omitempty"`
	Source       string   `json:"source,omitempty" yaml:"source,omitempty"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty"`

	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Reviews        []Review          `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	Pros           []string          `json:"pros,omitempty" yaml:"pros,omitempty"`
	Cons           []string          `json:"cons,omitempty" yaml:"cons,omitempty"`
}

// Clone returns a deep copy so enrichment never mutates provider state.
func (p Product) Clone() Product {
	out := p
	if p.Features != nil {
		out.Features = append([]string(nil), p.Features...)
	}
	if p.Reviews != nil {
		out.Reviews = append([]Review(nil), p.Reviews...)
	}
	if p.Specifications != nil {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	if p.Pros != nil {
		out.Pros = append([]string(nil), p.Pros...)
	}
	if p.Cons != nil {
		out.Cons = append([]string(nil), p.Cons...)
	}
	return out
}
