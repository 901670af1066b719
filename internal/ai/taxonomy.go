package ai

// Bucket is one fixed entry of a taxonomy. Description doubles as
// classifier guidance.
type Bucket struct {
	ID          string
	Name        string
	Description string
}

// Taxonomy is a closed enumeration of buckets. Taxonomies are immutable
// at request time: classification never invents a bucket, and anything
// outside the enumeration lands in CatchAll.
type Taxonomy struct {
	ID       string
	CatchAll string
	Scored   bool
	Buckets  []Bucket
}

func (t Taxonomy) Contains(id string) bool {
	for _, b := range t.Buckets {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (t Taxonomy) BucketName(id string) string {
	for _, b := range t.Buckets {
		if b.ID == id {
			return b.Name
		}
	}
	return id
}

// PainPointTaxonomy clusters user queries into the 5 operational
// pain-point categories.
var PainPointTaxonomy = Taxonomy{
	ID:       "pain_point",
	CatchAll: "general",
	Buckets: []Bucket{
		{ID: "general", Name: "General branch hours / orders / pool questions", Description: "Branch hours, locations, order status, general pool or landscape questions"},
		{ID: "pump_recommendations", Name: "Pump recommendations – product discovery", Description: "Customer looking for pump suggestions or product discovery"},
		{ID: "filter_parts", Name: "Replacement filter parts – maintenance needs", Description: "Customer needs specific replacement parts for maintenance"},
		{ID: "stock_availability", Name: "Stock availability by part number – inventory checks", Description: "Stock or availability checks by part number"},
		{ID: "technical_support", Name: "DE filter assembly – technical support", Description: "Technical help, installation guidance, troubleshooting"},
	},
}

// QueryCategoryTaxonomy assigns each session exactly one of 10 intent
// buckets, distinct from the pain-point clusters.
var QueryCategoryTaxonomy = Taxonomy{
	ID:       "query_category",
	CatchAll: "out_of_scope",
	Buckets: []Bucket{
		{ID: "order_status", Name: "Order status", Description: "Tracking, delivery, or status of an existing order"},
		{ID: "product_discovery", Name: "Product discovery", Description: "Looking for product recommendations or comparisons"},
		{ID: "parts_lookup", Name: "Parts lookup", Description: "Finding a specific replacement part or compatible component"},
		{ID: "stock_check", Name: "Stock check", Description: "Availability of a known item, usually by part number"},
		{ID: "technical_support", Name: "Technical support", Description: "Installation, assembly, or troubleshooting help"},
		{ID: "pricing", Name: "Pricing", Description: "Price, quote, or discount questions"},
		{ID: "account_billing", Name: "Account and billing", Description: "Account access, invoices, payment issues"},
		{ID: "branch_info", Name: "Branch information", Description: "Branch hours, locations, contact details"},
		{ID: "returns_warranty", Name: "Returns and warranty", Description: "Returns, exchanges, warranty claims"},
		{ID: "out_of_scope", Name: "Out of scope / general", Description: "Anything that fits none of the other categories"},
	},
}

// SentimentTaxonomy is scored: the classifier returns a continuous
// polarity in [-1, 1] and the band is derived from the score.
var SentimentTaxonomy = Taxonomy{
	ID:       "sentiment",
	CatchAll: "neutral",
	Scored:   true,
	Buckets: []Bucket{
		{ID: "positive", Name: "Positive", Description: "Score above 0.05"},
		{ID: "neutral", Name: "Neutral", Description: "Score between -0.05 and 0.05 inclusive"},
		{ID: "negative", Name: "Negative", Description: "Score below -0.05"},
	},
}

// SentimentBand maps a continuous score to its fixed band.
func SentimentBand(score float64) string {
	switch {
	case score > 0.05:
		return "positive"
	case score < -0.05:
		return "negative"
	default:
		return "neutral"
	}
}
