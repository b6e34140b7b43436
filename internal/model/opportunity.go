package model

// BusinessOpportunity describes a recycling business idea.
type BusinessOpportunity struct {
	ID             string     `json:"id" yaml:"id" db:"id"`
	Title          string     `json:"title" yaml:"title" db:"title"`
	Description    string     `json:"description" yaml:"description" db:"description"`
	Category       string     `json:"category" yaml:"category" db:"category"`
	Investment     *float64   `json:"investment,omitempty" yaml:"investment" db:"investment"`
	Income         PriceRange `json:"potentialIncome" yaml:"potentialIncome"`
	Challenges     string     `json:"challenges" yaml:"challenges" db:"challenges"`
	Implementation string     `json:"implementation" yaml:"implementation" db:"implementation"`
	MediaURL       string     `json:"mediaUrl,omitempty" yaml:"mediaUrl" db:"media_url"`
}

func (o BusinessOpportunity) ListingName() string        { return o.Title }
func (o BusinessOpportunity) ListingDescription() string { return o.Description }
func (o BusinessOpportunity) ListingCategory() string    { return o.Category }

// ListingPrice orders opportunities by investment amount; opportunities
// without a stated investment report no price.
func (o BusinessOpportunity) ListingPrice() (float64, bool) {
	if o.Investment == nil {
		return 0, false
	}
	return *o.Investment, true
}
