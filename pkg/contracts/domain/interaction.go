package domain

// SalesMethod represents the canonical outreach method used for an interaction
type SalesMethod string

const (
	MethodEmail        SalesMethod = "email"
	MethodCall         SalesMethod = "call"
	MethodEmailAndCall SalesMethod = "email_and_call"
)

// AllSalesMethods returns the canonical methods in stable display order
func AllSalesMethods() []SalesMethod {
	return []SalesMethod{MethodEmail, MethodCall, MethodEmailAndCall}
}

// IsValid reports whether the method is one of the canonical values
func (m SalesMethod) IsValid() bool {
	switch m {
	case MethodEmail, MethodCall, MethodEmailAndCall:
		return true
	}
	return false
}

// String returns the canonical string representation
func (m SalesMethod) String() string {
	return string(m)
}

// Interaction represents one row of the sales interaction dataset.
// RevenueMissing tracks nulls in the raw input; after cleaning it is
// always false and Revenue holds either the recorded or imputed value.
type Interaction struct {
	Week            int         `json:"week" csv:"week" validate:"min=0"`
	SalesMethod     SalesMethod `json:"sales_method" csv:"sales_method" validate:"required"`
	CustomerID      string      `json:"customer_id" csv:"customer_id" validate:"required"`
	NbSold          int         `json:"nb_sold" csv:"nb_sold" validate:"min=0"`
	Revenue         float64     `json:"revenue" csv:"revenue" validate:"min=0"`
	RevenueMissing  bool        `json:"revenue_missing,omitempty" csv:"-"`
	RevenueImputed  bool        `json:"revenue_imputed,omitempty" csv:"-"`
	YearsAsCustomer int         `json:"years_as_customer" csv:"years_as_customer" validate:"min=0"`
	NbSiteVisits    int         `json:"nb_site_visits" csv:"nb_site_visits" validate:"min=0"`
	State           string      `json:"state" csv:"state" validate:"required"`
}

// Key returns a value identical across all columns for duplicate detection.
// RevenueMissing participates so a null-revenue row never collapses into a
// zero-revenue row.
type InteractionKey struct {
	Week            int
	SalesMethod     SalesMethod
	CustomerID      string
	NbSold          int
	Revenue         float64
	RevenueMissing  bool
	YearsAsCustomer int
	NbSiteVisits    int
	State           string
}

// Key derives the full-row identity used for exact-duplicate removal
func (i Interaction) Key() InteractionKey {
	return InteractionKey{
		Week:            i.Week,
		SalesMethod:     i.SalesMethod,
		CustomerID:      i.CustomerID,
		NbSold:          i.NbSold,
		Revenue:         i.Revenue,
		RevenueMissing:  i.RevenueMissing,
		YearsAsCustomer: i.YearsAsCustomer,
		NbSiteVisits:    i.NbSiteVisits,
		State:           i.State,
	}
}

// MethodAggregate holds grouped summary statistics for one sales method
type MethodAggregate struct {
	Method           SalesMethod `json:"sales_method" csv:"SalesMethod"`
	Count            int         `json:"count" csv:"Count"`
	TotalRevenue     float64     `json:"total_revenue" csv:"TotalRevenue"`
	MeanRevenue      float64     `json:"mean_revenue" csv:"MeanRevenue"`
	MeanNbSold       float64     `json:"mean_nb_sold" csv:"MeanNbSold"`
	MeanNbSiteVisits float64     `json:"mean_nb_site_visits" csv:"MeanNbSiteVisits"`
}

// MethodWeekAggregate holds grouped summary statistics for one (method, week) pair
type MethodWeekAggregate struct {
	Method           SalesMethod `json:"sales_method" csv:"SalesMethod"`
	Week             int         `json:"week" csv:"Week"`
	Count            int         `json:"count" csv:"Count"`
	TotalRevenue     float64     `json:"total_revenue" csv:"TotalRevenue"`
	MeanRevenue      float64     `json:"mean_revenue" csv:"MeanRevenue"`
	MeanNbSold       float64     `json:"mean_nb_sold" csv:"MeanNbSold"`
	MeanNbSiteVisits float64     `json:"mean_nb_site_visits" csv:"MeanNbSiteVisits"`
}

// MethodStateAggregate holds grouped summary statistics for one (method, state) pair
type MethodStateAggregate struct {
	Method           SalesMethod `json:"sales_method" csv:"SalesMethod"`
	State            string      `json:"state" csv:"State"`
	Count            int         `json:"count" csv:"Count"`
	TotalRevenue     float64     `json:"total_revenue" csv:"TotalRevenue"`
	MeanRevenue      float64     `json:"mean_revenue" csv:"MeanRevenue"`
	MeanNbSold       float64     `json:"mean_nb_sold" csv:"MeanNbSold"`
	MeanNbSiteVisits float64     `json:"mean_nb_site_visits" csv:"MeanNbSiteVisits"`
}
