package order

// CustomField is one checkout custom field captured for an order. Billing
// and shipping forms may both carry the field.
type CustomField struct {
	OrderRef      string
	Name          string
	BillingValue  string
	ShippingValue string
}

// Value returns the shipping value when set, otherwise the billing value.
func (f CustomField) Value() string {
	if !IsBlank(f.ShippingValue) {
		return f.ShippingValue
	}
	return f.BillingValue
}

// Run is the recorded outcome of one export.
type Run struct {
	ID          int64
	RunID       string
	SourceFile  string
	OutputFile  string
	Format      string
	Schema      string
	Mode        string
	FieldErrors int
	Stats       Stats
}
