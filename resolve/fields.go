package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"orderenhancer/internal/sanitize"
	"orderenhancer/order"
)

// Canonical field names with derivation rules.
const (
	FieldOrderID          = "Order ID"
	FieldOrderDate        = "Order Date"
	FieldOrderName        = "Order Name"
	FieldCustomerName     = "Customer Name"
	FieldCustomerEmail    = "Customer Email"
	FieldPhoneNumber      = "Phone Number"
	FieldAlternativePhone = "Alternative Phone"
	FieldOrderComments    = "Order Comments"
	FieldItemDetails      = "Item Details"
)

const (
	GuestCustomer  = "Guest Customer"
	UnknownProduct = "Unknown Product"
	UnknownSKU     = "N/A"
	DefaultQty     = "1"

	AlternativePhoneField = "custom_field_1"
	OrderCommentsField    = "custom_field_2"
)

var (
	incrementIDFields = []string{"increment_id", "Increment Id", "Order ID"}
	entityIDFields    = []string{"entity_id", "ID"}

	directNameFields = []string{"enhanced_customer_name", "order_name", "full_customer_name"}

	phoneFallbackFields = []string{"billing_telephone", "Phone Number", "customer_phone", "telephone", "shipping_telephone"}

	productNameFields = []string{"product_name", "name", "item_name"}
	skuFields         = []string{"sku", "product_sku"}
	qtyFields         = []string{"qty_ordered", "qty", "quantity"}

	phoneStrip   = regexp.MustCompile(`[^\d+\s-]`)
	mobileNumber = regexp.MustCompile(`^01[0-9]{9}$`)

	commentEscaper = strings.NewReplacer(`"`, `\"`, `'`, `\'`)
)

// OrderReference returns the order number of a row: an increment id when
// present, otherwise an entity id.
func OrderReference(row order.Row) string {
	if value, _ := row.FirstNonEmpty(incrementIDFields...); value != "" {
		return value
	}
	value, _ := row.FirstNonEmpty(entityIDFields...)
	return value
}

// NamePriority orders the address sources used to build a customer name.
type NamePriority string

const (
	BillingFirst  NamePriority = "billing_first"
	ShippingFirst NamePriority = "shipping_first"
	CustomerFirst NamePriority = "customer_first"
	BillingOnly   NamePriority = "billing_only"
	ShippingOnly  NamePriority = "shipping_only"
)

func NamePriorities() []string {
	return []string{string(BillingFirst), string(ShippingFirst), string(CustomerFirst), string(BillingOnly), string(ShippingOnly)}
}

type nameSource struct {
	first string
	last  string
}

var (
	billingName  = nameSource{first: "billing_firstname", last: "billing_lastname"}
	shippingName = nameSource{first: "shipping_firstname", last: "shipping_lastname"}
	customerName = nameSource{first: "customer_firstname", last: "customer_lastname"}
)

func (p NamePriority) sources() []nameSource {
	switch p {
	case ShippingFirst:
		return []nameSource{shippingName, billingName, customerName}
	case CustomerFirst:
		return []nameSource{customerName, billingName, shippingName}
	case BillingOnly:
		return []nameSource{billingName}
	case ShippingOnly:
		return []nameSource{shippingName}
	default:
		return []nameSource{billingName, shippingName, customerName}
	}
}

// ParseNamePriority accepts the configured priority names; empty means
// billing first.
func ParseNamePriority(value string) (NamePriority, error) {
	switch p := NamePriority(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return BillingFirst, nil
	case BillingFirst, ShippingFirst, CustomerFirst, BillingOnly, ShippingOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported name priority %q (supported: %s)", value, strings.Join(NamePriorities(), ", "))
	}
}

// isFirstNameSource reports whether a schema source carries only a first
// name and therefore cannot stand in for a full name.
func isFirstNameSource(source string) bool {
	for _, s := range []nameSource{billingName, shippingName, customerName} {
		if s.first == source {
			return true
		}
	}
	return false
}

// CustomerName builds a display name from a raw row. Direct full-name
// columns win unless they hold a formula or the guest placeholder; then
// first and last names are taken from the address sources in priority
// order. Rows without any usable name yield GuestCustomer.
func CustomerName(row order.Row, priority NamePriority) string {
	for _, field := range directNameFields {
		name := strings.TrimSpace(row.Get(field))
		if name != "" && !sanitize.IsFormula(name) && name != GuestCustomer {
			return name
		}
	}

	sources := priority.sources()
	firsts := make([]string, len(sources))
	lasts := make([]string, len(sources))
	for i, s := range sources {
		firsts[i] = s.first
		lasts[i] = s.last
	}
	first, _ := row.FirstNonEmpty(firsts...)
	last, _ := row.FirstNonEmpty(lasts...)

	full := strings.TrimSpace(first + " " + last)
	if full != "" && !sanitize.IsFormula(full) {
		return full
	}
	return GuestCustomer
}

// CleanPhone keeps digits, "+", spaces and "-".
func CleanPhone(phone string) string {
	phone = phoneStrip.ReplaceAllString(phone, "")
	if mobileNumber.MatchString(phone) {
		return phone
	}
	return strings.TrimSpace(phone)
}

// FlattenComment folds long free text onto one line, escapes quotes and
// neutralizes formula prefixes.
func FlattenComment(comment string) string {
	comment = sanitize.Flatten(comment)
	if comment == "" {
		return ""
	}
	comment = commentEscaper.Replace(comment)
	return sanitize.GuardFormula(comment)
}

// ItemDetails formats "<name> (SKU: <sku>, Qty: <qty>)" from raw item
// columns. It returns "" when neither a name nor a SKU is present.
func ItemDetails(row order.Row) string {
	name, _ := row.FirstNonEmpty(productNameFields...)
	sku, _ := row.FirstNonEmpty(skuFields...)
	qty, _ := row.FirstNonEmpty(qtyFields...)
	if name == "" && sku == "" {
		return ""
	}
	return fmt.Sprintf("%s (SKU: %s, Qty: %s)",
		fallback(name, UnknownProduct),
		fallback(sku, UnknownSKU),
		fallback(qty, DefaultQty),
	)
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
