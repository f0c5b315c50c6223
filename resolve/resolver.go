package resolve

import (
	"fmt"
	"strings"

	"orderenhancer/internal/sanitize"
	"orderenhancer/internal/timeutil"
	"orderenhancer/order"
	"orderenhancer/schema"
)

// CustomFieldSource supplies checkout custom field values that are not part
// of the exported file, keyed by order reference.
type CustomFieldSource interface {
	LookupCustomField(orderRef, name string) (string, bool, error)
}

type Options struct {
	NamePriority NamePriority
	// DateLayout is the Go layout for "Order Date". Empty leaves dates as
	// exported.
	DateLayout   string
	CustomFields CustomFieldSource
	Sanitizer    *sanitize.Sanitizer
}

// Resolver computes final canonical values for logical orders. It holds
// only immutable configuration and is safe for concurrent use when its
// CustomFieldSource is.
type Resolver struct {
	opts Options
}

func New(opts Options) *Resolver {
	if opts.NamePriority == "" {
		opts.NamePriority = BillingFirst
	}
	if opts.Sanitizer == nil {
		opts.Sanitizer = &sanitize.Sanitizer{}
	}
	return &Resolver{opts: opts}
}

// Resolve returns the value of one canonical column for row. The mapped
// source value is used when present; derivation rules fill in the rest.
func (r *Resolver) Resolve(entry schema.Entry, row order.Row) (string, error) {
	mapped := ""
	if !entry.Absent() {
		mapped = strings.TrimSpace(row.Get(entry.Source))
	}
	return r.Field(entry.Column.Name, mapped, entry.Source, row)
}

// Field applies the derivation rule for field to a mapped value. source is
// the header the value came from, empty when the column was absent.
func (r *Resolver) Field(field, mapped, source string, row order.Row) (string, error) {
	value := mapped

	switch field {
	case FieldOrderID:
		if value == "" {
			value = OrderReference(row)
		}

	case FieldOrderName, FieldCustomerName:
		if value == "" || value == GuestCustomer || isFirstNameSource(source) {
			value = CustomerName(row, r.opts.NamePriority)
		}

	case FieldPhoneNumber:
		if value == "" {
			value, _ = row.FirstNonEmpty(phoneFallbackFields...)
		}
		value = CleanPhone(value)

	case FieldAlternativePhone:
		if value == "" {
			custom, err := r.customField(row, AlternativePhoneField)
			if err != nil {
				return "", err
			}
			value = custom
		}

	case FieldOrderComments:
		if value == "" {
			custom, err := r.customField(row, OrderCommentsField)
			if err != nil {
				return "", err
			}
			value = custom
		}
		value = FlattenComment(value)

	case FieldItemDetails:
		if value == "" {
			value = ItemDetails(row)
		}

	case FieldOrderDate:
		if value != "" && r.opts.DateLayout != "" {
			value = timeutil.Reformat(value, r.opts.DateLayout)
		}

	case FieldCustomerEmail:
		return r.opts.Sanitizer.Email(value), nil
	}

	return r.opts.Sanitizer.Value(value), nil
}

func (r *Resolver) customField(row order.Row, name string) (string, error) {
	if r.opts.CustomFields == nil {
		return "", nil
	}
	ref := OrderReference(row)
	if ref == "" {
		return "", nil
	}
	value, ok, err := r.opts.CustomFields.LookupCustomField(ref, name)
	if err != nil {
		return "", fmt.Errorf("lookup custom field %s for order %s: %w", name, ref, err)
	}
	if !ok {
		return "", nil
	}
	return value, nil
}
