package importer

import (
	"fmt"
	"orderenhancer/order"
	"strings"
)

// CustomFieldResult summarizes a custom field import.
type CustomFieldResult struct {
	RowsRead    int
	RowsMapped  int
	RowsSkipped int
	Fields      []order.CustomField
}

// ImportCustomFields reads checkout custom fields from a CSV file with the
// columns order_ref, name, billing_value and shipping_value. Rows without an
// order reference or field name are skipped.
func ImportCustomFields(path string) (*CustomFieldResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	result := &CustomFieldResult{Fields: make([]order.CustomField, 0, len(records))}
	for _, record := range records {
		result.RowsRead++
		field, ok, mapErr := mapCustomField(record)
		if mapErr != nil {
			return nil, mapErr
		}
		if !ok {
			result.RowsSkipped++
			continue
		}
		result.RowsMapped++
		result.Fields = append(result.Fields, field)
	}

	return result, nil
}

func mapCustomField(record Record) (order.CustomField, bool, error) {
	field := order.CustomField{
		OrderRef:      record.Get("order_ref", "increment_id", "order_id"),
		Name:          record.Get("name", "field", "field_name"),
		BillingValue:  record.Get("billing_value", "billing"),
		ShippingValue: record.Get("shipping_value", "shipping"),
	}
	if field.OrderRef == "" || field.Name == "" {
		return order.CustomField{}, false, nil
	}
	if strings.ContainsAny(field.Name, " \t") {
		return order.CustomField{}, false, fmt.Errorf("row %d: invalid custom field name %q", record.RowNumber, field.Name)
	}
	return field, true, nil
}
