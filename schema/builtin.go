package schema

import "sort"

const (
	ExcelExportName  = "excel_export"
	CSVProcessorName = "csv_processor"
	AdminGridName    = "admin_grid"
)

// ExcelExport is the schema applied to admin grid CSV/XML exports.
func ExcelExport() Schema {
	return Schema{
		Name: ExcelExportName,
		Columns: []Column{
			{Name: "Order ID", Sources: []string{"Order ID", "increment_id", "Increment Id", "entity_id"}},
			{Name: "Order Date", Sources: []string{"Order Date", "created_at", "Created At"}},
			{Name: "Order Name", Sources: []string{"Order Name", "enhanced_customer_name", "order_name", "full_customer_name", "billing_firstname", "shipping_firstname"}},
			{Name: "Customer Email", Sources: []string{"Customer Email", "customer_email"}},
			{Name: "Phone Number", Sources: []string{"Phone Number", "phone_number", "billing_telephone", "shipping_telephone"}},
			{Name: "Alternative Phone", Sources: []string{"Alternative Phone", "alternative_phone"}},
			{Name: "Order Comments", Sources: []string{"Order Comments", "customer_note"}},
			{Name: "Order Status", Sources: []string{"Order Status", "status", "Status"}},
			{Name: "Governorate", Sources: []string{"Governorate", "governorate", "billing_region", "shipping_region"}},
			{Name: "City", Sources: []string{"City", "city", "billing_city", "shipping_city"}},
			{Name: "Street Address", Sources: []string{"Street Address", "street_address", "billing_street", "shipping_street"}},
			{Name: "Total Quantity Ordered", Sources: []string{"Total Quantity Ordered", "total_qty_ordered"}},
			{Name: "Item Details", Sources: []string{"Item Details", "item_details"}},
			{Name: "Item Price", Sources: []string{"Item Price", "item_prices"}},
			{Name: "Subtotal", Sources: []string{"Subtotal", "subtotal", "items_subtotal"}},
			{Name: "Shipping Amount", Sources: []string{"Shipping Amount", "shipping_and_handling", "Shipping and Handling"}},
			{Name: "Discount Amount", Sources: []string{"Discount Amount", "discount_amount"}},
			{Name: "Grand Total", Sources: []string{"Grand Total", "grand_total"}},
		},
	}
}

// CSVProcessor is the schema used when post-processing exported files on
// disk. It carries "Customer Name" instead of "Order Name" and has no
// "Order ID" column.
func CSVProcessor() Schema {
	return Schema{
		Name: CSVProcessorName,
		Columns: []Column{
			{Name: "Order Date", Sources: []string{"Order Date", "created_at", "Created At"}},
			{Name: "Customer Name", Sources: []string{"Customer Name", "customer_name", "enhanced_customer_name", "billing_customer_name"}},
			{Name: "Customer Email", Sources: []string{"Customer Email", "customer_email", "Customer Email Address"}},
			{Name: "Phone Number", Sources: []string{"Phone Number", "billing_telephone", "Customer Phone"}},
			{Name: "Alternative Phone", Sources: []string{"Alternative Phone", "alternative_phone"}},
			{Name: "Order Comments", Sources: []string{"Order Comments", "customer_note"}},
			{Name: "Order Status", Sources: []string{"Order Status", "status", "Status"}},
			{Name: "Governorate", Sources: []string{"Region/Governorate/Province", "Governorate", "billing_region"}},
			{Name: "City", Sources: []string{"City", "billing_city"}},
			{Name: "Street Address", Sources: []string{"Street Address", "billing_street"}},
			{Name: "Total Quantity Ordered", Sources: []string{"Total Quantity Ordered", "total_qty_ordered"}},
			{Name: "Item Details", Sources: []string{"Item Details", "item_details"}},
			{Name: "Item Price", Sources: []string{"Item Price", "item_prices"}},
			{Name: "Subtotal", Sources: []string{"Subtotal", "subtotal", "items_subtotal"}},
			{Name: "Shipping Amount", Sources: []string{"Shipping Amount", "shipping_and_handling", "Shipping and Handling"}},
			{Name: "Discount Amount", Sources: []string{"Discount Amount", "discount_amount"}},
			{Name: "Grand Total", Sources: []string{"Grand Total", "grand_total"}},
		},
	}
}

// AdminGrid is the column set the admin order grid exposes.
func AdminGrid() Schema {
	return Schema{
		Name: AdminGridName,
		Columns: []Column{
			{Name: "Order Date", Sources: []string{"Order Date", "created_at", "Created At"}},
			{Name: "Order Name", Sources: []string{"Order Name", "order_name", "enhanced_customer_name", "billing_firstname"}},
			{Name: "Customer Email", Sources: []string{"Customer Email", "customer_email"}},
			{Name: "Phone Number", Sources: []string{"Phone Number", "phone_number", "billing_telephone"}},
			{Name: "Alternative Phone", Sources: []string{"Alternative Phone", "alternative_phone"}},
			{Name: "Order Comments", Sources: []string{"Order Comments", "customer_note"}},
			{Name: "Order Status", Sources: []string{"Order Status", "status"}},
			{Name: "Governorate", Sources: []string{"Governorate", "governorate", "billing_region"}},
			{Name: "City", Sources: []string{"City", "city", "billing_city"}},
			{Name: "Street Address", Sources: []string{"Street Address", "street_address", "billing_street"}},
			{Name: "Total Quantity Ordered", Sources: []string{"Total Quantity Ordered", "total_qty_ordered"}},
			{Name: "Item Details", Sources: []string{"Item Details", "item_details"}},
			{Name: "Item Price", Sources: []string{"Item Price", "item_prices"}},
			{Name: "Subtotal", Sources: []string{"Subtotal", "items_subtotal"}},
			{Name: "Shipping Amount", Sources: []string{"Shipping Amount", "shipping_and_handling"}},
			{Name: "Discount Amount", Sources: []string{"Discount Amount", "discount_amount"}},
			{Name: "Grand Total", Sources: []string{"Grand Total", "grand_total"}},
		},
	}
}

var builtins = map[string]func() Schema{
	ExcelExportName:  ExcelExport,
	CSVProcessorName: CSVProcessor,
	AdminGridName:    AdminGrid,
}

// Builtin returns a fresh copy of a built-in schema.
func Builtin(name string) (Schema, bool) {
	build, ok := builtins[name]
	if !ok {
		return Schema{}, false
	}
	return build(), true
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
