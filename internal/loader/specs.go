package loader

import "github.com/jlowell/salesdw/internal/entity"

// One Spec per source extract. Column names follow the conformed raw
// schema, not the source systems' internal names; extract jobs rename on
// export.

var customerProfileSpec = Spec[entity.RawCustomerProfile]{
	Entity:  "customer_profiles",
	Columns: []string{"customer_id", "customer_key", "first_name", "last_name", "marital_status", "gender", "create_date"},
	Build: func(row []string, idx HeaderIndex) entity.RawCustomerProfile {
		return entity.RawCustomerProfile{
			ID:            asInt4(cell(row, idx, "customer_id")),
			Key:           asText(cell(row, idx, "customer_key")),
			FirstName:     asText(cell(row, idx, "first_name")),
			LastName:      asText(cell(row, idx, "last_name")),
			MaritalStatus: asText(cell(row, idx, "marital_status")),
			Gender:        asText(cell(row, idx, "gender")),
			CreateDate:    asDate(cell(row, idx, "create_date")),
		}
	},
}

var productCatalogSpec = Spec[entity.RawProductCatalog]{
	Entity:  "product_catalog",
	Columns: []string{"product_id", "product_key", "product_name", "cost", "product_line", "start_date", "end_date"},
	Build: func(row []string, idx HeaderIndex) entity.RawProductCatalog {
		return entity.RawProductCatalog{
			ID:        asInt4(cell(row, idx, "product_id")),
			Key:       asText(cell(row, idx, "product_key")),
			Name:      asText(cell(row, idx, "product_name")),
			Cost:      asDecimal(cell(row, idx, "cost")),
			Line:      asText(cell(row, idx, "product_line")),
			StartDate: asDate(cell(row, idx, "start_date")),
			EndDate:   asDate(cell(row, idx, "end_date")),
		}
	},
}

var salesItemSpec = Spec[entity.RawSalesItem]{
	Entity:  "sales_items",
	Columns: []string{"order_number", "product_key", "customer_id", "order_date", "ship_date", "due_date", "sales_amount", "quantity", "price"},
	Build: func(row []string, idx HeaderIndex) entity.RawSalesItem {
		return entity.RawSalesItem{
			OrderNumber: asText(cell(row, idx, "order_number")),
			ProductKey:  asText(cell(row, idx, "product_key")),
			CustomerID:  asInt4(cell(row, idx, "customer_id")),
			OrderDate:   asInt4(cell(row, idx, "order_date")),
			ShipDate:    asInt4(cell(row, idx, "ship_date")),
			DueDate:     asInt4(cell(row, idx, "due_date")),
			Amount:      asDecimal(cell(row, idx, "sales_amount")),
			Quantity:    asInt4(cell(row, idx, "quantity")),
			Price:       asDecimal(cell(row, idx, "price")),
		}
	},
}

var demographicsSpec = Spec[entity.RawDemographics]{
	Entity:  "customer_demographics",
	Columns: []string{"customer_id", "birth_date", "gender"},
	Build: func(row []string, idx HeaderIndex) entity.RawDemographics {
		return entity.RawDemographics{
			ID:        asText(cell(row, idx, "customer_id")),
			BirthDate: asDate(cell(row, idx, "birth_date")),
			Gender:    asText(cell(row, idx, "gender")),
		}
	},
}

var locationSpec = Spec[entity.RawLocation]{
	Entity:  "customer_locations",
	Columns: []string{"customer_id", "country"},
	Build: func(row []string, idx HeaderIndex) entity.RawLocation {
		return entity.RawLocation{
			ID:      asText(cell(row, idx, "customer_id")),
			Country: asText(cell(row, idx, "country")),
		}
	},
}

var categorySpec = Spec[entity.RawCategory]{
	Entity:  "product_categories",
	Columns: []string{"category_id", "category", "subcategory", "maintenance"},
	Build: func(row []string, idx HeaderIndex) entity.RawCategory {
		return entity.RawCategory{
			ID:          asText(cell(row, idx, "category_id")),
			Category:    asText(cell(row, idx, "category")),
			Subcategory: asText(cell(row, idx, "subcategory")),
			Maintenance: asText(cell(row, idx, "maintenance")),
		}
	},
}
