package form

import "github.com/timhorst/horsthomes/internal/model"

// LoginSchema validates the sign-in form.
func LoginSchema() Schema {
	return Schema{
		"identifier": {Label: "Username or email", Required: true},
		"password":   {Label: "Password", Required: true},
	}
}

// BlogPostSchema validates the blog authoring form.
func BlogPostSchema() Schema {
	return Schema{
		"title":     {Label: "Title", Required: true, MinLength: 2},
		"content":   {Label: "Content", Required: true, MinLength: 10},
		"excerpt":   {Label: "Excerpt"},
		"category":  {Label: "Category", Kind: Select, Required: true, Options: model.BlogCategories},
		"author":    {Label: "Author name", Required: true, MinLength: 2},
		"read_time": {Label: "Read time", Required: true},
	}
}

// PortfolioProjectSchema validates the portfolio authoring form.
func PortfolioProjectSchema() Schema {
	return Schema{
		"title":               {Label: "Project name", Required: true, MinLength: 2},
		"description":         {Label: "Description", Required: true, MinLength: 10},
		"category":            {Label: "Category", Kind: Select, Required: true, Options: model.PortfolioCategories},
		"location":            {Label: "Location", Required: true, MinLength: 2},
		"date":                {Label: "Date", Required: true},
		"status":              {Label: "Status", Kind: Select, Required: true, Options: model.PortfolioStatuses},
		"testimonial_content": {Label: "Testimonial content", Required: true, MinLength: 10},
		"testimonial_author":  {Label: "Testimonial author", Required: true, MinLength: 2},
		"testimonial_role":    {Label: "Testimonial role"},
	}
}

// ProductSchema validates the product authoring form.
func ProductSchema() Schema {
	return Schema{
		"title":       {Label: "Title", Required: true, MinLength: 2},
		"description": {Label: "Description"},
		"price":       {Label: "Price", Kind: Number, Required: true, HasMin: true, Min: 0},
		"category":    {Label: "Category", Kind: Select, Required: true, Options: model.ProductCategories},
		"in_stock":    {Label: "In stock", Kind: Bool},
	}
}

// ProductVariantSchema validates a single product variant row.
func ProductVariantSchema() Schema {
	return Schema{
		"name":  {Label: "Variant name", Required: true},
		"price": {Label: "Variant price", Kind: Number, Required: true, HasMin: true, Min: 0},
		"stock": {Label: "Stock", Kind: Integer, Required: true, HasMin: true, Min: 0},
	}
}

// ContactSchema validates the contact form.
func ContactSchema() Schema {
	return Schema{
		"name":    {Label: "Name", Required: true, MinLength: 2},
		"email":   {Label: "Email", Kind: Email, Required: true},
		"phone":   {Label: "Phone"},
		"message": {Label: "Message", Required: true, MinLength: 10},
	}
}

// QuoteSchema validates the quote-request form.
func QuoteSchema() Schema {
	return Schema{
		"name":         {Label: "Name", Required: true, MinLength: 2},
		"email":        {Label: "Email", Kind: Email, Required: true},
		"phone":        {Label: "Phone"},
		"project_type": {Label: "Project type", Required: true},
		"timeline":     {Label: "Timeline", Required: true},
		"budget":       {Label: "Budget range", Required: true},
		"message":      {Label: "Message", Required: true, MinLength: 10},
	}
}
