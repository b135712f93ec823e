package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/timhorst/horsthomes/internal/model"
)

// CreateProductParams holds the fields for a new product.
type CreateProductParams struct {
	Title       string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	InStock     bool
	Variants    []model.ProductVariant
	Tags        []string
	CreatedBy   int64
}

// CreateProduct inserts a product and returns it with its assigned id.
func (q *Queries) CreateProduct(ctx context.Context, p CreateProductParams) (model.Product, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO products (title, description, category, price, image_url,
		                       in_stock, variants, tags, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Category, p.Price, p.ImageURL,
		boolToInt(p.InStock), marshalJSON(p.Variants), marshalJSON(p.Tags),
		p.CreatedBy, time.Now().UTC())
	if err != nil {
		return model.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, err
	}
	return q.GetProduct(ctx, id)
}

// GetProduct returns the product with the given id.
func (q *Queries) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	row := q.db.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, id)
	return scanProduct(row)
}

// ListProducts returns all products, newest first.
func (q *Queries) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx, selectProduct+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// DeleteProduct removes a product. Returns the number of rows deleted.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListProductImageURLs returns every image URL referenced by a product.
func (q *Queries) ListProductImageURLs(ctx context.Context) ([]string, error) {
	return q.listURLs(ctx, `SELECT image_url FROM products`)
}

const selectProduct = `
SELECT id, title, description, category, price, image_url, in_stock,
       variants, tags, created_by, created_at
FROM products`

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var inStock int
	var variants, tags string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price,
		&p.ImageURL, &inStock, &variants, &tags, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return model.Product{}, err
	}
	p.InStock = inStock != 0
	p.Tags = unmarshalStrings(tags)
	if variants != "" {
		_ = json.Unmarshal([]byte(variants), &p.Variants)
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
