package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/towfit/towbar-filter-service/internal/catalog/dto"
	"github.com/towfit/towbar-filter-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB

	// productBaseURL is joined with a product slug to build its permalink.
	productBaseURL string
}

func NewPGRepository(db *sqlx.DB, productBaseURL string) *PGRepository {
	return &PGRepository{DB: db, productBaseURL: productBaseURL}
}

func (r *PGRepository) RootTerms(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	query := `SELECT id, parent_id, name, slug FROM terms WHERE parent_id IS NULL ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &terms, query)
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *PGRepository) ChildTerms(ctx context.Context, parentID int64) ([]model.Term, error) {
	var terms []model.Term
	query := `SELECT id, parent_id, name, slug FROM terms WHERE parent_id = $1 ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &terms, query, parentID)
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *PGRepository) TermByID(ctx context.Context, id int64) (*model.Term, error) {
	var term model.Term
	query := `SELECT id, parent_id, name, slug FROM terms WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &term, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &term, nil
}

func (r *PGRepository) FindProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	f := filters.WithDefaults()

	var products []model.Product

	conditions := []string{"p.status = :status"}
	args := map[string]interface{}{"status": f.Status}

	joins := ""
	if f.TermID != 0 {
		joins += " JOIN product_terms pt ON pt.product_id = p.id"
		conditions = append(conditions, "pt.term_id = :term_id")
		args["term_id"] = f.TermID
	}
	if f.RequireYears || f.YearStart != nil || f.YearEnd != nil {
		joins += " JOIN product_fields pf ON pf.product_id = p.id"
	}
	if f.RequireYears {
		conditions = append(conditions, "pf.year_start IS NOT NULL", "pf.year_end IS NOT NULL")
	}
	if f.YearStart != nil {
		conditions = append(conditions, "pf.year_start = :year_start")
		args["year_start"] = *f.YearStart
	}
	if f.YearEnd != nil {
		conditions = append(conditions, "pf.year_end = :year_end")
		args["year_end"] = *f.YearEnd
	}

	query := "SELECT p.id, p.name, p.slug, p.status, p.created_at FROM products p" + joins +
		" WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY p.created_at DESC, p.id DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PGRepository) ProductFields(ctx context.Context, productID int64) (*model.ProductFields, error) {
	var fields model.ProductFields
	query := `
        SELECT product_id, year_start, year_end, towbar_price, electrical_price, rating_kg
        FROM product_fields WHERE product_id = $1 LIMIT 1
    `
	err := r.DB.GetContext(ctx, &fields, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No fields row reads as all-absent, not as a failure.
			return &model.ProductFields{ProductID: productID}, nil
		}
		return nil, err
	}
	return &fields, nil
}

func (r *PGRepository) ProductImages(ctx context.Context, productID int64) ([]string, error) {
	var urls []string
	// Featured image first, then the gallery in stored order. Rows that never
	// resolved to a URL are dropped here rather than padded downstream.
	query := `
        SELECT url FROM product_images
        WHERE product_id = $1 AND url IS NOT NULL AND url <> ''
        ORDER BY is_featured DESC, sort_order ASC, id ASC
    `
	err := r.DB.SelectContext(ctx, &urls, query, productID)
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *PGRepository) Permalink(ctx context.Context, productID int64) (string, error) {
	var slug string
	err := r.DB.GetContext(ctx, &slug, `SELECT slug FROM products WHERE id = $1 LIMIT 1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return r.productBaseURL + slug, nil
}
