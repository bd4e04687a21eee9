package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/iliyamo/cheapies/internal/model"
)

// CheapieRepo encapsulates all database queries related to listings.
type CheapieRepo struct {
	db *sql.DB
}

func NewCheapieRepo(db *sql.DB) *CheapieRepo {
	return &CheapieRepo{db: db}
}

// CheapieFilter narrows List.  Store matches exactly, Name is a
// case-insensitive substring.  Empty fields are ignored.
type CheapieFilter struct {
	Store string
	Name  string
}

// CheapieUpdate carries the fields of a partial update; nil means untouched.
// An empty Image clears the stored image.
type CheapieUpdate struct {
	Name     *string
	Store    *string
	Quantity *int
	Price    *float64
	Exp      *time.Time
	Image    *string
	Stock    *model.Stock
}

func (u CheapieUpdate) record() goqu.Record {
	rec := goqu.Record{}
	if u.Name != nil {
		rec["name"] = *u.Name
	}
	if u.Store != nil {
		rec["store"] = *u.Store
	}
	if u.Quantity != nil {
		rec["quantity"] = *u.Quantity
	}
	if u.Price != nil {
		rec["price"] = *u.Price
	}
	if u.Exp != nil {
		rec["exp"] = u.Exp.UTC()
	}
	if u.Image != nil {
		if *u.Image == "" {
			rec["image"] = nil
		} else {
			rec["image"] = *u.Image
		}
	}
	if u.Stock != nil {
		rec["stock"] = string(*u.Stock)
	}
	return rec
}

var cheapieColumns = []any{"id", "name", "store", "quantity", "price", "add_by", "exp", "image", "stock", "created_at"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheapie(s rowScanner) (*model.Cheapie, error) {
	var (
		c     model.Cheapie
		exp   sql.NullTime
		image sql.NullString
		stock string
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Store, &c.Quantity, &c.Price, &c.AddBy, &exp, &image, &stock, &c.CreatedAt); err != nil {
		return nil, err
	}
	if exp.Valid {
		t := exp.Time
		c.Exp = &t
	}
	if image.Valid {
		s := image.String
		c.Image = &s
	}
	c.Stock = model.Stock(stock)
	return &c, nil
}

// List returns listings matching the filter ordered by id.
func (r *CheapieRepo) List(ctx context.Context, f CheapieFilter) ([]model.Cheapie, error) {
	ds := dialect.From("cheapies").Select(cheapieColumns...)
	if f.Store != "" {
		ds = ds.Where(goqu.C("store").Eq(f.Store))
	}
	if f.Name != "" {
		ds = ds.Where(goqu.C("name").ILike(containsPattern(f.Name)))
	}
	q, args, err := ds.Order(goqu.C("id").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Cheapie{}
	for rows.Next() {
		c, err := scanCheapie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a listing by id or returns ErrCheapieNotFound.
func (r *CheapieRepo) Get(ctx context.Context, id uint64) (*model.Cheapie, error) {
	q, args, err := dialect.From("cheapies").
		Select(cheapieColumns...).
		Where(goqu.C("id").Eq(id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, err
	}
	c, err := scanCheapie(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCheapieNotFound
		}
		return nil, err
	}
	return c, nil
}

// Create inserts a listing.  On success the listing is replaced by the
// stored row so ID and CreatedAt are populated.
func (r *CheapieRepo) Create(ctx context.Context, c *model.Cheapie) error {
	rec := goqu.Record{
		"name":     c.Name,
		"store":    c.Store,
		"quantity": c.Quantity,
		"price":    c.Price,
		"add_by":   c.AddBy,
		"stock":    string(c.Stock),
	}
	if c.Exp != nil {
		rec["exp"] = c.Exp.UTC()
	}
	if c.Image != nil && *c.Image != "" {
		rec["image"] = *c.Image
	}
	q, args, err := dialect.Insert("cheapies").Rows(rec).ToSQL()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	// Follow-up SELECT picks up column defaults (created_at).
	stored, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

// Update merges the supplied fields and returns the stored row.
func (r *CheapieRepo) Update(ctx context.Context, id uint64, u CheapieUpdate) (*model.Cheapie, error) {
	if rec := u.record(); len(rec) > 0 {
		q, args, err := dialect.Update("cheapies").Set(rec).Where(goqu.C("id").Eq(id)).ToSQL()
		if err != nil {
			return nil, err
		}
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

// Delete removes one listing or returns ErrCheapieNotFound.
func (r *CheapieRepo) Delete(ctx context.Context, id uint64) error {
	q, args, err := dialect.Delete("cheapies").Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCheapieNotFound
	}
	return nil
}

// DeleteByStock removes every listing at the given stock level and returns
// how many rows went away.
func (r *CheapieRepo) DeleteByStock(ctx context.Context, stock model.Stock) (int64, error) {
	q, args, err := dialect.Delete("cheapies").Where(goqu.C("stock").Eq(string(stock))).ToSQL()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListImages returns every non-null image reference.
func (r *CheapieRepo) ListImages(ctx context.Context) ([]string, error) {
	q, args, err := dialect.From("cheapies").
		Select("image").
		Where(goqu.C("image").IsNotNull()).
		ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
