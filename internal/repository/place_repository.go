package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/iliyamo/cheapies/internal/database"
	"github.com/iliyamo/cheapies/internal/model"
)

// PlaceRepo encapsulates all database queries related to places.
type PlaceRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewPlaceRepo constructs a PlaceRepo with the provided DB handle.
func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

// PlaceUpdate carries the fields of a partial update; nil means untouched.
type PlaceUpdate struct {
	Name *string
	Lng  *float64
	Lat  *float64
}

func (u PlaceUpdate) record() goqu.Record {
	rec := goqu.Record{}
	if u.Name != nil {
		rec["name"] = *u.Name
	}
	if u.Lng != nil {
		rec["lng"] = *u.Lng
	}
	if u.Lat != nil {
		rec["lat"] = *u.Lat
	}
	return rec
}

var placeColumns = []any{"identifier", "name", "lng", "lat"}

// List returns every place ordered by identifier.  A non-empty name filters
// case-insensitively on a substring of the name.
func (r *PlaceRepo) List(ctx context.Context, name string) ([]model.Place, error) {
	ds := dialect.From("places").Select(placeColumns...)
	if name != "" {
		ds = ds.Where(goqu.C("name").ILike(containsPattern(name)))
	}
	q, args, err := ds.Order(goqu.C("identifier").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Place{}
	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.Identifier, &p.Name, &p.Lng, &p.Lat); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a place by identifier.  It returns ErrPlaceNotFound if no row
// is found.
func (r *PlaceRepo) Get(ctx context.Context, identifier string) (*model.Place, error) {
	q, args, err := dialect.From("places").
		Select(placeColumns...).
		Where(goqu.C("identifier").Eq(identifier)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, err
	}
	var p model.Place
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&p.Identifier, &p.Name, &p.Lng, &p.Lat); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a place with the identifier is present.
func (r *PlaceRepo) Exists(ctx context.Context, identifier string) (bool, error) {
	q, args, err := dialect.From("places").
		Select(goqu.L("1")).
		Where(goqu.C("identifier").Eq(identifier)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, err
	}
	var one int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create inserts a new place.  A duplicate identifier yields ErrConflict.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place) error {
	q, args, err := dialect.Insert("places").Rows(goqu.Record{
		"identifier": p.Identifier,
		"name":       p.Name,
		"lng":        p.Lng,
		"lat":        p.Lat,
	}).ToSQL()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Update merges the supplied fields into the place and returns the stored
// row.  MySQL reports zero affected rows for a no-op update, so existence is
// decided by the follow-up read.
func (r *PlaceRepo) Update(ctx context.Context, identifier string, u PlaceUpdate) (*model.Place, error) {
	if rec := u.record(); len(rec) > 0 {
		q, args, err := dialect.Update("places").
			Set(rec).
			Where(goqu.C("identifier").Eq(identifier)).
			ToSQL()
		if err != nil {
			return nil, err
		}
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, identifier)
}

// Delete removes the place's cheapies and then the place itself.  The two
// statements run outside a transaction; a failure between them leaves the
// place in place with no listings.
func (r *PlaceRepo) Delete(ctx context.Context, identifier string) error {
	q, args, err := dialect.Delete("cheapies").Where(goqu.C("store").Eq(identifier)).ToSQL()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return err
	}

	q, args, err = dialect.Delete("places").Where(goqu.C("identifier").Eq(identifier)).ToSQL()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaceNotFound
	}
	return nil
}
