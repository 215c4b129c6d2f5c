package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sakurairo-fans/anime-img-api/internal/database"
	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"

	"github.com/lib/pq"
)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) database.AnimeRepository {
	return &ImageRepository{db: db}
}

const (
	urlColumns  = "url"
	metaColumns = "url, height, width, ratio, landscape"
)

func columns(withMeta bool) string {
	if withMeta {
		return metaColumns
	}
	return urlColumns
}

// Bucket names come from the static config allow-list, never from the
// request; QuoteIdentifier guards the remaining identifier position.
func (r *ImageRepository) ByIDs(ctx context.Context, bucket entity.Bucket, ids []int, withMeta bool) ([]entity.ImageRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)",
		columns(withMeta), pq.QuoteIdentifier(bucket.Name))

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
	}
	defer rows.Close()

	return scanRecords(rows, withMeta)
}

func (r *ImageRepository) RandomMatch(ctx context.Context, bucket entity.Bucket, f filter.Filters, count int, withMeta bool) ([]entity.ImageRecord, error) {
	where, args := buildPredicate(f)

	query := fmt.Sprintf("SELECT %s FROM %s", columns(withMeta), pq.QuoteIdentifier(bucket.Name))
	if where != "" {
		query += " WHERE " + where
	}
	query += fmt.Sprintf(" ORDER BY RANDOM() LIMIT %d", count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
	}
	defer rows.Close()

	return scanRecords(rows, withMeta)
}

// buildPredicate compiles the flag parameters into an ANDed WHERE clause
// with bound values. Clause order is fixed so generated SQL stays
// deterministic: landscape, near_square, size group, resolution group.
func buildPredicate(f filter.Filters) (string, []interface{}) {
	var parts []string
	var args []interface{}

	bind := func(v bool) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Landscape != filter.Absent {
		parts = append(parts, "landscape = "+bind(f.Landscape.Bool()))
	}
	if f.NearSquare != filter.Absent {
		parts = append(parts, "near_square = "+bind(f.NearSquare.Bool()))
	}

	type member struct {
		col  string
		flag filter.Flag
	}
	group := func(members []member) {
		var conds []string
		for _, m := range members {
			if m.flag != filter.Absent {
				conds = append(conds, m.col+" = "+bind(m.flag.Bool()))
			}
		}
		if len(conds) > 0 {
			parts = append(parts, "("+strings.Join(conds, " AND ")+")")
		}
	}

	group([]member{
		{"big_size", f.BigSize},
		{"mid_size", f.MidSize},
		{"small_size", f.SmallSize},
	})
	group([]member{
		{"big_res", f.BigRes},
		{"mid_res", f.MidRes},
		{"small_res", f.SmallRes},
	})

	return strings.Join(parts, " AND "), args
}

func scanRecords(rows *sql.Rows, withMeta bool) ([]entity.ImageRecord, error) {
	var records []entity.ImageRecord
	for rows.Next() {
		var rec entity.ImageRecord
		var err error
		if withMeta {
			err = rows.Scan(&rec.URL, &rec.Height, &rec.Width, &rec.Ratio, &rec.Landscape)
		} else {
			err = rows.Scan(&rec.URL)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
	}

	return records, nil
}
