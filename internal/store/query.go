package store

import (
	"fmt"

	"github.com/uptrace/bun"

	"github.com/erazemk/anylist/internal/db"
	"github.com/erazemk/anylist/internal/model"
)

// paginate orders by insertion and applies the page window.
func paginate(q *bun.SelectQuery, page model.Page) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.rowid ASC").
		Limit(page.Limit).
		Offset(page.Offset)
}

// search restricts q to rows where any of columns contains the search term,
// ignoring case. Both sides are folded with Unicode rules. Columns are SQL
// expressions such as "?TableAlias.name".
func search(q *bun.SelectQuery, s model.Search, columns ...string) *bun.SelectQuery {
	pattern, ok := s.Pattern()
	if !ok {
		return q
	}
	return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, col := range columns {
			q = q.WhereOr(fmt.Sprintf(`%s(%s) LIKE ? ESCAPE '\'`, db.FoldFunc, col), pattern)
		}
		return q
	})
}
