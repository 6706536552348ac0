package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"govel.dev/sweeper/internal/mines"
)

type Record struct {
	SolverSessionId string  `db:"solver_session_id" json:"solver_session_id"`
	Username        *string `db:"username"          json:"username"`
	Width           int     `db:"width"             json:"width"`
	Height          int     `db:"height"            json:"height"`
	MineCount       int     `db:"mine_count"        json:"mine_count"`
	MoveCount       int     `db:"move_count"        json:"move_count"`
	Won             bool    `db:"won"               json:"won"`
	PlaytimeMs      float64 `db:"playtime_ms"       json:"playtime_ms"`
}

type RecordFilter struct {
	Username   *string
	GameParams *mines.GameParams
	WonOnly    bool
}

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := []string{"ended_at IS NOT NULL"}
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mineCount"] = f.GameParams.MineCount
	}
	if f.WonOnly {
		clauses = append(clauses, "won")
	}
	return strings.Join(clauses, " AND "), args
}

type RecordsOption = func(*RecordFilter)

func RecordsForPlayer(username string) RecordsOption {
	return func(f *RecordFilter) {
		f.Username = &username
	}
}

func RecordsForParams(params mines.GameParams) RecordsOption {
	return func(f *RecordFilter) {
		f.GameParams = &params
	}
}

func RecordsWonOnly() RecordsOption {
	return func(f *RecordFilter) {
		f.WonOnly = true
	}
}

// GetRecords lists finished sessions, fastest first.
func (q Queries) GetRecords(
	ctx context.Context, opts ...RecordsOption,
) ([]Record, error) {
	var filter RecordFilter
	for _, opt := range opts {
		opt(&filter)
	}
	where, args := filter.WhereClause()

	rows, err := q.db.Query(ctx, `
		SELECT s.solver_session_id::text AS solver_session_id
			, p.username
			, s.width
			, s.height
			, s.mine_count
			, s.move_count
			, s.won
			, extract(epoch FROM (s.ended_at - s.started_at)) * 1000 AS playtime_ms
		FROM solver_session s
		LEFT JOIN player p USING (player_id)
		WHERE `+where+`
		ORDER BY playtime_ms ASC
		LIMIT 100;`,
		args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
