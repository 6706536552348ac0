package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"govel.dev/sweeper/internal/player"
)

/*
A solver session is one game being played by the deduction engine. The
full state (board, knowledge base, move log) lives in a gob blob; the
scalar columns are denormalized for querying.
*/
type SolverSession struct {
	SolverSessionID int64      `db:"solver_session_id"`
	PlayerID        *int64     `db:"player_id"`
	Width           int        `db:"width"`
	Height          int        `db:"height"`
	MineCount       int        `db:"mine_count"`
	MoveCount       int        `db:"move_count"`
	Dead            bool       `db:"dead"`
	Won             bool       `db:"won"`
	State           []byte     `db:"state"`
	StartedAt       time.Time  `db:"started_at"`
	EndedAt         *time.Time `db:"ended_at"`
}

func (s SolverSession) DecodeState() (*player.State, error) {
	return player.DecodeState(s.State)
}

func (q Queries) CreateSession(
	ctx context.Context, playerId *int64, state *player.State,
) (*SolverSession, error) {
	buf, err := state.Bytes()
	if err != nil {
		return nil, err
	}
	session := &SolverSession{
		PlayerID:  playerId,
		Width:     state.Game.Width,
		Height:    state.Game.Height,
		MineCount: state.Game.MineCount,
		MoveCount: len(state.Moves),
		Dead:      state.Game.Dead,
		Won:       state.Game.Won,
		State:     buf,
	}
	if err := q.db.QueryRow(ctx, `
		INSERT INTO solver_session (
			player_id, width, height, mine_count, move_count, dead, won, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @move_count, @dead, @won, @state
		)
		RETURNING solver_session_id, started_at;`,
		pgx.NamedArgs{
			"player_id":  playerId,
			"width":      session.Width,
			"height":     session.Height,
			"mine_count": session.MineCount,
			"move_count": session.MoveCount,
			"dead":       session.Dead,
			"won":        session.Won,
			"state":      session.State,
		}).Scan(&session.SolverSessionID, &session.StartedAt); err != nil {
		return nil, err
	}
	return session, nil
}

func (q Queries) GetSession(
	ctx context.Context, solverSessionId int64,
) (*SolverSession, error) {
	rows, err := q.db.Query(ctx, `
		SELECT solver_session_id, player_id, width, height, mine_count,
			move_count, dead, won, state, started_at, ended_at
		FROM solver_session
		WHERE solver_session_id = $1;`,
		solverSessionId)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[SolverSession])
}

func (q Queries) UpdateSession(
	ctx context.Context, session *SolverSession, state *player.State,
) error {
	buf, err := state.Bytes()
	if err != nil {
		return err
	}
	session.MoveCount = len(state.Moves)
	session.Dead = state.Game.Dead
	session.Won = state.Game.Won
	session.State = buf
	_, err = q.db.Exec(ctx, `
		UPDATE solver_session
		SET move_count = @move_count
			, dead = @dead
			, won = @won
			, state = @state
			, ended_at = @ended_at
			, updated_at = now()
		WHERE solver_session_id = @solver_session_id;`,
		pgx.NamedArgs{
			"solver_session_id": session.SolverSessionID,
			"move_count":        session.MoveCount,
			"dead":              session.Dead,
			"won":               session.Won,
			"state":             session.State,
			"ended_at":          session.EndedAt,
		})
	return err
}
