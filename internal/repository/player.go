package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Player struct {
	PlayerID     int64  `db:"player_id"`
	Username     string `db:"username"`
	PasswordHash []byte `db:"password_hash"`
}

type CreatePlayerParams struct {
	Username     string
	PasswordHash []byte
}

func (q Queries) CreatePlayer(
	ctx context.Context, params CreatePlayerParams,
) (*Player, error) {
	var playerId int64
	if err := q.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id;`,
		pgx.NamedArgs{
			"username":      params.Username,
			"password_hash": params.PasswordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	return &Player{
		PlayerID:     playerId,
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
	}, nil
}

func (q Queries) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := q.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}
