package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"govel.dev/sweeper/internal/mines"
	"govel.dev/sweeper/internal/player"
	"govel.dev/sweeper/internal/repository"
)

type CreateGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	var dto CreateGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto CreateGameDTO) GameParams() mines.GameParams {
	return mines.GameParams(dto)
}

type RecordsQueryDTO struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
	Won       bool    `schema:"won"`
}

func ParseRecordsQueryDTO(src map[string][]string) (RecordsQueryDTO, error) {
	var dto RecordsQueryDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto RecordsQueryDTO) Options() []repository.RecordsOption {
	var opts []repository.RecordsOption
	if dto.Username != nil {
		opts = append(opts, repository.RecordsForPlayer(*dto.Username))
	}
	if dto.Width != nil && dto.Height != nil && dto.MineCount != nil {
		opts = append(opts, repository.RecordsForParams(mines.GameParams{
			Width:     *dto.Width,
			Height:    *dto.Height,
			MineCount: *dto.MineCount,
		}))
	}
	if dto.Won {
		opts = append(opts, repository.RecordsWonOnly())
	}
	return opts
}

type SessionDTO struct {
	SolverSessionId string        `json:"solver_session_id"`
	Grid            mines.Grid    `json:"grid"`
	Width           int           `json:"width"`
	Height          int           `json:"height"`
	MineCount       int           `json:"mine_count"`
	MoveCount       int           `json:"move_count"`
	Dead            bool          `json:"dead"`
	Won             bool          `json:"won"`
	Moves           []player.Move `json:"moves,omitempty"`
	StartedAt       int64         `json:"started_at"`
	EndedAt         *int64        `json:"ended_at,omitempty"`
}

/*
NewSessionDTO renders a session for the wire: the player grid (never
the real mine grid of a live game) plus the queryable scalars. moves
carries only the moves the current request produced.
*/
func NewSessionDTO(
	session *repository.SolverSession,
	state *player.State,
	moves []player.Move,
) *SessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &SessionDTO{
		SolverSessionId: strconv.FormatInt(session.SolverSessionID, 10),
		Grid:            state.Game.PlayerGrid,
		Width:           state.Game.Width,
		Height:          state.Game.Height,
		MineCount:       state.Game.MineCount,
		MoveCount:       len(state.Moves),
		Dead:            state.Game.Dead,
		Won:             state.Game.Won,
		Moves:           moves,
		StartedAt:       session.StartedAt.UnixMilli(),
		EndedAt:         endedAt,
	}
}
