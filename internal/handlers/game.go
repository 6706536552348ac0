package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"govel.dev/sweeper/internal/config"
	"govel.dev/sweeper/internal/middleware"
	"govel.dev/sweeper/internal/mines"
	"govel.dev/sweeper/internal/player"
	"govel.dev/sweeper/internal/repository"
)

type GameHandler struct {
	log  *logrus.Logger
	repo *repository.Queries
	ws   *config.WebSocket
	rnd  *rand.Rand
}

func NewGameHandler(
	log *logrus.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:  log,
		repo: repository.New(db),
		ws:   ws,
		rnd:  rnd,
	}
}

/*
NewGame creates a solver session: a fresh board with the requested
parameters and an empty knowledge base. Nothing is probed yet; the
solver makes its first move on the first step request.
*/
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	params := dto.GameParams()
	if err := params.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	game, err := mines.NewGame(params, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to generate a new game")
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r); ok {
		playerId = &claims.PlayerId
	}

	state := player.New(game, g.rnd).State()
	session, err := g.repo.CreateSession(r.Context(), playerId, state)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create solver session")
		return
	}

	sendJSONOrLog(w, g.log, NewSessionDTO(session, state, nil))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(session, state, nil))
}

// Step advances the solver by exactly one move.
func (g GameHandler) Step(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	p := player.Restore(state, g.rnd)
	move, err := p.Step()
	switch {
	case errors.Is(err, player.ErrGameOver):
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	case errors.Is(err, player.ErrNoMoves):
		// board is exhausted; report the unchanged session
		sendJSONOrLog(w, g.log, NewSessionDTO(session, state, nil))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("inference failure")
		return
	}

	var moves []player.Move
	if move != nil {
		moves = []player.Move{*move}
	}
	g.saveAndSend(w, r, session, p, moves)
}

// Solve runs the solver to a win, a loss or an exhausted board.
func (g GameHandler) Solve(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	p := player.Restore(state, g.rnd)
	moves, err := p.Play(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("inference failure")
		return
	}

	g.saveAndSend(w, r, session, p, moves)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	state.Game.Forfeit()

	g.saveAndSend(w, r, session, player.Restore(state, g.rnd), nil)
}

func (g GameHandler) Records(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseRecordsQueryDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	records, err := g.repo.GetRecords(r.Context(), dto.Options()...)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch records")
		return
	}

	sendJSONOrLog(w, g.log, records)
}

func (g GameHandler) OwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	records, err := g.repo.GetRecords(
		r.Context(), repository.RecordsForPlayer(claims.Username),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch records")
		return
	}

	sendJSONOrLog(w, g.log, records)
}

func (g GameHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.SolverSession, *player.State, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session from db")
		return nil, nil, false
	}

	state, err := session.DecodeState()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("db returned invalid solver_session.state")
		return nil, nil, false
	}

	return session, state, true
}

func (g GameHandler) saveAndSend(
	w http.ResponseWriter,
	r *http.Request,
	session *repository.SolverSession,
	p *player.Player,
	moves []player.Move,
) {
	if (p.Game.Won || p.Game.Dead) && session.EndedAt == nil {
		now := time.Now().UTC()
		session.EndedAt = &now
	}

	if err := g.repo.UpdateSession(r.Context(), session, p.State()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, g.log, NewSessionDTO(session, p.State(), moves))
}
