package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"govel.dev/sweeper/internal/player"
	"govel.dev/sweeper/internal/repository"
)

type watchFrame struct {
	Move    *player.Move `json:"move,omitempty"`
	Session *SessionDTO  `json:"session"`
}

/*
Watch upgrades the connection and streams the solver playing the game
to its end, one frame per move. The client only listens; the solver
needs no operator. The final state is persisted once the stream ends.
*/
func (g GameHandler) Watch(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	p := player.Restore(state, g.rnd)

	if err := c.WriteJSON(watchFrame{
		Session: NewSessionDTO(session, p.State(), nil),
	}); err != nil {
		g.log.WithError(err).Warn("ws write failed")
		return
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for !p.Game.Dead && !p.Game.Won {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		move, err := p.Step()
		if errors.Is(err, player.ErrNoMoves) || errors.Is(err, player.ErrGameOver) {
			break
		}
		if err != nil {
			g.log.WithError(err).Error("inference failure")
			break
		}

		if err := c.WriteJSON(watchFrame{
			Move:    move,
			Session: NewSessionDTO(session, p.State(), nil),
		}); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.log.WithError(err).Warn("ws write failed")
			}
			break
		}
	}

	g.persistFinished(session, p)

	c.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

func (g GameHandler) persistFinished(
	session *repository.SolverSession,
	p *player.Player,
) {
	if (p.Game.Won || p.Game.Dead) && session.EndedAt == nil {
		now := time.Now().UTC()
		session.EndedAt = &now
	}
	// the request context may already be gone if the client bailed
	if err := g.repo.UpdateSession(context.Background(), session, p.State()); err != nil {
		g.log.WithError(err).Error("unable to update session in db")
	}
}
