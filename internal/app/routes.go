package app

import (
	"hash/maphash"
	"math/rand/v2"

	"govel.dev/sweeper/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.log, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /v1/register", auth.Register)
	a.router.HandleFunc("POST /v1/login", auth.Login)
	a.router.HandleFunc("POST /v1/logout", auth.Logout)
	a.router.HandleFunc("GET /v1/status", auth.Status)

	game := handlers.NewGameHandler(a.log, a.db, a.ws, createRand())

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/step", game.Step)
	a.router.HandleFunc("POST /v1/game/{id}/solve", game.Solve)
	a.router.HandleFunc("POST /v1/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("/v1/game/{id}/watch", game.Watch)

	a.router.HandleFunc("GET /v1/records", game.Records)
	a.router.HandleFunc("GET /v1/myrecords", game.OwnRecords)
}
