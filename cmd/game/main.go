package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/seolfor/cryptward/internal/persist"
	"github.com/seolfor/cryptward/internal/spectate"
	"github.com/seolfor/cryptward/internal/tactics"
	"github.com/seolfor/cryptward/internal/view"
)

const playerStartHealth = 10

func main() {
	var zone string
	var depth int
	var cols, rows int
	var seed int64
	var savePath string
	var pgConn string
	var spectateAddr string
	var resume bool
	var verbose bool

	flag.StringVar(&zone, "zone", "crypt-1", "zone name")
	flag.IntVar(&depth, "depth", 1, "crypt depth (scales enemies and hazards)")
	flag.IntVar(&cols, "cols", 20, "grid columns")
	flag.IntVar(&rows, "rows", 16, "grid rows")
	flag.Int64Var(&seed, "seed", 42, "layout generation seed")
	flag.StringVar(&savePath, "save", "cryptward.json", "JSON save file (empty disables autosave)")
	flag.StringVar(&pgConn, "pg", "", "PostgreSQL connection string (overrides -save)")
	flag.StringVar(&spectateAddr, "spectate", "", "listen address for spectator WebSocket (empty disables)")
	flag.BoolVar(&resume, "resume", false, "resume the zone from its saved snapshot")
	flag.BoolVar(&verbose, "verbose", false, "verbose decision logging")
	flag.Parse()

	store := openStore(pgConn, savePath)
	if store != nil {
		defer store.Close()
	}

	crypt := tactics.GenerateCrypt(cols, rows, depth, seed)
	session := tactics.NewSession(zone, depth, crypt.Grid)
	roster := crypt.Roster
	player := &tactics.PlayerState{Pos: crypt.Spawn, Health: playerStartHealth}

	if resume {
		if store == nil {
			log.Fatal("-resume requires a save backend")
		}
		snap, err := store.LoadSnapshot(zone)
		if err != nil {
			log.Fatalf("resume %s: %v", zone, err)
		}
		roster = tactics.RestoreRoster(snap)
		ps := snap.Player
		player = &ps
		session.Turn = snap.Turn
		log.Printf("resumed zone %s at turn %d with %d enemies", zone, snap.Turn, len(roster))
	}

	simLog := tactics.NewSimLog(verbose)
	coord := tactics.NewCoordinator(session, roster, player, simLog)

	var hub *spectate.Hub
	if spectateAddr != "" {
		hub = spectate.NewHub()
		go hub.Run()
		http.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
			hub.ServeWS(w, r, zone)
		})
		go func() {
			log.Printf("spectators: ws://%s/watch", spectateAddr)
			if err := http.ListenAndServe(spectateAddr, nil); err != nil {
				log.Printf("spectate server: %v", err)
			}
		}()
	}

	ebiten.SetWindowTitle("Crypt Ward")
	ebiten.SetWindowSize(1280, 800)
	if err := ebiten.RunGame(view.New(coord, simLog, view.Config{Store: store, Hub: hub})); err != nil {
		log.Fatal(err)
	}
}

func openStore(pgConn, savePath string) persist.Store {
	if pgConn != "" {
		store, err := persist.NewPostgresStore(pgConn)
		if err != nil {
			log.Fatalf("postgres store: %v", err)
		}
		return store
	}
	if savePath != "" {
		store, err := persist.NewJSONStore(savePath)
		if err != nil {
			log.Fatalf("json store: %v", err)
		}
		return store
	}
	return nil
}
