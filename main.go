// File: main.go
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lguibr/vssref/checker"
	"github.com/lguibr/vssref/display"
	"github.com/lguibr/vssref/internal/actorkit"
	"github.com/lguibr/vssref/referee"
	"github.com/lguibr/vssref/replacer"
	"github.com/lguibr/vssref/utils"
	"github.com/lguibr/vssref/vision"
	"github.com/lguibr/vssref/wire"
)

const defaultPort = "8080"

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := utils.DefaultConfig()
	if path := os.Getenv("VSSREF_CONFIG"); path != "" {
		loaded, err := utils.LoadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("vssref: loading config failed")
			os.Exit(1)
		}
		cfg = loaded
	}
	log.Info().Interface("config", cfg).Msg("vssref: configuration loaded")

	engine := actorkit.NewEngine()
	codec := wire.NewGobCodec()

	snapshot := vision.NewSnapshot()
	visionPID := engine.Spawn(actorkit.NewProps(vision.NewClient(cfg.VisionAddress, cfg.VisionPort, codec, snapshot)))
	if visionPID == nil {
		log.Fatal().Msg("vssref: failed to spawn vision client")
		os.Exit(1)
	}

	blueIsLeftSide := func() bool { return cfg.BlueIsLeftSide }
	sink := display.NewWebSocketSink(blueIsLeftSide)

	// refereePID is filled in once the Referee Engine spawns below;
	// onTeamsPlaced only ever fires well after startup, by which point
	// the closure's read sees the real PID.
	var refereePID *actorkit.PID
	replacerProducer := replacer.NewReplacer(
		cfg.ReplacerAddress, cfg.ReplacerPort,
		cfg.SimulatorAddress, cfg.SimulatorPort,
		codec, snapshot, blueIsLeftSide,
		cfg.RobotLength, cfg.BallRadius, cfg.RandomSeed,
		func() { engine.Send(refereePID, referee.TeamsPlaced{}, nil) },
	)
	replacerPID := engine.Spawn(actorkit.NewProps(replacerProducer))
	if replacerPID == nil {
		log.Fatal().Msg("vssref: failed to spawn replacer")
		os.Exit(1)
	}

	atk := checker.NewTwoAttackers(snapshot, blueIsLeftSide)
	def := checker.NewTwoDefenders(snapshot, blueIsLeftSide)
	stuck := checker.NewStuckedBall(snapshot, blueIsLeftSide, cfg.BallMinSpeedForStuck, cfg.StuckedBallTime.Seconds(), cfg.RobotLength)
	buildBallPlay := func(sinkForGoals checker.SuggestionSink) *checker.BallPlay {
		return checker.NewBallPlay(snapshot, blueIsLeftSide, atk, def, sinkForGoals)
	}

	refereeProducer := referee.NewEngine(referee.Config{
		ThreadFrequency: cfg.ThreadFrequency,
		TransitionTime:  cfg.TransitionTime,
		RefereeAddress:  cfg.RefereeAddress,
		RefereePort:     cfg.RefereePort,
		Codec:           codec,
		BlueIsLeftSide:  cfg.BlueIsLeftSide,
		SwapSides:       cfg.SwapSides,
		DisplaySink:     sink,
	}, []checker.Checker{stuck}, buildBallPlay, cfg.HalfTime.Seconds(), replacerPID)

	refereePID = engine.Spawn(actorkit.NewProps(refereeProducer))
	if refereePID == nil {
		log.Fatal().Msg("vssref: failed to spawn referee engine")
		os.Exit(1)
	}

	http.Handle("/display", sink.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	listenAddr := ":" + port

	srv := &http.Server{Addr: listenAddr}
	go func() {
		log.Info().Str("address", listenAddr).Msg("vssref: display server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("vssref: display server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("vssref: shutting down")
	_ = srv.Close()
	engine.Shutdown(5 * time.Second)
}
