package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/config"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/emit"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/engine"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/metrics"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	configPath := flag.String("config", getEnv("FVGSCAN_CONFIG", "config.yaml"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel).With().Str("app", cfg.App.Name).Logger()

	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	structural, err := market.LoadCSV(cfg.Data.StructuralPath, market.Timeframe(cfg.Data.StructuralTF))
	if err != nil {
		log.Fatal().Err(err).Msg("load structural bars")
	}
	execution, err := market.LoadCSV(cfg.Data.ExecutionPath, market.Timeframe(cfg.Data.ExecutionTF))
	if err != nil {
		log.Fatal().Err(err).Msg("load execution bars")
	}

	recorder, err := emit.NewJSONLRecorder(cfg.Output.SignalsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open signal recorder")
	}
	defer recorder.Close()

	eng := engine.New(cfg.EngineParams(), recorder, log)
	log.Info().
		Int("structural_bars", len(structural.Bars)).
		Int("execution_bars", len(execution.Bars)).
		Msg("replay started")

	if err := eng.Run(structural.Bars, execution.Bars); err != nil {
		log.Fatal().Err(err).Msg("replay aborted")
	}

	stats := eng.Stats()
	log.Info().
		Int("zones", stats.Zones).
		Int("signals", stats.Signals).
		Int("expired", stats.Expired).
		Int("rejected_bars", stats.RejectedBars).
		Int("live_candidates", eng.LiveCandidates()).
		Str("signals_path", cfg.Output.SignalsPath).
		Msg("replay finished")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
