package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"TrendSniper/internal/collector"
	"TrendSniper/internal/config"
	"TrendSniper/internal/markethours"
	"TrendSniper/internal/news"
	"TrendSniper/internal/notifier"
	"TrendSniper/internal/recorder"
	"TrendSniper/internal/scanner"
	"TrendSniper/internal/scheduler"
	"TrendSniper/internal/server"
	"TrendSniper/internal/session"
	"TrendSniper/internal/strategy"
	"TrendSniper/internal/universe"
	"TrendSniper/internal/util"
)

const onlineMessage = "TrendSniper is online and ready to scan for opportunities!"

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("TrendSniper starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Market data
	fetcher := newFetcher(cfg)
	bars := collector.NewSource(fetcher, cfg.DataSource.Timeout, log)
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	// Catalyst lookup
	var newsProvider news.Provider
	if cfg.News.APIKey != "" {
		newsProvider = news.NewFinnhubProvider(cfg.News.BaseURL, cfg.News.APIKey, cfg.Proxy)
	} else {
		log.Warn().Msg("no news api key, ideas will carry no headlines")
	}
	lookup := news.NewLookup(newsProvider, cfg.News.Keywords, cfg.News.Timeout, log)

	// Scanner
	sc := scanner.New(bars, lookup, scanner.Config{
		Params: strategy.Params{
			PriceCeiling:    cfg.Scanner.PriceCeiling,
			MinAvgVolume:    cfg.Scanner.MinAvgVolume,
			SpikeMultiplier: cfg.Scanner.SpikeMultiplier,
		},
		ShortLimit:      cfg.Scanner.ShortLimit,
		LongLimit:       cfg.Scanner.LongLimit,
		MinBars:         cfg.Scanner.MinBars,
		CapitalPerTrade: cfg.Scanner.CapitalPerTrade,
		RiskPct:         cfg.Scanner.RiskPct,
		ProfitMultiple:  cfg.Scanner.ProfitMultiple,
		NewsDaysBack:    cfg.News.DaysBack,
		MaxHeadlines:    cfg.News.MaxHeadlines,
		Workers:         cfg.Scanner.Workers,
	}, log)

	// Session
	window, err := markethours.New(cfg.Schedule.Timezone, cfg.OpenHour(), cfg.CloseHour(), cfg.WeekdaysOnly())
	if err != nil {
		log.Warn().Err(err).Msg("timezone unavailable, using fixed UTC market window")
	}
	sess := session.New(universe.NewFileProvider(cfg.Universe.SymbolsFile, log), window, log)
	sess.LoadUniverse(ctx)
	if cfg.AutoStart() {
		sess.Start()
	}

	// Delivery
	footer := notifier.Footer(cfg.Scanner.PriceCeiling)
	var channels []notifier.Channel
	var (
		tn *notifier.TelegramNotifier
		dn *notifier.DiscordNotifier
	)
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		tn.Footer = footer
		channels = append(channels, tn)
	}
	if cfg.DiscordEnabled() {
		dn = notifier.NewDiscordNotifier(cfg.Discord.WebhookURL)
		dn.Footer = footer
		channels = append(channels, dn)
	}
	dispatcher := notifier.NewDispatcher(log, channels...)
	log.Info().Strs("channels", dispatcher.Channels()).Msg("delivery ready")

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, sess, sc, dispatcher, rec, scheduler.Options{
		Interval:      cfg.Interval(),
		MaxCandidates: cfg.Scanner.MaxCandidates,
	}, log)
	if err := sched.Register(); err != nil {
		log.Fatal().Err(err).Msg("register scan cycle")
	}
	sched.Start()
	defer sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.NewServer(cfg.Server.Addr, sched.Status, log).Run(gctx)
	})
	if dn != nil {
		if err := dn.Send(ctx, onlineMessage); err != nil {
			log.Warn().Err(err).Msg("send discord ready message")
		}
	}
	if tn != nil {
		g.Go(func() error {
			if err := tn.Send(gctx, "🟢 "+onlineMessage); err != nil {
				log.Warn().Err(err).Msg("send ready message")
			}
			tn.StartPolling(gctx, sched.HandleCommand)
			return nil
		})
	}

	log.Info().
		Dur("interval", cfg.Interval()).
		Bool("enabled", sess.Enabled()).
		Msg("TrendSniper is running, press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("service stopped with error")
	}
	log.Info().Msg("TrendSniper stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(ds.BaseURL, cfg.Proxy)
	case "mock":
		return &collector.MockFetcher{}
	default:
		return collector.NewAlpacaFetcher(ds.BaseURL, ds.APIKey, ds.APISecret, ds.Feed, cfg.Proxy)
	}
}
