package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TrendSniper/internal/metrics"
	"TrendSniper/internal/model"
	"TrendSniper/internal/notifier"
	"TrendSniper/internal/recorder"
	"TrendSniper/internal/scanner"
	"TrendSniper/internal/session"
)

const (
	TriggerSchedule = "schedule"
	TriggerCommand  = "command"
)

// ErrBusy is returned when a cycle is requested while another scan runs.
var ErrBusy = errors.New("scan already in progress")

// Scanner runs one scan pass.
type Scanner interface {
	Scan(ctx context.Context, universe []string, posted scanner.PostedSet, maxCandidates int) *scanner.Report
}

// Delivery hands non-empty idea lists to the outside world.
type Delivery interface {
	DeliverIdeas(ctx context.Context, ideas []model.TradeIdea) error
}

// Options tune the cycle scheduler.
type Options struct {
	Interval      time.Duration
	MaxCandidates int
}

// Scheduler runs scan cycles on an aligned cadence and serves control commands.
type Scheduler struct {
	Cron     *cron.Cron
	Session  *session.Session
	Scanner  Scanner
	Delivery Delivery
	Recorder recorder.Recorder
	Ctx      context.Context

	opts    Options
	log     zerolog.Logger
	now     func() time.Time
	running sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sess *session.Session, sc Scanner, delivery Delivery, rec recorder.Recorder, opts Options, log zerolog.Logger) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	log = log.With().Str("component", "scheduler").Logger()
	cronLog := cron.PrintfLogger(&log)
	return &Scheduler{
		Cron:     cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog))),
		Session:  sess,
		Scanner:  sc,
		Delivery: delivery,
		Recorder: rec,
		Ctx:      ctx,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// Register schedules the aligned scan cycle.
func (s *Scheduler) Register() error {
	if s.Scanner == nil || s.Session == nil {
		return fmt.Errorf("register scan cycle: scanner and session are required")
	}
	s.Cron.Schedule(AlignedSchedule{Interval: s.opts.Interval}, cron.FuncJob(s.tick))
	s.log.Info().Dur("interval", s.opts.Interval).Msg("scan cycle registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// tick is the scheduled job: it skips while paused or outside market hours.
func (s *Scheduler) tick() {
	if !s.Session.Enabled() {
		metrics.ScanCycles.WithLabelValues("skipped_paused").Inc()
		s.log.Debug().Msg("scanning paused")
		return
	}
	if !s.Session.InWindow(s.now()) {
		metrics.ScanCycles.WithLabelValues("skipped_window").Inc()
		s.log.Debug().Msg("outside market window")
		return
	}
	if _, err := s.RunCycle(TriggerSchedule); err != nil && !errors.Is(err, ErrBusy) {
		s.log.Error().Err(err).Msg("scan cycle")
	}
}

// RunCycle scans the current universe once, delivers any ideas and records
// the outcome. At most one cycle runs at a time.
func (s *Scheduler) RunCycle(trigger string) (*scanner.Report, error) {
	if !s.running.TryLock() {
		metrics.ScanCycles.WithLabelValues("skipped_busy").Inc()
		s.log.Warn().Str("trigger", trigger).Msg("previous scan still running, skipping")
		return nil, ErrBusy
	}
	defer s.running.Unlock()

	universe := s.Session.Universe()
	s.log.Info().Str("trigger", trigger).Int("universe", len(universe)).Msg("starting scan cycle")
	metrics.ScanCycles.WithLabelValues("ran").Inc()

	report := s.Scanner.Scan(s.Ctx, universe, s.Session.Posted(), s.opts.MaxCandidates)
	s.Session.SyncPosted()

	var deliveryErr error
	if len(report.Ideas) > 0 && s.Delivery != nil {
		deliveryErr = s.Delivery.DeliverIdeas(s.Ctx, report.Ideas)
		if deliveryErr != nil {
			s.log.Error().Err(deliveryErr).Str("cycle_id", report.CycleID).Msg("deliver ideas")
		}
	} else if len(report.Ideas) == 0 {
		s.log.Debug().Str("cycle_id", report.CycleID).Msg("no signals this cycle")
	}

	s.record(trigger, len(universe), report, deliveryErr)
	return report, deliveryErr
}

func (s *Scheduler) record(trigger string, universeSize int, report *scanner.Report, deliveryErr error) {
	evt := &recorder.CycleEvent{
		CycleID:      report.CycleID,
		Trigger:      trigger,
		StartedAt:    report.StartedAt,
		FinishedAt:   report.FinishedAt,
		UniverseSize: universeSize,
		Examined:     report.Examined,
		Ideas:        len(report.Ideas),
		Skipped:      report.Count(scanner.StatusSkipped),
		Rejected:     report.Count(scanner.StatusRejected),
		Duplicates:   report.Count(scanner.StatusDuplicate),
		Failed:       report.Count(scanner.StatusFailed),
	}
	if deliveryErr != nil {
		evt.DeliveryErr = deliveryErr.Error()
	}
	if err := s.Recorder.RecordCycle(evt); err != nil {
		s.log.Error().Err(err).Msg("record cycle")
	}
	for i := range report.Ideas {
		if err := s.Recorder.RecordIdea(report.CycleID, &report.Ideas[i]); err != nil {
			s.log.Error().Err(err).Str("ticker", report.Ideas[i].Ticker).Msg("record idea")
		}
	}
}

// Status reports the session state now.
func (s *Scheduler) Status() session.Status {
	return s.Session.Status(s.now())
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	cmd := strings.ToLower(strings.TrimSpace(command))
	if i := strings.IndexAny(cmd, " @"); i > 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/start":
		s.Session.Start()
		return "▶️ Scanning started."
	case "/pause", "/stop":
		s.Session.Pause()
		return "⏸ Scanning paused."
	case "/reset":
		n := s.Session.Reset(ctx)
		return fmt.Sprintf("🔄 Posted tickers cleared and universe refreshed (%d symbols).", n)
	case "/status":
		return notifier.FormatStatus(s.Status())
	case "/scan":
		return s.scanNow()
	default:
		return "Available commands:\n• /start - start scanning\n• /pause - pause scanning\n• /reset - clear posted tickers and reload universe\n• /status - show scanner status\n• /scan - run one scan now"
	}
}

func (s *Scheduler) scanNow() string {
	if !s.Session.Enabled() {
		return "⏸ Scanning is paused. Send /start first."
	}
	report, err := s.RunCycle(TriggerCommand)
	if errors.Is(err, ErrBusy) {
		return "⏳ A scan is already running."
	}
	if report == nil {
		return fmt.Sprintf("❌ Scan failed: %v", err)
	}
	msg := fmt.Sprintf("✅ Scan finished: %d examined, %d ideas.", report.Examined, len(report.Ideas))
	if err != nil {
		msg += fmt.Sprintf("\n⚠️ Delivery failed: %v", err)
	}
	return msg
}
