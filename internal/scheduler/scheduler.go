package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/summarypro/summarybot/internal/summary"
	"github.com/summarypro/summarybot/internal/telegram"
)

// runTimeout bounds one scheduled summary run end to end.
const runTimeout = 5 * time.Minute

// Summarizer is the slice of the summary service the scheduler needs.
type Summarizer interface {
	SummarizeRange(ctx context.Context, start, end time.Time) (string, error)
}

// Notifier posts the finished summary into the chat.
type Notifier interface {
	SendMessage(ctx context.Context, msg telegram.OutgoingMessage) error
}

// Options configures the scheduled summaries.
type Options struct {
	// Times are local "HH:MM" times of day.
	Times    []string
	Timezone string
	ChatID   int64
	ThreadID int64
	// Lookback is the window used on the first run, before any
	// last-run time exists.
	Lookback time.Duration
}

// Scheduler posts a summary of everything since the previous run at fixed
// local times. The pipeline tolerates irregular windows: an empty window
// logs and posts nothing.
type Scheduler struct {
	service  Summarizer
	notifier Notifier
	opts     Options
	logger   *logrus.Logger
	cron     *cron.Cron
	loc      *time.Location
	now      func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

// New creates a scheduler; Start must be called to arm it.
func New(service Summarizer, notifier Notifier, opts Options, logger *logrus.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", opts.Timezone, err)
	}

	s := &Scheduler{
		service:  service,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
		cron:     cron.New(cron.WithLocation(loc)),
	}

	for _, at := range opts.Times {
		spec, err := cronSpec(at)
		if err != nil {
			return nil, err
		}
		if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
			return nil, fmt.Errorf("failed to schedule %q: %w", at, err)
		}
	}

	return s, nil
}

// Start arms the cron entries.
func (s *Scheduler) Start() {
	s.logger.WithField("times", s.opts.Times).Info("Starting summary scheduler")
	s.cron.Start()
}

// Stop disarms the cron entries and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// runScheduled computes the window since the last run and posts the
// summary for it.
func (s *Scheduler) runScheduled() {
	start, end := s.advanceWindow()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	log := s.logger.WithFields(logrus.Fields{
		"start": start.Format(time.RFC3339),
		"end":   end.Format(time.RFC3339),
	})

	text, err := s.service.SummarizeRange(ctx, start, end)
	if errors.Is(err, summary.ErrNoMessages) {
		log.Info("Nothing to summarize in this window")
		return
	}
	if err != nil {
		log.WithError(err).Error("Scheduled summary failed")
		return
	}

	header := fmt.Sprintf("📋 Сводка с %s по %s:\n\n",
		start.In(s.loc).Format("2006-01-02 15:04"),
		end.In(s.loc).Format("2006-01-02 15:04"))

	err = s.notifier.SendMessage(ctx, telegram.OutgoingMessage{
		ChatID:          s.opts.ChatID,
		MessageThreadID: s.opts.ThreadID,
		Text:            header + text,
	})
	if err != nil {
		log.WithError(err).Error("Failed to post scheduled summary")
		return
	}
	log.Info("Posted scheduled summary")
}

// advanceWindow returns the [start, end] window for this run and records
// end as the new last-run time. The first run looks back Options.Lookback.
func (s *Scheduler) advanceWindow() (time.Time, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.now()
	start := s.lastRun
	if start.IsZero() {
		start = end.Add(-s.opts.Lookback)
	}
	s.lastRun = end
	return start, end
}

// cronSpec converts a local "HH:MM" time of day to a cron expression.
func cronSpec(at string) (string, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid schedule time %q, want HH:MM", at)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(at, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("invalid schedule time %q: %w", at, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid schedule time %q", at)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
