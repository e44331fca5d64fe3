package queue

import (
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/go-waitqueue/pkg/settings"
	"github.com/huynhanx03/go-waitqueue/pkg/timer"
)

const defaultName = "default"

type options struct {
	name     string
	logger   *zap.Logger
	clock    timer.Timer
	slowWait time.Duration
}

// Option configures a Blocking queue.
type Option func(*options)

// WithName labels the queue in logs and Stats.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock used to time parked consumers.
func WithClock(c timer.Timer) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithSlowWait logs a warning whenever a consumer stayed parked longer than d.
// Zero disables it.
func WithSlowWait(d time.Duration) Option {
	return func(o *options) {
		o.slowWait = d
	}
}

// FromConfig maps queue settings to options. When ClockResolution is set the
// queue gets a CachedTimer, which the caller owns and must Stop after Destroy.
func FromConfig(cfg settings.Queue) ([]Option, timer.Timer) {
	var clock timer.Timer = timer.System{}
	if cfg.ClockResolution > 0 {
		clock = timer.NewCachedTimer(time.Duration(cfg.ClockResolution) * time.Millisecond)
	}

	return []Option{
		WithName(cfg.Name),
		WithClock(clock),
		WithSlowWait(time.Duration(cfg.SlowWaitThreshold) * time.Millisecond),
	}, clock
}

func defaultOptions() options {
	return options{
		name:   defaultName,
		logger: zap.NewNop(),
		clock:  timer.System{},
	}
}
