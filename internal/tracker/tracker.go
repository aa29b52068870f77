package tracker

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/thurmanmarka/solarpos"
	"github.com/thurmanmarka/solarpos/internal/logging"
)

// Options configures a Tracker. Only Sites is required.
type Options struct {
	Sites     []Site
	Interval  time.Duration // default 1m
	Publisher Publisher
	Store     *Store
	Metrics   *Metrics
	Logger    logging.Logger
	Now       func() time.Time
}

// Tracker samples every site once per interval.
type Tracker struct {
	scheduler *gocron.Scheduler
	sites     []Site
	interval  time.Duration
	pub       Publisher
	store     *Store
	metrics   *Metrics
	log       logging.Logger
	now       func() time.Time
}

func New(opts Options) *Tracker {
	t := &Tracker{
		scheduler: gocron.NewScheduler(time.UTC),
		sites:     opts.Sites,
		interval:  opts.Interval,
		pub:       opts.Publisher,
		store:     opts.Store,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if t.interval <= 0 {
		t.interval = time.Minute
	}
	if t.store == nil {
		t.store = NewStore()
	}
	if t.log == nil {
		t.log = logging.Noop()
	}
	if t.now == nil {
		t.now = time.Now
	}
	return t
}

// Store returns the latest-sample store the tracker writes to.
func (t *Tracker) Store() *Store { return t.store }

// Sites returns the configured sites.
func (t *Tracker) Sites() []Site { return t.sites }

// Start schedules the sampling job and returns. The first run happens
// immediately.
func (t *Tracker) Start() error {
	if len(t.sites) == 0 {
		t.log.Warn(context.Background(), "tracker: no sites configured; nothing to schedule")
		return nil
	}

	_, err := t.scheduler.Every(t.interval).Do(func() {
		t.Tick(context.Background())
	})
	if err != nil {
		return err
	}

	t.scheduler.StartAsync()
	return nil
}

// Stop cancels future runs.
func (t *Tracker) Stop() {
	if t.scheduler != nil {
		t.scheduler.Stop()
	}
}

// Tick samples all sites at the same instant, one goroutine per site, and
// waits for them.
func (t *Tracker) Tick(ctx context.Context) {
	now := t.now().UTC()
	t.log.Debug(ctx, "tracker: sampling", logging.Int("sites", len(t.sites)))

	var wg sync.WaitGroup
	for _, site := range t.sites {
		site := site
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := t.sample(ctx, site, now); err != nil {
				t.log.Warn(ctx, "tracker: sample failed",
					logging.String("site", site.Name), logging.Err(err))
			}
		}()
	}
	wg.Wait()
}

func (t *Tracker) sample(ctx context.Context, site Site, now time.Time) error {
	pos, err := solarpos.PositionAt(now, site.Coordinates())
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, solarpos.ErrNoRiseNoSet) && !math.IsNaN(pos.Elevation) && !math.IsNaN(pos.Azimuth):
		// Polar day or night: the position itself is still defined.
		result = "no_rise_set"
		t.log.Debug(ctx, "tracker: no sunrise or sunset today", logging.String("site", site.Name))
	default:
		result = "error"
		if errors.Is(err, solarpos.ErrDomain) {
			result = "domain_error"
		}
		t.metrics.sampleFailed(site.Name, result)
		return err
	}

	s := Sample{
		Site:      site.Name,
		Time:      now,
		Elevation: pos.Elevation,
		Azimuth:   pos.Azimuth,
	}
	t.store.Save(s)
	t.metrics.observe(s, result)

	if t.pub == nil {
		return nil
	}
	if err := t.pub.Publish(ctx, s); err != nil {
		t.metrics.publishFailed(site.Name)
		return err
	}
	return nil
}
