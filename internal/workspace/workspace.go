// Package workspace wires the store, notifier and both trackers into the
// single context object handed to the CLI and the TUI.
package workspace

import (
	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/clock"
	"github.com/theirongolddev/planbook/internal/config"
	"github.com/theirongolddev/planbook/internal/ident"
	"github.com/theirongolddev/planbook/internal/notify"
	"github.com/theirongolddev/planbook/internal/store"
	"github.com/theirongolddev/planbook/internal/tasks"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Workspace owns everything a session needs.
type Workspace struct {
	Config  config.Config
	Store   *store.Store
	Notices *notify.Center
	Clock   clock.Clock
	Budget  *budget.Tracker
	Tasks   *tasks.Manager

	money func(decimal.Decimal) string
}

type options struct {
	medium store.Medium
	clock  clock.Clock
	ids    ident.IDGenerator
	colors ident.ColorPicker
	listen []func(notify.Notification)
}

// Option customizes Open.
type Option func(*options)

// WithMedium uses m instead of opening the SQLite file.
func WithMedium(m store.Medium) Option {
	return func(o *options) { o.medium = m }
}

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDs replaces the UUID generator.
func WithIDs(g ident.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithColors replaces the random habit color picker.
func WithColors(p ident.ColorPicker) Option {
	return func(o *options) { o.colors = p }
}

// WithListener subscribes fn to notifications before the snapshots load,
// so storage warnings raised while opening are delivered too.
func WithListener(fn func(notify.Notification)) Option {
	return func(o *options) { o.listen = append(o.listen, fn) }
}

// Open builds a Workspace. It never fails: when the data file cannot be
// opened the workspace runs memory-only and says so.
func Open(cfg config.Config, opts ...Option) *Workspace {
	o := options{clock: clock.System{}, ids: ident.UUID{}, colors: ident.RandomColor{}}
	for _, opt := range opts {
		opt(&o)
	}

	center := notify.NewCenter(o.clock, cfg.NotificationDuration())
	for _, fn := range o.listen {
		center.Subscribe(fn)
	}

	medium := o.medium
	var openErr error
	if medium == nil {
		db, err := store.OpenSQLite(cfg.DataPath())
		if err != nil {
			log.WithError(err).WithField("path", cfg.DataPath()).Warn("workspace: data file unavailable")
			openErr = err
		} else {
			medium = db
		}
	}

	st := store.New(medium)
	st.OnFailure(func(err error) {
		center.Notify(notify.Warning, "Could not save changes; they are kept until you quit")
	})
	if openErr != nil {
		center.Notify(notify.Warning, "Storage unavailable; changes will only last this session")
	}

	ws := &Workspace{
		Config:  cfg,
		Store:   st,
		Notices: center,
		Clock:   o.clock,
		money:   cli.Money(cfg.General.CurrencySymbol),
	}
	ws.Budget = budget.NewTracker(budget.Deps{
		Store:               st,
		Notifier:            center,
		Clock:               o.clock,
		IDs:                 o.ids,
		Money:               ws.Money,
		GoalReachedDuration: cfg.GoalReachedDuration(),
	})
	ws.Tasks = tasks.NewManager(tasks.Deps{
		Store:    st,
		Notifier: center,
		Clock:    o.clock,
		IDs:      o.ids,
		Colors:   o.colors,
	})
	ws.Tasks.RefreshStreaks()
	return ws
}

// Money formats an amount with the configured currency symbol.
func (w *Workspace) Money(d decimal.Decimal) string {
	return w.money(d)
}

// Reconfigure applies settings that can change while running: the
// currency symbol and the notice durations.
func (w *Workspace) Reconfigure(cfg config.Config) {
	w.Config = cfg
	w.money = cli.Money(cfg.General.CurrencySymbol)
	w.Notices.SetDuration(cfg.NotificationDuration())
	w.Budget.SetGoalReachedDuration(cfg.GoalReachedDuration())
}

// Close releases the store.
func (w *Workspace) Close() error {
	return w.Store.Close()
}
