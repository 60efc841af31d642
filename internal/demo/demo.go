// Package demo fills a workspace with plausible sample data.
package demo

import (
	"time"

	"github.com/theirongolddev/planbook/internal/budget"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/tasks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Options control how much data is generated. Zero fields get defaults.
type Options struct {
	Seed     int64
	Days     int
	Expenses int
	Tasks    int
}

// Result counts what was created.
type Result struct {
	Expenses int
	Goals    int
	Tasks    int
	Habits   int
}

var (
	savingsGoals = []struct {
		name, icon string
		target     int64
	}{
		{"Vacation", "🏖️", 60000},
		{"New laptop", "💻", 90000},
		{"Emergency fund", "🛟", 100000},
	}

	habitNames = []string{"Morning run", "Read 20 pages", "Drink water", "Meditate", "No sugar"}
	goalKinds  = []string{"tasks", "habits", "custom"}
)

func (o *Options) defaults() {
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Days <= 0 {
		o.Days = 30
	}
	if o.Expenses <= 0 {
		o.Expenses = 25
	}
	if o.Tasks <= 0 {
		o.Tasks = 8
	}
}

// Seed generates data through the regular tracker and manager operations,
// so balances and streaks come out consistent.
func Seed(bt *budget.Tracker, tm *tasks.Manager, now time.Time, opts Options) (Result, error) {
	opts.defaults()
	f := gofakeit.New(opts.Seed)
	today := model.DateOf(now)
	var res Result

	categories := model.Categories()
	for range opts.Expenses {
		amount := decimal.NewFromFloat(f.Price(80, 2500)).Round(0)
		if amount.GreaterThan(bt.Balance()) {
			break
		}
		_, err := bt.AddExpense(budget.ExpenseInput{
			Amount:      amount,
			Category:    categories[f.Number(0, len(categories)-1)],
			Date:        today.AddDays(-f.Number(0, opts.Days-1)),
			Description: f.Sentence(3),
		})
		if err != nil {
			return res, err
		}
		res.Expenses++
	}

	for i := f.Number(1, len(savingsGoals)); i > 0; i-- {
		sg := savingsGoals[i-1]
		deadline := today.AddDays(f.Number(60, 365))
		g, err := bt.AddSavingsGoal(budget.GoalInput{
			Name:     sg.name,
			Target:   decimal.NewFromInt(sg.target),
			Deadline: &deadline,
			Icon:     sg.icon,
		})
		if err != nil {
			return res, err
		}
		res.Goals++
		fund := decimal.NewFromInt(int64(f.Number(5, 40)) * 100)
		if fund.LessThanOrEqual(bt.Balance()) {
			if _, err := bt.AddToSavings(g.ID, fund); err != nil {
				return res, err
			}
		}
	}

	taskCategories := model.TaskCategories()
	priorities := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	for range opts.Tasks {
		t, err := tm.AddTask(tasks.TaskInput{
			Text:     f.HackerVerb() + " " + f.Noun(),
			Category: taskCategories[f.Number(0, len(taskCategories)-1)],
			Priority: priorities[f.Number(0, len(priorities)-1)],
			Date:     today.AddDays(f.Number(-3, 7)),
		})
		if err != nil {
			return res, err
		}
		res.Tasks++
		if t.Date <= today && f.Bool() {
			tm.ToggleTask(t.ID)
		}
	}

	frequencies := []model.Frequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyWeekdays}
	names := append([]string(nil), habitNames...)
	f.ShuffleStrings(names)
	for _, name := range names[:3] {
		h, err := tm.AddHabit(name, frequencies[f.Number(0, len(frequencies)-1)])
		if err != nil {
			return res, err
		}
		res.Habits++
		for back := 13; back >= 0; back-- {
			if f.Number(0, 99) < 70 {
				tm.ToggleHabit(h.ID, today.AddDays(-back))
			}
		}
	}

	for i, kind := range goalKinds[:2] {
		g, err := tm.AddGoal(f.Hobby(), kind, 10*(i+1))
		if err != nil {
			return res, err
		}
		tm.AdvanceGoal(g.ID, f.Number(1, g.Target))
	}

	log.WithFields(log.Fields{
		"seed":     opts.Seed,
		"expenses": res.Expenses,
		"tasks":    res.Tasks,
		"habits":   res.Habits,
	}).Debug("demo: seeded workspace")
	return res, nil
}
