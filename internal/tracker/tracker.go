package tracker

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"jobtrack/internal/model"
	"jobtrack/internal/stats"
)

// Saver receives the full collection after every committing operation.
type Saver interface {
	Save(apps []model.Application) error
}

type Option func(*Tracker)

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock sets the source of "today" for fresh drafts.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// Tracker owns the collection and every piece of navigation state. It is not
// safe for concurrent use; the UI drives it from a single event loop.
type Tracker struct {
	saver  Saver
	logger *slog.Logger
	now    func() time.Time

	apps   []model.Application
	view   View
	cursor int

	mode      FormMode
	editIndex int
	field     Field
	draft     model.Application
	dropdown  map[Field]int
	dateInput string

	chart    ChartType
	quitting bool
}

func New(apps []model.Application, saver Saver, opts ...Option) *Tracker {
	t := &Tracker{
		saver:    saver,
		logger:   slog.Default(),
		now:      time.Now,
		apps:     append([]model.Application(nil), apps...),
		view:     ViewList,
		field:    FieldCompanyName,
		dropdown: map[Field]int{},
		chart:    ChartByResumeVersion,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.draft = model.NewApplication(model.DateOf(t.now()))
	return t
}

func (t *Tracker) View() View { return t.view }

func (t *Tracker) Len() int { return len(t.apps) }

// Applications returns a copy of the committed collection.
func (t *Tracker) Applications() []model.Application {
	return append([]model.Application(nil), t.apps...)
}

// Cursor returns the list cursor; ok is false when the collection is empty.
func (t *Tracker) Cursor() (int, bool) {
	if len(t.apps) == 0 {
		return 0, false
	}
	return t.cursor, true
}

func (t *Tracker) Selected() (model.Application, bool) {
	i, ok := t.Cursor()
	if !ok {
		return model.Application{}, false
	}
	return t.apps[i], true
}

// Mode reports the form mode and, for ModeEdit, the captured target index.
func (t *Tracker) Mode() (FormMode, int) { return t.mode, t.editIndex }

func (t *Tracker) Field() Field { return t.field }

func (t *Tracker) Draft() model.Application { return t.draft }

func (t *Tracker) DropdownCursor(f Field) int { return t.dropdown[f] }

// DateInput is the partially typed date text for the date field.
func (t *Tracker) DateInput() string { return t.dateInput }

func (t *Tracker) Chart() ChartType { return t.chart }

func (t *Tracker) ShouldQuit() bool { return t.quitting }

func (t *Tracker) ChartSeries() stats.Series {
	switch t.chart {
	case ChartByPlatform:
		return stats.ByPlatform(t.apps)
	case ChartByStatus:
		return stats.ByStatus(t.apps)
	default:
		return stats.ByResumeVersion(t.apps)
	}
}

func (t *Tracker) StartAdd() {
	t.openForm(ModeAdd, 0, model.NewApplication(model.DateOf(t.now())))
	t.dropdown = map[Field]int{
		FieldPlatform:       0,
		FieldStatus:         0,
		FieldResumeModified: 0,
	}
}

func (t *Tracker) StartEdit() {
	if len(t.apps) == 0 || t.view != ViewList {
		return
	}
	draft := t.apps[t.cursor]
	t.openForm(ModeEdit, t.cursor, draft)
	resume := 1
	if draft.ResumeModified {
		resume = 0
	}
	t.dropdown = map[Field]int{
		FieldPlatform:       draft.Platform.PresetIndex(),
		FieldStatus:         draft.Status.Index(),
		FieldResumeModified: resume,
	}
}

func (t *Tracker) openForm(mode FormMode, index int, draft model.Application) {
	t.view = ViewForm
	t.mode = mode
	t.editIndex = index
	t.field = FieldCompanyName
	t.draft = draft
	t.dateInput = ""
}

// CommitForm writes the draft into the collection and saves. An empty company
// name leaves the form open without error. A save failure is returned after
// the in-memory change has been applied.
func (t *Tracker) CommitForm() error {
	if t.view != ViewForm {
		return nil
	}
	if strings.TrimSpace(t.draft.CompanyName) == "" {
		return nil
	}
	switch t.mode {
	case ModeEdit:
		if t.editIndex < 0 || t.editIndex >= len(t.apps) {
			return fmt.Errorf("edit target %d out of range (%d records)", t.editIndex, len(t.apps))
		}
		t.apps[t.editIndex] = t.draft
		t.logger.Info("application updated", "index", t.editIndex, "company", t.draft.CompanyName)
	default:
		t.apps = append(t.apps, t.draft)
		t.logger.Info("application added", "index", len(t.apps)-1, "company", t.draft.CompanyName)
	}
	t.view = ViewList
	return t.save()
}

func (t *Tracker) CancelForm() {
	if t.view != ViewForm {
		return
	}
	t.view = ViewList
	t.draft = model.NewApplication(model.DateOf(t.now()))
	t.dateInput = ""
}

func (t *Tracker) DeleteSelected() error {
	if len(t.apps) == 0 || t.view != ViewList {
		return nil
	}
	removed := t.apps[t.cursor]
	t.apps = append(t.apps[:t.cursor], t.apps[t.cursor+1:]...)
	if t.cursor >= len(t.apps) && t.cursor > 0 {
		t.cursor--
	}
	t.logger.Info("application deleted", "company", removed.CompanyName, "remaining", len(t.apps))
	return t.save()
}

func (t *Tracker) SelectPrevious() {
	if len(t.apps) == 0 {
		return
	}
	if t.cursor > 0 {
		t.cursor--
	}
}

func (t *Tracker) SelectNext() {
	if len(t.apps) == 0 {
		return
	}
	if t.cursor < len(t.apps)-1 {
		t.cursor++
	}
}

func (t *Tracker) ShowChart() {
	t.view = ViewChart
	t.chart = ChartByResumeVersion
}

func (t *Tracker) NextChart() {
	if t.view != ViewChart {
		return
	}
	t.chart = t.chart.Next()
}

func (t *Tracker) ShowList() {
	if t.view != ViewChart {
		return
	}
	t.view = ViewList
}

func (t *Tracker) Quit() {
	t.quitting = true
}

func (t *Tracker) save() error {
	if t.saver == nil {
		return nil
	}
	if err := t.saver.Save(t.apps); err != nil {
		t.logger.Error("save failed", "error", err, "count", len(t.apps))
		return err
	}
	return nil
}
