package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/model"
)

type fakeSaver struct {
	saved [][]model.Application
	err   error
}

func (f *fakeSaver) Save(apps []model.Application) error {
	f.saved = append(f.saved, append([]model.Application(nil), apps...))
	return f.err
}

var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

func newTestTracker(apps []model.Application) (*Tracker, *fakeSaver) {
	s := &fakeSaver{}
	return New(apps, s, WithClock(func() time.Time { return fixedNow })), s
}

func records(names ...string) []model.Application {
	out := make([]model.Application, 0, len(names))
	for _, n := range names {
		a := model.NewApplication(model.DateOf(fixedNow))
		a.CompanyName = n
		out = append(out, a)
	}
	return out
}

func typeString(tr *Tracker, s string) {
	for _, r := range s {
		tr.TypeRune(r)
	}
}

func TestSelectNextPreviousInverse(t *testing.T) {
	tr, _ := newTestTracker(records("a", "b", "c", "d"))
	tr.SelectNext()
	tr.SelectNext()

	tr.SelectNext()
	tr.SelectPrevious()
	c, ok := tr.Cursor()
	require.True(t, ok)
	assert.Equal(t, 2, c)

	tr.SelectPrevious()
	tr.SelectNext()
	c, _ = tr.Cursor()
	assert.Equal(t, 2, c)
}

func TestSelectionClampsAtBoundaries(t *testing.T) {
	tr, _ := newTestTracker(records("a", "b"))
	tr.SelectPrevious()
	c, _ := tr.Cursor()
	assert.Equal(t, 0, c)

	tr.SelectNext()
	tr.SelectNext()
	c, _ = tr.Cursor()
	assert.Equal(t, 1, c)
}

func TestSelectionOnEmptyCollection(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.SelectNext()
	tr.SelectPrevious()
	_, ok := tr.Cursor()
	assert.False(t, ok)
}

func TestAddCommitAppends(t *testing.T) {
	tr, saver := newTestTracker(records("a", "b"))
	tr.StartAdd()
	require.Equal(t, ViewForm, tr.View())
	mode, _ := tr.Mode()
	assert.Equal(t, ModeAdd, mode)
	assert.Equal(t, FieldCompanyName, tr.Field())
	assert.Equal(t, model.DateOf(fixedNow), tr.Draft().AppliedDate)

	typeString(tr, "Acme")
	require.NoError(t, tr.CommitForm())

	assert.Equal(t, ViewList, tr.View())
	apps := tr.Applications()
	require.Len(t, apps, 3)
	assert.Equal(t, "Acme", apps[2].CompanyName)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, apps, saver.saved[0])
	c, _ := tr.Cursor()
	assert.Equal(t, 0, c)
}

func TestCommitWithBlankCompanyIsNoop(t *testing.T) {
	tr, saver := newTestTracker(records("a"))
	tr.StartAdd()
	typeString(tr, "   ")
	require.NoError(t, tr.CommitForm())

	assert.Equal(t, ViewForm, tr.View())
	assert.Equal(t, 1, tr.Len())
	assert.Empty(t, saver.saved)
}

func TestEditCommitReplacesOnlyTarget(t *testing.T) {
	orig := records("a", "b", "c")
	tr, _ := newTestTracker(orig)
	tr.SelectNext()
	tr.StartEdit()
	mode, idx := tr.Mode()
	require.Equal(t, ModeEdit, mode)
	require.Equal(t, 1, idx)

	tr.Backspace()
	typeString(tr, "eta")
	require.NoError(t, tr.CommitForm())

	apps := tr.Applications()
	require.Len(t, apps, 3)
	assert.Equal(t, orig[0], apps[0])
	assert.Equal(t, "eta", apps[1].CompanyName)
	assert.Equal(t, orig[2], apps[2])
}

func TestStartEditOnEmptyIsNoop(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartEdit()
	assert.Equal(t, ViewList, tr.View())
}

func TestStartEditDerivesDropdownCursors(t *testing.T) {
	apps := records("a", "b")
	apps[0].Platform = model.OtherPlatform("Referral")
	apps[0].Status = model.StatusOffer
	apps[0].ResumeModified = true
	apps[1].Platform = model.Indeed
	tr, _ := newTestTracker(apps)

	tr.StartEdit()
	assert.Equal(t, 3, tr.DropdownCursor(FieldPlatform))
	assert.Equal(t, 2, tr.DropdownCursor(FieldStatus))
	assert.Equal(t, 0, tr.DropdownCursor(FieldResumeModified))

	tr.CancelForm()
	tr.SelectNext()
	tr.StartEdit()
	assert.Equal(t, 1, tr.DropdownCursor(FieldPlatform))
	assert.Equal(t, 0, tr.DropdownCursor(FieldStatus))
	assert.Equal(t, 1, tr.DropdownCursor(FieldResumeModified))
}

func TestCancelDiscardsDraft(t *testing.T) {
	tr, saver := newTestTracker(records("a"))
	tr.StartEdit()
	typeString(tr, "zzz")
	tr.CancelForm()

	assert.Equal(t, ViewList, tr.View())
	assert.Equal(t, "a", tr.Applications()[0].CompanyName)
	assert.Empty(t, saver.saved)
}

func TestCommitSaveFailureKeepsMutation(t *testing.T) {
	tr, saver := newTestTracker(nil)
	saver.err = errors.New("disk full")
	tr.StartAdd()
	typeString(tr, "Acme")

	err := tr.CommitForm()
	require.Error(t, err)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, ViewList, tr.View())
}

func TestDeleteSingleElement(t *testing.T) {
	tr, saver := newTestTracker(records("a"))
	require.NoError(t, tr.DeleteSelected())
	assert.Equal(t, 0, tr.Len())
	_, ok := tr.Cursor()
	assert.False(t, ok)
	require.Len(t, saver.saved, 1)
	assert.Empty(t, saver.saved[0])
}

func TestDeleteLastMovesCursorBack(t *testing.T) {
	tr, _ := newTestTracker(records("a", "b", "c"))
	tr.SelectNext()
	tr.SelectNext()
	require.NoError(t, tr.DeleteSelected())
	c, _ := tr.Cursor()
	assert.Equal(t, 1, c)
	assert.Equal(t, []string{"a", "b"}, names(tr.Applications()))
}

func TestDeleteInteriorKeepsCursor(t *testing.T) {
	tr, _ := newTestTracker(records("a", "b", "c"))
	tr.SelectNext()
	require.NoError(t, tr.DeleteSelected())
	c, _ := tr.Cursor()
	assert.Equal(t, 1, c)
	assert.Equal(t, []string{"a", "c"}, names(tr.Applications()))
}

func TestDeleteOnEmptyIsNoop(t *testing.T) {
	tr, saver := newTestTracker(nil)
	require.NoError(t, tr.DeleteSelected())
	assert.Empty(t, saver.saved)
}

func TestFieldCycling(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	for _, start := range Fields() {
		tr.field = start
		for i := 0; i < len(Fields()); i++ {
			tr.NextField()
		}
		assert.Equal(t, start, tr.Field())

		tr.NextField()
		tr.PrevField()
		assert.Equal(t, start, tr.Field())
	}

	tr.field = FieldCompanyName
	tr.PrevField()
	assert.Equal(t, FieldNotes, tr.Field())
}

func TestChartCycling(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.ShowChart()
	require.Equal(t, ViewChart, tr.View())
	start := tr.Chart()
	tr.NextChart()
	assert.NotEqual(t, start, tr.Chart())
	tr.NextChart()
	tr.NextChart()
	assert.Equal(t, start, tr.Chart())

	tr.NextChart()
	tr.ShowList()
	tr.ShowChart()
	assert.Equal(t, ChartByResumeVersion, tr.Chart())
}

func TestDropdownClampsAndIsPreservedAcrossNavigation(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	tr.NextField()
	require.Equal(t, FieldPlatform, tr.Field())

	tr.DropdownUp()
	assert.Equal(t, 0, tr.DropdownCursor(FieldPlatform))
	for i := 0; i < 10; i++ {
		tr.DropdownDown()
	}
	assert.Equal(t, 3, tr.DropdownCursor(FieldPlatform))

	tr.NextField()
	tr.DropdownDown()
	tr.DropdownDown()
	assert.Equal(t, 1, tr.DropdownCursor(FieldResumeModified))

	tr.PrevField()
	assert.Equal(t, 3, tr.DropdownCursor(FieldPlatform))
	assert.Equal(t, 1, tr.DropdownCursor(FieldResumeModified))

	tr.field = FieldCompanyName
	tr.DropdownDown()
	assert.Equal(t, 3, tr.DropdownCursor(FieldPlatform))
}

func TestCommitFieldCopiesDropdownOptions(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	typeString(tr, "Acme")
	require.NoError(t, tr.CommitField())
	require.Equal(t, FieldPlatform, tr.Field())

	tr.DropdownDown()
	require.NoError(t, tr.CommitField())
	assert.Equal(t, model.Indeed, tr.Draft().Platform)
	require.Equal(t, FieldResumeModified, tr.Field())

	require.NoError(t, tr.CommitField())
	assert.True(t, tr.Draft().ResumeModified)
	require.Equal(t, FieldResumeVersion, tr.Field())

	typeString(tr, "v3")
	require.NoError(t, tr.CommitField())
	require.Equal(t, FieldStatus, tr.Field())
	tr.DropdownDown()
	tr.DropdownDown()
	tr.DropdownDown()
	require.NoError(t, tr.CommitField())
	assert.Equal(t, model.StatusRejected, tr.Draft().Status)
	require.Equal(t, FieldDate, tr.Field())

	require.NoError(t, tr.CommitField())
	require.Equal(t, FieldNotes, tr.Field())
	typeString(tr, "done")
	require.NoError(t, tr.CommitField())

	assert.Equal(t, ViewList, tr.View())
	apps := tr.Applications()
	require.Len(t, apps, 1)
	assert.Equal(t, "Acme", apps[0].CompanyName)
	assert.Equal(t, "v3", apps[0].ResumeVersion)
	assert.Equal(t, "done", apps[0].Notes)
	assert.Equal(t, model.StatusRejected, apps[0].Status)
}

func TestTextInputSkipsJK(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	typeString(tr, "jakob k")
	assert.Equal(t, "aob ", tr.Draft().CompanyName)
	tr.Backspace()
	assert.Equal(t, "aob", tr.Draft().CompanyName)
}

func TestOtherPlatformTextInput(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	tr.NextField()

	typeString(tr, "Xing")
	assert.Equal(t, model.LinkedIn, tr.Draft().Platform, "text ignored outside Other")

	tr.DropdownDown()
	tr.DropdownDown()
	tr.DropdownDown()
	typeString(tr, "Wellfound")
	assert.Equal(t, model.OtherPlatform("Wellfound"), tr.Draft().Platform)
	tr.Backspace()
	assert.Equal(t, "Wellfoun", tr.Draft().Platform.Custom)

	require.NoError(t, tr.CommitField())
	assert.Equal(t, model.OtherPlatform("Wellfoun"), tr.Draft().Platform)
}

func TestOtherPlatformCommitWithoutText(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	tr.NextField()
	for i := 0; i < 3; i++ {
		tr.DropdownDown()
	}
	require.NoError(t, tr.CommitField())
	assert.Equal(t, model.OtherPlatform("Other"), tr.Draft().Platform)
}

func TestInvalidDateInputLeavesDraftDate(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	for tr.Field() != FieldDate {
		tr.NextField()
	}
	before := tr.Draft().AppliedDate
	typeString(tr, "2024-13-45")
	assert.Equal(t, before, tr.Draft().AppliedDate)
	assert.Equal(t, "2024-13-45", tr.DateInput())
}

func TestUnpaddedDateInputParses(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	for tr.Field() != FieldDate {
		tr.NextField()
	}
	typeString(tr, "2024-1-5")
	assert.Equal(t, model.Date{Year: 2024, Month: time.January, Day: 5}, tr.Draft().AppliedDate)
}

func TestValidDateInputSticks(t *testing.T) {
	tr, _ := newTestTracker(nil)
	tr.StartAdd()
	for tr.Field() != FieldDate {
		tr.NextField()
	}
	typeString(tr, "2023/11-0x2")
	assert.Equal(t, "202311-02", tr.DateInput())
	assert.Equal(t, model.DateOf(fixedNow), tr.Draft().AppliedDate)

	for range "202311-02" {
		tr.Backspace()
	}
	typeString(tr, "2023-11-02")
	assert.Equal(t, model.Date{Year: 2023, Month: time.November, Day: 2}, tr.Draft().AppliedDate)

	typeString(tr, "9")
	assert.Equal(t, "2023-11-02", tr.DateInput(), "buffer is capped at the layout length")

	tr.PrevField()
	tr.NextField()
	assert.Equal(t, "", tr.DateInput())
	assert.Equal(t, model.Date{Year: 2023, Month: time.November, Day: 2}, tr.Draft().AppliedDate)
}

func TestQuit(t *testing.T) {
	tr, _ := newTestTracker(nil)
	assert.False(t, tr.ShouldQuit())
	tr.Quit()
	assert.True(t, tr.ShouldQuit())
}

func TestChartSeriesFollowsChartType(t *testing.T) {
	apps := records("Acme", "Beta")
	apps[1].Status = model.StatusOffer
	tr, _ := newTestTracker(apps)
	tr.ShowChart()
	assert.Equal(t, "None", tr.ChartSeries().Bars[0].Label)
	tr.NextChart()
	assert.Equal(t, "LinkedIn", tr.ChartSeries().Bars[0].Label)
	tr.NextChart()
	assert.Len(t, tr.ChartSeries().Bars, 4)
}

func names(apps []model.Application) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.CompanyName)
	}
	return out
}
