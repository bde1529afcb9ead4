package tracker

import (
	"jobtrack/internal/model"
)

const maxDateInput = len(model.DateLayout)

func (t *Tracker) NextField() {
	if t.view != ViewForm {
		return
	}
	t.focus(t.field.Next())
}

func (t *Tracker) PrevField() {
	if t.view != ViewForm {
		return
	}
	t.focus(t.field.Prev())
}

func (t *Tracker) focus(f Field) {
	t.field = f
	if f == FieldDate {
		t.dateInput = ""
	}
}

func (t *Tracker) DropdownUp() {
	if t.view != ViewForm || !t.field.HasDropdown() {
		return
	}
	if t.dropdown[t.field] > 0 {
		t.dropdown[t.field]--
	}
}

func (t *Tracker) DropdownDown() {
	if t.view != ViewForm || !t.field.HasDropdown() {
		return
	}
	if t.dropdown[t.field] < len(t.field.Options())-1 {
		t.dropdown[t.field]++
	}
}

// CommitField applies the Enter key to the active field: dropdowns copy the
// highlighted option into the draft, every field then advances, and the last
// field commits the whole form.
func (t *Tracker) CommitField() error {
	if t.view != ViewForm {
		return nil
	}
	switch t.field {
	case FieldPlatform:
		idx := t.dropdown[FieldPlatform]
		if idx == len(model.PlatformPresets())-1 {
			// Custom text typed on the Other slot is kept, not reset to the label.
			if !t.draft.Platform.IsOther() || t.draft.Platform.Custom == "" {
				t.draft.Platform = model.OtherPlatform(model.PlatformPresets()[idx])
			}
		} else {
			t.draft.Platform = model.ParsePlatform(model.PlatformPresets()[idx])
		}
	case FieldStatus:
		t.draft.Status = model.Statuses()[t.dropdown[FieldStatus]]
	case FieldResumeModified:
		t.draft.ResumeModified = t.dropdown[FieldResumeModified] == 0
	case FieldNotes:
		return t.CommitForm()
	}
	t.NextField()
	return nil
}

func (t *Tracker) onOtherPlatform() bool {
	return t.dropdown[FieldPlatform] == len(model.PlatformPresets())-1
}

// TypeRune appends r to the active field. j and k are reserved for dropdown
// navigation and never reach the draft.
func (t *Tracker) TypeRune(r rune) {
	if t.view != ViewForm || r == 'j' || r == 'k' {
		return
	}
	switch t.field {
	case FieldCompanyName:
		t.draft.CompanyName += string(r)
	case FieldResumeVersion:
		t.draft.ResumeVersion += string(r)
	case FieldNotes:
		t.draft.Notes += string(r)
	case FieldPlatform:
		if !t.onOtherPlatform() {
			return
		}
		if t.draft.Platform.IsOther() {
			t.draft.Platform.Custom += string(r)
		} else {
			t.draft.Platform = model.OtherPlatform(string(r))
		}
	case FieldDate:
		if (r < '0' || r > '9') && r != '-' {
			return
		}
		if len(t.dateInput) >= maxDateInput {
			return
		}
		t.dateInput += string(r)
		t.applyDateInput()
	}
}

func (t *Tracker) Backspace() {
	if t.view != ViewForm {
		return
	}
	switch t.field {
	case FieldCompanyName:
		t.draft.CompanyName = dropLast(t.draft.CompanyName)
	case FieldResumeVersion:
		t.draft.ResumeVersion = dropLast(t.draft.ResumeVersion)
	case FieldNotes:
		t.draft.Notes = dropLast(t.draft.Notes)
	case FieldPlatform:
		if t.onOtherPlatform() && t.draft.Platform.IsOther() {
			t.draft.Platform.Custom = dropLast(t.draft.Platform.Custom)
		}
	case FieldDate:
		t.dateInput = dropLast(t.dateInput)
		t.applyDateInput()
	}
}

func (t *Tracker) applyDateInput() {
	if d, err := model.ParseDate(t.dateInput); err == nil {
		t.draft.AppliedDate = d
	}
}

func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
