package tracker

import "jobtrack/internal/model"

type View int

const (
	ViewList View = iota
	ViewForm
	ViewChart
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "Form"
	case ViewChart:
		return "Chart"
	default:
		return "List"
	}
}

type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

type Field int

const (
	FieldCompanyName Field = iota
	FieldPlatform
	FieldResumeModified
	FieldResumeVersion
	FieldStatus
	FieldDate
	FieldNotes
)

var fieldOrder = []Field{
	FieldCompanyName,
	FieldPlatform,
	FieldResumeModified,
	FieldResumeVersion,
	FieldStatus,
	FieldDate,
	FieldNotes,
}

// Fields returns the form fields in their fixed cyclic order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

func (f Field) position() int {
	for i, v := range fieldOrder {
		if v == f {
			return i
		}
	}
	return 0
}

func (f Field) Next() Field {
	return fieldOrder[(f.position()+1)%len(fieldOrder)]
}

func (f Field) Prev() Field {
	return fieldOrder[(f.position()+len(fieldOrder)-1)%len(fieldOrder)]
}

func (f Field) Label() string {
	switch f {
	case FieldPlatform:
		return "Platform"
	case FieldResumeModified:
		return "Resume Modified"
	case FieldResumeVersion:
		return "Resume Version"
	case FieldStatus:
		return "Status"
	case FieldDate:
		return "Application Date"
	case FieldNotes:
		return "Notes"
	default:
		return "Company Name"
	}
}

// Options returns the dropdown labels for a dropdown-bearing field, nil otherwise.
func (f Field) Options() []string {
	switch f {
	case FieldPlatform:
		return model.PlatformPresets()
	case FieldStatus:
		out := make([]string, 0, len(model.Statuses()))
		for _, s := range model.Statuses() {
			out = append(out, s.String())
		}
		return out
	case FieldResumeModified:
		return []string{"Yes", "No"}
	default:
		return nil
	}
}

func (f Field) HasDropdown() bool {
	return f == FieldPlatform || f == FieldStatus || f == FieldResumeModified
}

type ChartType int

const (
	ChartByResumeVersion ChartType = iota
	ChartByPlatform
	ChartByStatus
)

var chartOrder = []ChartType{ChartByResumeVersion, ChartByPlatform, ChartByStatus}

func (c ChartType) Next() ChartType {
	for i, v := range chartOrder {
		if v == c {
			return chartOrder[(i+1)%len(chartOrder)]
		}
	}
	return chartOrder[0]
}

func (c ChartType) Title() string {
	switch c {
	case ChartByPlatform:
		return "Applications by Platform"
	case ChartByStatus:
		return "Applications by Status"
	default:
		return "Applications by Resume Version"
	}
}

func (c ChartType) AxisLabel() string {
	switch c {
	case ChartByPlatform:
		return "Count by Platform"
	case ChartByStatus:
		return "Count by Status"
	default:
		return "Count by Resume Version"
	}
}
