package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Status int

const (
	StatusApplied Status = iota
	StatusInterview
	StatusOffer
	StatusRejected
)

var statusNames = []string{"Applied", "Interview", "Offer", "Rejected"}

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Index returns the position of s in Statuses, or 0 when s is unknown.
func (s Status) Index() int {
	if s < 0 || int(s) >= len(statusNames) {
		return 0
	}
	return int(s)
}

func ParseStatus(v string) (Status, error) {
	for i, name := range statusNames {
		if name == v {
			return Status(i), nil
		}
	}
	return StatusApplied, fmt.Errorf("unknown status %q", v)
}

func (s Status) MarshalJSON() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return json.Marshal(statusNames[s])
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	parsed, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type PlatformKind int

const (
	PlatformLinkedIn PlatformKind = iota
	PlatformIndeed
	PlatformCompanyWebsite
	PlatformOther
)

// Platform is one of the named presets or a custom value carried in Custom
// when Kind is PlatformOther.
type Platform struct {
	Kind   PlatformKind
	Custom string
}

var (
	LinkedIn       = Platform{Kind: PlatformLinkedIn}
	Indeed         = Platform{Kind: PlatformIndeed}
	CompanyWebsite = Platform{Kind: PlatformCompanyWebsite}
)

func OtherPlatform(text string) Platform {
	return Platform{Kind: PlatformOther, Custom: text}
}

// PlatformPresets lists the dropdown labels; the last entry is the custom slot.
func PlatformPresets() []string {
	return []string{"LinkedIn", "Indeed", "Company Website", "Other"}
}

// ParsePlatform maps a preset label to its platform. Anything else is a
// custom platform carrying the label as its text.
func ParsePlatform(label string) Platform {
	switch label {
	case "LinkedIn":
		return LinkedIn
	case "Indeed":
		return Indeed
	case "Company Website":
		return CompanyWebsite
	default:
		return OtherPlatform(label)
	}
}

func (p Platform) IsOther() bool {
	return p.Kind == PlatformOther
}

// PresetIndex returns the dropdown position of p. Custom platforms resolve to
// the trailing "Other" slot.
func (p Platform) PresetIndex() int {
	switch p.Kind {
	case PlatformLinkedIn:
		return 0
	case PlatformIndeed:
		return 1
	case PlatformCompanyWebsite:
		return 2
	default:
		return len(PlatformPresets()) - 1
	}
}

func (p Platform) String() string {
	switch p.Kind {
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformIndeed:
		return "Indeed"
	case PlatformCompanyWebsite:
		return "Company Website"
	default:
		return p.Custom
	}
}

var platformTags = map[PlatformKind]string{
	PlatformLinkedIn:       "LinkedIn",
	PlatformIndeed:         "Indeed",
	PlatformCompanyWebsite: "CompanyWebsite",
}

const otherTag = "Other"

// MarshalJSON writes named presets as a bare tag and custom platforms as
// {"Other": "<text>"}.
func (p Platform) MarshalJSON() ([]byte, error) {
	if p.Kind == PlatformOther {
		return json.Marshal(map[string]string{otherTag: p.Custom})
	}
	tag, ok := platformTags[p.Kind]
	if !ok {
		return nil, fmt.Errorf("invalid platform kind %d", int(p.Kind))
	}
	return json.Marshal(tag)
}

func (p *Platform) UnmarshalJSON(b []byte) error {
	var tag string
	if err := json.Unmarshal(b, &tag); err == nil {
		for kind, name := range platformTags {
			if name == tag {
				*p = Platform{Kind: kind}
				return nil
			}
		}
		return fmt.Errorf("unknown platform %q", tag)
	}
	var tagged map[string]string
	if err := json.Unmarshal(b, &tagged); err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	custom, ok := tagged[otherTag]
	if !ok || len(tagged) != 1 {
		return errors.New("platform: expected a preset tag or {\"Other\": text}")
	}
	*p = OtherPlatform(custom)
	return nil
}

// Application is one tracked job application. It has no identity of its own;
// callers address it by position in the collection.
type Application struct {
	CompanyName    string   `json:"company_name"`
	Platform       Platform `json:"platform"`
	ResumeModified bool     `json:"resume_modified"`
	ResumeVersion  string   `json:"resume_version"`
	Status         Status   `json:"status"`
	AppliedDate    Date     `json:"applied_date"`
	Notes          string   `json:"notes"`
}

func NewApplication(today Date) Application {
	return Application{
		Platform:    LinkedIn,
		Status:      StatusApplied,
		AppliedDate: today,
	}
}
