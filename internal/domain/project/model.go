package project

// Type classifies what a project is for.
type Type string

const (
	TypePersonal Type = "personal"
	TypeSell     Type = "sell"
)

// Valid reports whether t is a known project type.
func (t Type) Valid() bool {
	return t == TypePersonal || t == TypeSell
}

// Status is the lifecycle state of a project.
type Status string

const (
	StatusIdea       Status = "idea"
	StatusInProgress Status = "in_progress"
	StatusLive       Status = "live"
	StatusAbandoned  Status = "abandoned"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusIdea, StatusInProgress, StatusLive, StatusAbandoned:
		return true
	}
	return false
}

// Stage is the optional go-to-market stage of a project.
type Stage string

const (
	StageIdea   Stage = "Idea"
	StageBuild  Stage = "Build"
	StageLaunch Stage = "Launch"
	StageMarket Stage = "Market"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageIdea, StageBuild, StageLaunch, StageMarket}

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageIdea, StageBuild, StageLaunch, StageMarket:
		return true
	}
	return false
}

const (
	MinUsefulness     = 1
	MaxUsefulness     = 5
	DefaultUsefulness = 3

	MinProgress = 0
	MaxProgress = 100
)

// Project is a tracked side project. JSON names match the CSV column names.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Summary     string   `json:"summary,omitempty"`
	Type        Type     `json:"type"`
	Usefulness  int      `json:"usefulness"`
	Status      Status   `json:"status"`
	Stage       Stage    `json:"stage,omitempty"`
	IsMonetized bool     `json:"isMonetized"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	WebsiteURL  string   `json:"websiteUrl,omitempty"`
	NextAction  string   `json:"nextAction,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Progress    *int     `json:"progress,omitempty"`
	ActivityLog []string `json:"activityLog,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ProgressValue returns the progress percentage, treating unset as 0.
func (p Project) ProgressValue() int {
	if p.Progress == nil {
		return 0
	}
	return *p.Progress
}

// HasTag reports whether the project carries tag (byte-exact match).
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without touching shared snapshots.
func (p Project) Clone() Project {
	out := p
	if p.Progress != nil {
		v := *p.Progress
		out.Progress = &v
	}
	if p.ActivityLog != nil {
		out.ActivityLog = append([]string{}, p.ActivityLog...)
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, p.Tags...)
	}
	return out
}

// CloneAll deep-copies a collection.
func CloneAll(projects []Project) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}

// IntPtr is a convenience for optional integer fields.
func IntPtr(v int) *int {
	return &v
}
