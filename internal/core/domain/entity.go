package domain

import "time"

// EntityKind discriminates the content types managed by the backoffice.
// A single entities table replaces the per-type tables of the old schema;
// the capability table below says which optional fields each kind carries.
type EntityKind string

const (
	KindService     EntityKind = "service"
	KindProject     EntityKind = "project"
	KindTeamMember  EntityKind = "team_member"
	KindHomeDomain  EntityKind = "home_domain"
	KindAboutMember EntityKind = "about_member"
)

// Entity is a managed content row shown on the public site. Name is
// required for every kind; the remaining fields apply per capability.
type Entity struct {
	ID          int64
	Kind        EntityKind
	Name        string
	Description string
	Criteria    string
	LinkURL     string
	Category    string
	Title       string
	Icon        string
	Image       string
	Suspended   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Visible reports whether the entity appears on the public site.
func (e *Entity) Visible() bool {
	return e != nil && e.Suspended == 0
}

// Capability describes which optional attributes a kind supports.
type Capability struct {
	HasDescription bool
	HasCriteria    bool
	HasLink        bool
	HasCategory    bool
	HasTitle       bool
	HasIcon        bool
	// HasImage allows an uploaded image asset owned by the row.
	HasImage bool
	// ImagePrefix namespaces stored filenames per kind.
	ImagePrefix string
}

var capabilities = map[EntityKind]Capability{
	KindService: {
		HasDescription: true,
		HasCriteria:    true,
		HasImage:       true,
		ImagePrefix:    "service",
	},
	KindProject: {
		HasDescription: true,
		HasCriteria:    true,
		HasLink:        true,
		HasCategory:    true,
		HasImage:       true,
		ImagePrefix:    "project",
	},
	KindTeamMember: {
		HasTitle:    true,
		HasImage:    true,
		ImagePrefix: "member",
	},
	KindHomeDomain: {
		HasDescription: true,
		HasIcon:        true,
	},
	KindAboutMember: {
		HasDescription: true,
		HasIcon:        true,
	},
}

// KindCapability returns the capability set for kind. The second result is
// false for unknown kinds.
func KindCapability(kind EntityKind) (Capability, bool) {
	cap, ok := capabilities[kind]
	return cap, ok
}
