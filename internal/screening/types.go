// Package screening implements the record-normalization and
// match-classification engine.
//
// Uploaded rows are reduced to a normalized (name, company) key and checked
// against two reference groups: IMNEO, which is always restricted, and
// X-CLIENT, whose outcome depends on the operating mode of the request.
// The reference groups are built once at startup and never mutated, so
// concurrent requests share them without locking.
package screening

// Statuses and fill colors, one pair per classification outcome.
const (
	StatusImneo            = "IMNEO Match (Restricted)"
	StatusXClientCandidate = "X-Client Match (Candidate Mode)"
	StatusXClientRelation  = "X-Client Match (Client/Relation)"
	StatusSafe             = "Safe"

	ColorRed    = "FF0000"
	ColorYellow = "FFFF00"
	ColorWhite  = "FFFFFF"
)

// Mode is the request-scoped operating mode. It alters only the X-CLIENT
// outcome, never IMNEO.
type Mode string

const (
	ModeCandidate Mode = "candidate"
	ModeClient    Mode = "client"
)

// ParseMode maps a form value to a Mode. Only the exact value "candidate"
// selects candidate mode; anything else, including an absent value, is
// treated as client.
func ParseMode(s string) Mode {
	if s == string(ModeCandidate) {
		return ModeCandidate
	}
	return ModeClient
}

// Set holds normalized keys. The empty key never enters a set and never
// matches, so "no detectable value" rows can be tested like any other.
type Set map[string]struct{}

// NewSet returns an empty, ready-to-use set.
func NewSet() Set {
	return make(Set)
}

// Add inserts a normalized key. Empty keys are ignored.
func (s Set) Add(key string) {
	if key == "" {
		return
	}
	s[key] = struct{}{}
}

// Contains reports whether key is in the set.
func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys in the set.
func (s Set) Len() int {
	return len(s)
}

// Group is one reference group: a name and two sets of normalized keys.
// Groups are built once during startup and read-only afterwards.
type Group struct {
	Name      string
	Names     Set
	Companies Set
}

// NewGroup returns a Group with empty sets, so membership tests are
// well-defined even when no reference file contributed anything.
func NewGroup(name string) Group {
	return Group{
		Name:      name,
		Names:     NewSet(),
		Companies: NewSet(),
	}
}

// Matches reports whether the key's name or company is in the group.
// Empty key components never match.
func (g Group) Matches(k Key) bool {
	if k.Name != "" && g.Names.Contains(k.Name) {
		return true
	}
	return k.Company != "" && g.Companies.Contains(k.Company)
}

// Groups bundles the two reference groups every classification reads.
type Groups struct {
	Imneo   Group
	XClient Group
}

// EmptyGroups returns Groups with all four sets empty. Used when the
// reference folder is absent: the system still serves requests, it just
// finds no matches.
func EmptyGroups() Groups {
	return Groups{
		Imneo:   NewGroup("IMNEO"),
		XClient: NewGroup("X-CLIENT"),
	}
}

// Key is the canonical (name, company) pair derived from one row.
// Either component may be empty; empty components never match.
type Key struct {
	Name    string
	Company string
}

// Outcome is the classification of one row: a status label and the
// background fill color for the report. Row is the 1-based data row the
// outcome belongs to, matching the uploaded file minus its header.
type Outcome struct {
	Row    int    `json:"row"`
	Status string `json:"status"`
	Color  string `json:"color"`
}
