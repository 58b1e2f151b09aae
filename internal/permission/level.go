// Package permission resolves a Discord user ID to an authorization level
// derived from the club's membership records, with a TTL cache in front of
// the database.
package permission

// Level is an ordered authorization tier. Higher values carry every
// privilege of the tiers below them; comparisons are plain >=.
type Level int

const (
	Guest           Level = iota // not in the member database
	Member                       // registered member
	CommitteeMember              // member of at least one committee
	ProjectLead                  // leads at least one project
	CommitteeChair               // chairs at least one committee
	Officer                      // any officer role
	Executive                    // executive officer roles only
	Administrator                // full access, includes configured owners
)

var levelNames = map[Level]string{
	Guest:           "Guest",
	Member:          "Member",
	CommitteeMember: "Committee Member",
	ProjectLead:     "Project Lead",
	CommitteeChair:  "Committee Chair",
	Officer:         "Officer",
	Executive:       "Executive",
	Administrator:   "Administrator",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// OfficerRole mirrors the officer_role enum in the members table.
type OfficerRole string

const (
	RoleExecutiveChair     OfficerRole = "executive_chair"
	RoleExecutiveViceChair OfficerRole = "executive_vice_chair"
	RoleExecutiveSecretary OfficerRole = "executive_secretary"
	RoleExecutiveTreasurer OfficerRole = "executive_treasurer"
	RoleCommitteeLead      OfficerRole = "committee_lead"
)

// Executive reports whether the role is one of the four executive positions.
func (r OfficerRole) Executive() bool {
	switch r {
	case RoleExecutiveChair, RoleExecutiveViceChair, RoleExecutiveSecretary, RoleExecutiveTreasurer:
		return true
	}
	return false
}
