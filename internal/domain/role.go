package domain

// Role labels. Role is a free-form string tag (the catalog is admin
// editable) but the built-in labels below carry fixed semantics.
const (
	RolePending      = "대기권한"
	RoleRegular      = "일반대원"
	RoleLeader       = "대장"
	RoleConductor    = "지휘자"
	RolePartLeader   = "파트장"
	RoleMainPianist  = "메인반주"
	RoleSubPianist   = "부반주"
	RoleBoardAdmin   = "게시판 관리자"
	RoleTreasurer    = "총무"
	RoleSecretary    = "서기"
	RoleOpeningHymns = "시작찬송 관리자"
)

// DefaultRoleCatalog seeds the admin-editable role label list
var DefaultRoleCatalog = []string{
	RoleRegular,
	RoleLeader,
	RoleConductor,
	RolePartLeader,
	RoleMainPianist,
	RoleSubPianist,
	RoleBoardAdmin,
	RoleTreasurer,
	RoleSecretary,
	RoleOpeningHymns,
}

// Capability is one gated action group. Capabilities are resolved exactly
// once per session from the role, so no handler re-derives its own
// "isAdmin" predicate.
type Capability string

const (
	CapManageMembers      Capability = "manage_members"
	CapManageAttendance   Capability = "manage_attendance"
	CapManageBoards       Capability = "manage_boards"
	CapManageHymns        Capability = "manage_hymns"
	CapManageOpeningHymns Capability = "manage_opening_hymns"
	CapManageSchedule     Capability = "manage_schedule"
	CapManageSettings     Capability = "manage_settings"
)

// CapabilitySet is the resolved capability set of one session
type CapabilitySet map[Capability]bool

// Has reports whether the set grants cap
func (s CapabilitySet) Has(cap Capability) bool { return s[cap] }

// isTopRole: 대장 and 지휘자 may do everything.
func isTopRole(role string) bool {
	return role == RoleLeader || role == RoleConductor
}

// CapabilitiesFor maps a role label to its capability set. The original UI
// gated hymn editing on 대장/지휘자/"…관리자", opening hymns on
// 대장/지휘자/시작찬송 관리자 and board management on the board admin; those
// three scattered predicates are folded in here.
func CapabilitiesFor(role string) CapabilitySet {
	caps := CapabilitySet{}
	if role == "" || role == RolePending {
		return caps
	}
	if isTopRole(role) {
		for _, c := range []Capability{
			CapManageMembers, CapManageAttendance, CapManageBoards,
			CapManageHymns, CapManageOpeningHymns, CapManageSchedule,
			CapManageSettings,
		} {
			caps[c] = true
		}
		return caps
	}
	switch role {
	case RoleBoardAdmin:
		caps[CapManageBoards] = true
	case RoleOpeningHymns:
		caps[CapManageOpeningHymns] = true
	case RoleTreasurer, RoleSecretary:
		caps[CapManageAttendance] = true
	}
	return caps
}
