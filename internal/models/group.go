package models

// Role is a member's role within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// GroupMember is one user's membership in a group.
type GroupMember struct {
	UserID   string
	Role     Role
	JoinedAt int64
}

// Group represents a named set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates").
	Name string

	// Description is an optional longer description.
	Description string

	// CreatedBy is the user who created the group; they are always a member
	// with the admin role.
	CreatedBy string

	// Members is the ordered member list.
	Members []GroupMember

	// Comments is the append-only group discussion thread.
	Comments []Comment

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user is a group admin.
func (g *Group) IsAdmin(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID && m.Role == RoleAdmin {
			return true
		}
	}
	return false
}

// MemberIDs returns the member user ids in member order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
