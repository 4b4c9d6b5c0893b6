package config

// Role represents the closed set of user roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Capability represents an action gated by role
type Capability string

const (
	CapWriteEntries Capability = "write_entries"
	CapListUsers    Capability = "list_users"
)

// roleCapabilities maps each role to the capabilities it grants
var roleCapabilities = map[Role][]Capability{
	RoleUser:  {CapWriteEntries},
	RoleAdmin: {CapWriteEntries, CapListUsers},
}

// Valid reports whether the role belongs to the closed set
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants the given capability
func (r Role) Can(capability Capability) bool {
	for _, c := range roleCapabilities[r] {
		if c == capability {
			return true
		}
	}
	return false
}
