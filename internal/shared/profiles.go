package shared

import "strings"

// User profiles. The profile tag is stored on usuario.perfil.
const (
	ProfileCustomer = "cliente"
	ProfileManager  = "gerente"
	ProfileAdmin    = "admin"
)

// Profiles lists every known profile tag.
func Profiles() []string {
	return []string{ProfileCustomer, ProfileManager, ProfileAdmin}
}

// ValidProfile reports whether p is a known profile tag.
func ValidProfile(p string) bool {
	p = strings.TrimSpace(strings.ToLower(p))
	for _, known := range Profiles() {
		if p == known {
			return true
		}
	}
	return false
}
