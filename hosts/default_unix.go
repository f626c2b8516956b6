//go:build !windows
// +build !windows

package hosts

// DefaultPath is the system hosts file.
func DefaultPath() string {
	return "/etc/hosts"
}
