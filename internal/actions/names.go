package actions

import (
	"fmt"
	"strings"

	"docver.dev/docver/internal/versions"
)

// ValidateName checks that a version tag or alias can be used as a directory
// name on the deploy branch.
func ValidateName(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s must not be empty", kind)
	case name == "." || name == "..":
		return fmt.Errorf("invalid %s %q", kind, name)
	case strings.ContainsAny(name, "/\\\n"):
		return fmt.Errorf("invalid %s %q: must not contain slashes or newlines", kind, name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("invalid %s %q: must not start or end with whitespace", kind, name)
	case name == ".git" || name == NoJekyllFileName || name == versions.FileName || name == versions.RedirectsFileName:
		return fmt.Errorf("invalid %s %q: reserved name", kind, name)
	}
	return nil
}
