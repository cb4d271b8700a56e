package fastimport

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultName is the author and committer name used when none is configured.
	DefaultName = "docver[bot]"
	// DefaultEmail is the author and committer email used when none is configured.
	DefaultEmail = "docver[bot]@users.noreply.github.io"
)

// Role is the part a person plays in a commit.
type Role string

// Field is one element of a commit signature.
type Field string

const (
	RoleAuthor    Role = "AUTHOR"
	RoleCommitter Role = "COMMITTER"

	FieldName  Field = "NAME"
	FieldEmail Field = "EMAIL"
	FieldDate  Field = "DATE"
)

// Source is one step of the identity fallback chain.
type Source int

const (
	// SourceOverride is the value set on Identity for the role
	SourceOverride Source = iota
	// SourceEnv is GIT_<ROLE>_<FIELD> from the environment
	SourceEnv
	// SourceAuthor is the already resolved author value for the same field
	SourceAuthor
	// SourceDefault is the built-in bot identity or the current time
	SourceDefault
)

// FallbackChain lists, per role, where each field is looked up, in order.
var FallbackChain = map[Role][]Source{
	RoleAuthor:    {SourceOverride, SourceEnv, SourceDefault},
	RoleCommitter: {SourceOverride, SourceEnv, SourceAuthor, SourceDefault},
}

// Signature is a resolved or partially specified person and time. Empty fields
// are unset. When is rendered verbatim, e.g. "1700000000 +0000".
type Signature struct {
	Name  string
	Email string
	When  string
}

func (s Signature) get(f Field) (string, bool) {
	var v string
	switch f {
	case FieldName:
		v = s.Name
	case FieldEmail:
		v = s.Email
	case FieldDate:
		v = s.When
	}
	return v, v != ""
}

func (s *Signature) set(f Field, v string) {
	switch f {
	case FieldName:
		s.Name = v
	case FieldEmail:
		s.Email = v
	case FieldDate:
		s.When = v
	}
}

// Identity configures the author and committer of a commit. The zero value
// reads the process environment and the wall clock.
//
// Empty Author and Committer fields are unset and fall through to the next
// source, so an empty name cannot be forced here. Set GIT_AUTHOR_NAME or
// GIT_COMMITTER_NAME to an empty string for that.
type Identity struct {
	Author    Signature
	Committer Signature

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// Now defaults to time.Now.
	Now func() time.Time
}

// EnvKey returns the environment variable git uses for role and field.
func EnvKey(role Role, field Field) string {
	return fmt.Sprintf("GIT_%s_%s", role, field)
}

// Resolve returns the author and committer signatures after walking FallbackChain.
func (id Identity) Resolve() (author, committer Signature) {
	fields := []Field{FieldName, FieldEmail, FieldDate}
	for _, f := range fields {
		v := id.resolveField(RoleAuthor, f, Signature{})
		author.set(f, v)
	}
	for _, f := range fields {
		v := id.resolveField(RoleCommitter, f, author)
		committer.set(f, v)
	}
	return author, committer
}

func (id Identity) resolveField(role Role, f Field, author Signature) string {
	override := id.Author
	if role == RoleCommitter {
		override = id.Committer
	}

	for _, src := range FallbackChain[role] {
		switch src {
		case SourceOverride:
			if v, ok := override.get(f); ok {
				return v
			}
		case SourceEnv:
			if v, ok := id.lookupEnv(EnvKey(role, f)); ok {
				return sanitizeIdentityPart(v)
			}
		case SourceAuthor:
			// the author value always resolves, including to an empty name
			return author.fieldValue(f)
		case SourceDefault:
			return id.defaultValue(f)
		}
	}
	return id.defaultValue(f)
}

func (s Signature) fieldValue(f Field) string {
	v, _ := s.get(f)
	return v
}

func (id Identity) lookupEnv(key string) (string, bool) {
	if id.LookupEnv != nil {
		return id.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (id Identity) defaultValue(f Field) string {
	switch f {
	case FieldName:
		return DefaultName
	case FieldEmail:
		return DefaultEmail
	default:
		now := time.Now
		if id.Now != nil {
			now = id.Now
		}
		return FormatWhen(now())
	}
}

// FormatWhen renders t in fast-import's raw date format, always in UTC.
func FormatWhen(t time.Time) string {
	return fmt.Sprintf("%d +0000", t.Unix())
}

// sanitizeIdentityPart strips characters that would let a value escape its
// field in the author and committer lines.
func sanitizeIdentityPart(s string) string {
	return strings.NewReplacer("<", "", ">", "", "\n", "").Replace(s)
}
