package fastimport_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docver.dev/docver/internal/fastimport"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestIdentityResolve(t *testing.T) {
	now := func() time.Time { return time.Unix(1234, 0) }

	t.Run("defaults to the bot identity and the current time", func(t *testing.T) {
		id := fastimport.Identity{LookupEnv: envFrom(nil), Now: now}
		author, committer := id.Resolve()

		want := fastimport.Signature{Name: fastimport.DefaultName, Email: fastimport.DefaultEmail, When: "1234 +0000"}
		require.Equal(t, want, author)
		require.Equal(t, want, committer)
	})

	t.Run("reads each role from the environment", func(t *testing.T) {
		id := fastimport.Identity{Now: now, LookupEnv: envFrom(map[string]string{
			"GIT_AUTHOR_NAME":     "Ada",
			"GIT_AUTHOR_EMAIL":    "ada@example.com",
			"GIT_AUTHOR_DATE":     "1000 +0000",
			"GIT_COMMITTER_NAME":  "Bob",
			"GIT_COMMITTER_EMAIL": "bob@example.com",
			"GIT_COMMITTER_DATE":  "2000 +0000",
		})}
		author, committer := id.Resolve()

		require.Equal(t, fastimport.Signature{Name: "Ada", Email: "ada@example.com", When: "1000 +0000"}, author)
		require.Equal(t, fastimport.Signature{Name: "Bob", Email: "bob@example.com", When: "2000 +0000"}, committer)
	})

	t.Run("committer falls back to the author field by field", func(t *testing.T) {
		id := fastimport.Identity{Now: now, LookupEnv: envFrom(map[string]string{
			"GIT_AUTHOR_NAME":     "Ada",
			"GIT_AUTHOR_DATE":     "1000 +0000",
			"GIT_COMMITTER_EMAIL": "bob@example.com",
		})}
		author, committer := id.Resolve()

		require.Equal(t, fastimport.Signature{Name: "Ada", Email: fastimport.DefaultEmail, When: "1000 +0000"}, author)
		require.Equal(t, fastimport.Signature{Name: "Ada", Email: "bob@example.com", When: "1000 +0000"}, committer)
	})

	t.Run("overrides win over the environment", func(t *testing.T) {
		id := fastimport.Identity{
			Now:       now,
			Author:    fastimport.Signature{Name: "Override"},
			Committer: fastimport.Signature{When: "42 +0000"},
			LookupEnv: envFrom(map[string]string{
				"GIT_AUTHOR_NAME":    "Env",
				"GIT_COMMITTER_DATE": "1 +0000",
			}),
		}
		author, committer := id.Resolve()

		require.Equal(t, "Override", author.Name)
		require.Equal(t, "Override", committer.Name)
		require.Equal(t, "1234 +0000", author.When)
		require.Equal(t, "42 +0000", committer.When)
	})

	t.Run("strips brackets and newlines from environment values", func(t *testing.T) {
		id := fastimport.Identity{Now: now, LookupEnv: envFrom(map[string]string{
			"GIT_AUTHOR_NAME":  "Eve <evil>\ncommitter x",
			"GIT_AUTHOR_EMAIL": "<eve@example.com>",
		})}
		author, _ := id.Resolve()

		require.Equal(t, "Eve evilcommitter x", author.Name)
		require.Equal(t, "eve@example.com", author.Email)
	})

	t.Run("empty overrides are unset and fall through", func(t *testing.T) {
		id := fastimport.Identity{
			Now:    now,
			Author: fastimport.Signature{Name: "", Email: "ada@example.com"},
		}

		id.LookupEnv = envFrom(nil)
		author, _ := id.Resolve()
		require.Equal(t, fastimport.DefaultName, author.Name)
		require.Equal(t, "ada@example.com", author.Email)

		id.LookupEnv = envFrom(map[string]string{"GIT_AUTHOR_NAME": ""})
		author, committer := id.Resolve()
		require.Empty(t, author.Name)
		require.Empty(t, committer.Name)
	})

	t.Run("an empty name from the environment renders without a trailing space", func(t *testing.T) {
		id := fastimport.Identity{Now: now, LookupEnv: envFrom(map[string]string{
			"GIT_AUTHOR_NAME": "",
		})}
		c := fastimport.NewCommit(fastimport.CommitOptions{Ref: "refs/heads/x", Identity: id})

		out, err := c.Render()
		require.NoError(t, err)
		require.Contains(t, string(out), "author <docver[bot]@users.noreply.github.io> 1234 +0000\n")
		require.Contains(t, string(out), "committer <docver[bot]@users.noreply.github.io> 1234 +0000\n")
	})
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "GIT_AUTHOR_NAME", fastimport.EnvKey(fastimport.RoleAuthor, fastimport.FieldName))
	require.Equal(t, "GIT_COMMITTER_DATE", fastimport.EnvKey(fastimport.RoleCommitter, fastimport.FieldDate))
}

func TestFormatWhen(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	require.Equal(t, "1700000000 +0000", fastimport.FormatWhen(time.Unix(1700000000, 0).In(loc)))
}
