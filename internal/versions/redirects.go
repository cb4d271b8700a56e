package versions

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// RedirectsFileName is the name of the rewrite rules file read by the hosting platform.
const RedirectsFileName = "_redirects"

// AliasRedirects renders one rewrite rule per alias, serving /<alias>/... from
// /<tag>/... with status 200. When defaultAlias is bound, a trailing catch-all
// rule serves the site root from that alias's version.
func (r *Registry) AliasRedirects(defaultAlias string) string {
	return r.AliasRedirectsUnder("", defaultAlias)
}

// AliasRedirectsUnder is AliasRedirects for versions deployed below prefix.
func (r *Registry) AliasRedirectsUnder(prefix, defaultAlias string) string {
	base := "/"
	if p := strings.Trim(prefix, "/"); p != "" {
		base = "/" + p + "/"
	}

	var b strings.Builder
	for _, alias := range slices.Sorted(maps.Keys(r.aliases)) {
		fmt.Fprintf(&b, "%s%s/* %s%s/:splat 200\n", base, alias, base, r.aliases[alias])
	}
	if tag, ok := r.aliases[defaultAlias]; ok {
		fmt.Fprintf(&b, "%s* %s%s/:splat 200\n", base, base, tag)
	}
	return b.String()
}
