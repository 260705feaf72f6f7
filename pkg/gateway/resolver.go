package gateway

import (
	"path"
	"strings"

	"autogit-hq/autogit/pkg/config"
)

// Suffix is the suffix every valid repository name must carry.
const Suffix = ".git"

// Reference identifies one logical repository after validation. It is
// derived purely from the requested name and the tag table; nothing is
// persisted.
type Reference struct {
	// FullName is the complete requested name, e.g. "work/org/project.git".
	// Mirrors live at <repodir>/<FullName>.
	FullName string

	// Tag is the first path segment, a key of the configured tag table.
	Tag string

	// Rest is the portion after the tag and separator; appended to the
	// tag's URL prefix it forms the upstream clone URL.
	Rest string
}

// Resolve validates fullName against the tag table and decomposes it into a
// Reference. It performs no I/O; validation happens strictly before any
// filesystem or network side effect, because the SSH command string is the
// only attacker-controlled input this process sees.
//
// Failure modes:
//   - KindInvalidRepositoryTag: no tag segment, or tag not in the table
//   - KindInvalidRepository: missing ".git" suffix, or a name that would
//     escape the repository root
func Resolve(fullName string, tags map[string]config.TagConfig) (Reference, error) {
	tag, rest, found := strings.Cut(fullName, "/")
	if !found || rest == "" {
		return Reference{}, NewInvalidRepositoryTagError(fullName)
	}
	if _, ok := tags[tag]; !ok {
		return Reference{}, NewInvalidRepositoryTagError(fullName)
	}
	if !strings.HasSuffix(fullName, Suffix) {
		return Reference{}, NewInvalidRepositoryError(fullName)
	}

	// The name becomes both a filesystem path under the repository root
	// and a URL suffix, so it must not climb out of either namespace.
	if path.Clean("/"+fullName) != "/"+fullName {
		return Reference{}, NewInvalidRepositoryError(fullName)
	}

	return Reference{
		FullName: fullName,
		Tag:      tag,
		Rest:     rest,
	}, nil
}
