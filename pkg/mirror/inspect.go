package mirror

import (
	"io/fs"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"autogit-hq/autogit/pkg/gateway"
)

// Info describes one materialized mirror found under the repository root.
type Info struct {
	// Name is the slash-separated full name relative to the root,
	// e.g. "work/org/project.git".
	Name string

	// Head is the commit hash HEAD resolves to, empty for an empty mirror.
	Head string

	// Branch is the symbolic target of HEAD (e.g. "refs/heads/main"),
	// empty when HEAD is detached or unset.
	Branch string

	// Remote is the origin URL the mirror tracks.
	Remote string
}

// Reference returns the gateway reference addressing this mirror.
func (i Info) Reference() gateway.Reference {
	tag, rest, _ := strings.Cut(i.Name, "/")
	return gateway.Reference{FullName: i.Name, Tag: tag, Rest: rest}
}

// List walks the repository root and returns every directory that opens as
// a git repository, in walk order. Directories named *.git are treated as
// leaves; the walk does not descend into their object storage.
func (s *Store) List() ([]Info, error) {
	var infos []Info

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == s.root {
			return nil
		}
		if !strings.HasSuffix(d.Name(), gateway.Suffix) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		info, ok := inspect(path)
		if ok {
			info.Name = filepath.ToSlash(rel)
			infos = append(infos, info)
		}
		return fs.SkipDir
	})
	if err != nil {
		return nil, err
	}

	return infos, nil
}

// inspect opens path as a git repository and collects its HEAD and remote.
// The boolean is false when the directory is not a repository.
func inspect(path string) (Info, bool) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return Info{}, false
	}

	var info Info

	if ref, err := repo.Reference(plumbing.HEAD, false); err == nil && ref.Type() == plumbing.SymbolicReference {
		info.Branch = ref.Target().String()
	}
	if head, err := repo.Head(); err == nil {
		info.Head = head.Hash().String()
	}
	if remote, err := repo.Remote(gogit.DefaultRemoteName); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.Remote = urls[0]
		}
	}

	return info, true
}
