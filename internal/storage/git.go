package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/radview/internal/cob"
)

// GitStorage reads repositories from a storage root using the git CLI.
type GitStorage struct {
	root string
}

// NewGitStorage returns storage rooted at the given directory.
func NewGitStorage(root string) *GitStorage {
	return &GitStorage{root: root}
}

// Repository opens the repository with the given id.
func (s *GitStorage) Repository(id cob.RepoID) (Repository, error) {
	path := filepath.Join(s.root, id.Name())
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("repository %s not found in storage", id)
	}
	return &gitRepo{id: id, path: path}, nil
}

// Repositories enumerates all stored repositories with their identity
// documents. Entries that cannot be opened are skipped with a log line;
// a partially readable storage should not hide the rest.
func (s *GitStorage) Repositories() ([]cob.RepoInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading storage root: %w", err)
	}

	infos := make([]cob.RepoInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rid, err := cob.ParseRepoID("rad:" + entry.Name())
		if err != nil {
			continue
		}
		repo := &gitRepo{id: rid, path: filepath.Join(s.root, entry.Name())}
		doc, err := repo.IdentityDoc()
		if err != nil {
			log.Debug().Str("rid", rid.String()).Err(err).Msg("skipping unreadable repository")
			continue
		}
		infos = append(infos, cob.RepoInfo{RID: rid, Doc: doc})
	}
	return infos, nil
}

type gitRepo struct {
	id   cob.RepoID
	path string
}

func (r *gitRepo) ID() cob.RepoID { return r.id }

// Head resolves the repository's canonical head commit.
func (r *gitRepo) Head() (cob.Oid, error) {
	out, err := runGit(r.path, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving head of %s: %w", r.id, err)
	}
	return cob.ParseOid(strings.TrimSpace(string(out)))
}

// IdentityDoc reads the identity document stored alongside the git data.
func (r *gitRepo) IdentityDoc() (cob.Doc, error) {
	raw, err := os.ReadFile(filepath.Join(r.path, "identity.json"))
	if err != nil {
		return cob.Doc{}, fmt.Errorf("reading identity of %s: %w", r.id, err)
	}
	var doc cob.Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return cob.Doc{}, fmt.Errorf("parsing identity of %s: %w", r.id, err)
	}
	return doc, nil
}

// RemoteRefs lists the references under the remote's namespace, keyed by
// their name with the namespace prefix stripped.
func (r *gitRepo) RemoteRefs(id cob.NodeID) (map[cob.RefName]cob.Oid, error) {
	prefix := "refs/namespaces/" + string(id) + "/"
	out, err := runGit(r.path, "for-each-ref", "--format=%(objectname) %(refname)", prefix)
	if err != nil {
		return nil, fmt.Errorf("listing refs of remote %s: %w", id, err)
	}
	refs, err := parseRefLines(string(out), prefix)
	if err != nil {
		return nil, fmt.Errorf("remote %s: %w", id, err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("remote %s not found in %s", id, r.id)
	}
	return refs, nil
}

func parseRefLines(out, prefix string) (map[cob.RefName]cob.Oid, error) {
	refs := make(map[cob.RefName]cob.Oid)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		target, name, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed ref line %q", line)
		}
		oid, err := cob.ParseOid(target)
		if err != nil {
			return nil, err
		}
		refs[cob.RefName(strings.TrimPrefix(name, prefix))] = oid
	}
	return refs, nil
}

// RIDAt resolves the repository id of a Radicle working copy by inspecting
// its "rad" remote.
func RIDAt(path string) (cob.RepoID, error) {
	out, err := runGit(path, "config", "--get", "remote.rad.url")
	if err != nil {
		return "", fmt.Errorf("%s is not a Radicle repository", path)
	}
	url := strings.TrimSpace(string(out))
	name := strings.TrimPrefix(url, "rad://")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	rid, err := cob.ParseRepoID("rad:" + name)
	if err != nil {
		return "", fmt.Errorf("%s is not a Radicle repository", path)
	}
	return rid, nil
}

func runGit(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}
