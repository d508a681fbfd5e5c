// Package service wires the projection layer to its collaborators: the
// repository storage, the collaborative-object caches and the node
// database. It owns the error taxonomy of the boundary: not-found is
// distinguishable, listings drop entities that fail to project, and
// everything else propagates.
package service

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/radview/internal/cob"
	"github.com/radview/internal/cobstore"
	"github.com/radview/internal/node"
	"github.com/radview/internal/profile"
	"github.com/radview/internal/storage"
	"github.com/radview/internal/view"
)

// IssueCache reads cached issues of one repository.
type IssueCache interface {
	List() ([]cobstore.IssueItem, error)
	Get(id cob.IssueID) (*cob.Issue, error)
	Counts() (cob.IssueCounts, error)
}

// PatchCache reads cached patches of one repository.
type PatchCache interface {
	List() ([]cobstore.PatchItem, error)
	Get(id cob.PatchID) (*cob.Patch, error)
	Counts() (cob.PatchCounts, error)
}

// Cobs opens per-repository caches.
type Cobs interface {
	Issues(rid cob.RepoID) IssueCache
	Patches(rid cob.RepoID) PatchCache
}

// NodeDB reads alias, routing and policy data from the node database.
type NodeDB interface {
	Alias(id cob.ActorID) (cob.Alias, bool)
	SeedingCount(rid cob.RepoID) int
	IsSeeding(rid cob.RepoID) bool
}

// Service exposes the boundary operations over a loaded profile's data.
type Service struct {
	storage storage.ReadStorage
	cobs    Cobs
	node    NodeDB
	nid     cob.NodeID

	closers []func() error
}

// New builds a service from explicit collaborators.
func New(st storage.ReadStorage, cobs Cobs, nodeDB NodeDB, nid cob.NodeID) *Service {
	return &Service{storage: st, cobs: cobs, node: nodeDB, nid: nid}
}

// FromProfile builds a service backed by the profile's on-disk state.
// Callers must Close the service when done.
func FromProfile(p *profile.Profile) (*Service, error) {
	nid, err := p.NID()
	if err != nil {
		return nil, err
	}
	nodeDB, err := node.Open(p.Home.NodeDBPath())
	if err != nil {
		return nil, err
	}
	cobs, err := cobstore.Open(p.Home.CobsDBPath())
	if err != nil {
		_ = nodeDB.Close()
		return nil, err
	}

	svc := New(storage.NewGitStorage(p.Home.StoragePath()), storeAdapter{cobs}, nodeDB, nid)
	svc.closers = []func() error{cobs.Close, nodeDB.Close}
	return svc, nil
}

// Close releases the database handles opened by FromProfile.
func (s *Service) Close() error {
	var firstErr error
	for _, close := range s.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// storeAdapter narrows *cobstore.Store to the Cobs interface.
type storeAdapter struct {
	store *cobstore.Store
}

func (a storeAdapter) Issues(rid cob.RepoID) IssueCache  { return a.store.Issues(rid) }
func (a storeAdapter) Patches(rid cob.RepoID) PatchCache { return a.store.Patches(rid) }

// NID returns the local node's id.
func (s *Service) NID() cob.NodeID {
	return s.nid
}

// Project returns the project overview for one repository.
func (s *Service) Project(rid string) (view.Info, error) {
	id, err := cob.ParseRepoID(rid)
	if err != nil {
		return view.Info{}, err
	}
	repo, err := s.storage.Repository(id)
	if err != nil {
		return view.Info{}, err
	}
	doc, err := repo.IdentityDoc()
	if err != nil {
		return view.Info{}, err
	}
	return s.projectInfo(id, doc, repo)
}

func (s *Service) projectInfo(id cob.RepoID, doc cob.Doc, repo storage.Repository) (view.Info, error) {
	head, err := repo.Head()
	if err != nil {
		return view.Info{}, err
	}
	issues, err := s.cobs.Issues(id).Counts()
	if err != nil {
		return view.Info{}, err
	}
	patches, err := s.cobs.Patches(id).Counts()
	if err != nil {
		return view.Info{}, err
	}
	seeding := s.node.SeedingCount(id)
	return view.ProjectInfo(id, doc, head, issues, patches, seeding, s.node), nil
}

// Projects lists the overview of every public, seeded repository, ordered
// by repository id. A repository whose projection fails is dropped from
// the listing, not fatal to it.
func (s *Service) Projects() ([]view.Info, error) {
	repos, err := s.storage.Repositories()
	if err != nil {
		return nil, err
	}

	public := repos[:0:0]
	for _, info := range repos {
		if info.Doc.Visibility.IsPublic() {
			public = append(public, info)
		}
	}
	sort.Slice(public, func(i, j int) bool { return public[i].RID < public[j].RID })

	infos := make([]view.Info, 0, len(public))
	for _, info := range public {
		if !s.node.IsSeeding(info.RID) {
			continue
		}
		repo, err := s.storage.Repository(info.RID)
		if err != nil {
			log.Warn().Str("rid", info.RID.String()).Err(err).Msg("dropping project from listing")
			continue
		}
		v, err := s.projectInfo(info.RID, info.Doc, repo)
		if err != nil {
			log.Warn().Str("rid", info.RID.String()).Err(err).Msg("dropping project from listing")
			continue
		}
		infos = append(infos, v)
	}
	return infos, nil
}

// Patches lists a repository's patches, newest first. A patch that cannot
// be decoded or projected is dropped from the listing.
func (s *Service) Patches(rid string) ([]view.Patch, error) {
	id, err := cob.ParseRepoID(rid)
	if err != nil {
		return nil, err
	}
	repo, err := s.storage.Repository(id)
	if err != nil {
		return nil, err
	}
	items, err := s.cobs.Patches(id).List()
	if err != nil {
		return nil, err
	}

	patches := make([]*cob.Patch, 0, len(items))
	for _, item := range items {
		if item.Err != nil {
			log.Warn().Str("patch", item.ID.String()).Err(item.Err).Msg("dropping patch from listing")
			continue
		}
		patches = append(patches, item.Patch)
	}
	sort.SliceStable(patches, func(i, j int) bool {
		return patches[i].Timestamp() > patches[j].Timestamp()
	})

	views := make([]view.Patch, 0, len(patches))
	for _, patch := range patches {
		v, err := view.ProjectPatch(patch, repo, s.node)
		if err != nil {
			log.Warn().Str("patch", patch.ID.String()).Err(err).Msg("dropping patch from listing")
			continue
		}
		views = append(views, v)
	}
	return views, nil
}

// Patch returns one patch document. A missing patch is ErrPatchNotFound.
func (s *Service) Patch(rid, patchID string) (view.Patch, error) {
	id, err := cob.ParseRepoID(rid)
	if err != nil {
		return view.Patch{}, err
	}
	pid, err := cob.ParseOid(patchID)
	if err != nil {
		return view.Patch{}, fmt.Errorf("invalid patch id: %w", err)
	}
	repo, err := s.storage.Repository(id)
	if err != nil {
		return view.Patch{}, err
	}
	patch, err := s.cobs.Patches(id).Get(pid)
	if err != nil {
		return view.Patch{}, err
	}
	if patch == nil {
		return view.Patch{}, ErrPatchNotFound
	}
	return view.ProjectPatch(patch, repo, s.node)
}

// Issues lists a repository's issues, newest first. An issue that cannot
// be decoded is dropped from the listing.
func (s *Service) Issues(rid string) ([]view.Issue, error) {
	id, err := cob.ParseRepoID(rid)
	if err != nil {
		return nil, err
	}
	items, err := s.cobs.Issues(id).List()
	if err != nil {
		return nil, err
	}

	issues := make([]*cob.Issue, 0, len(items))
	for _, item := range items {
		if item.Err != nil {
			log.Warn().Str("issue", item.ID.String()).Err(item.Err).Msg("dropping issue from listing")
			continue
		}
		issues = append(issues, item.Issue)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Timestamp() > issues[j].Timestamp()
	})

	views := make([]view.Issue, 0, len(issues))
	for _, issue := range issues {
		views = append(views, view.ProjectIssue(issue, s.node))
	}
	return views, nil
}

// Issue returns one issue document. A missing issue is ErrIssueNotFound.
func (s *Service) Issue(rid, issueID string) (view.Issue, error) {
	id, err := cob.ParseRepoID(rid)
	if err != nil {
		return view.Issue{}, err
	}
	iid, err := cob.ParseOid(issueID)
	if err != nil {
		return view.Issue{}, fmt.Errorf("invalid issue id: %w", err)
	}
	issue, err := s.cobs.Issues(id).Get(iid)
	if err != nil {
		return view.Issue{}, err
	}
	if issue == nil {
		return view.Issue{}, ErrIssueNotFound
	}
	return view.ProjectIssue(issue, s.node), nil
}
