package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radview/internal/cob"
	"github.com/radview/internal/cobstore"
	"github.com/radview/internal/storage"
)

const (
	testRID = "rad:z42hL2jL4XNk6K8ND91tkkpexKj"
	actor   = cob.ActorID("z6MkgFQWjA1mwSGwLzp6YxpNdSnWnmCF3qPSpoqrMUqj34al")
	nodeID  = cob.NodeID("z6MkltRpzcq2ybm13yLGyrZdqmFntCG6GHQSNbsy645DdTbF")
)

func oidOf(c byte) cob.Oid {
	b := make([]byte, 40)
	for i := range b {
		b[i] = c
	}
	return cob.Oid(b)
}

type fakeRepo struct {
	id      cob.RepoID
	head    cob.Oid
	headErr error
	doc     cob.Doc
	refs    map[cob.RefName]cob.Oid
}

func (r *fakeRepo) ID() cob.RepoID                { return r.id }
func (r *fakeRepo) Head() (cob.Oid, error)        { return r.head, r.headErr }
func (r *fakeRepo) IdentityDoc() (cob.Doc, error) { return r.doc, nil }
func (r *fakeRepo) RemoteRefs(cob.NodeID) (map[cob.RefName]cob.Oid, error) {
	if r.refs == nil {
		return nil, errors.New("no remote")
	}
	return r.refs, nil
}

type fakeStorage struct {
	repos map[cob.RepoID]*fakeRepo
}

func (s *fakeStorage) Repository(id cob.RepoID) (storage.Repository, error) {
	repo, ok := s.repos[id]
	if !ok {
		return nil, errors.New("repository not found in storage")
	}
	return repo, nil
}

func (s *fakeStorage) Repositories() ([]cob.RepoInfo, error) {
	infos := make([]cob.RepoInfo, 0, len(s.repos))
	for _, repo := range s.repos {
		infos = append(infos, cob.RepoInfo{RID: repo.id, Doc: repo.doc})
	}
	return infos, nil
}

type fakePatchCache struct {
	items  []cobstore.PatchItem
	counts cob.PatchCounts
}

func (c *fakePatchCache) List() ([]cobstore.PatchItem, error) { return c.items, nil }
func (c *fakePatchCache) Counts() (cob.PatchCounts, error)    { return c.counts, nil }
func (c *fakePatchCache) Get(id cob.PatchID) (*cob.Patch, error) {
	for _, item := range c.items {
		if item.ID == id {
			return item.Patch, item.Err
		}
	}
	return nil, nil
}

type fakeIssueCache struct {
	items  []cobstore.IssueItem
	counts cob.IssueCounts
}

func (c *fakeIssueCache) List() ([]cobstore.IssueItem, error) { return c.items, nil }
func (c *fakeIssueCache) Counts() (cob.IssueCounts, error)    { return c.counts, nil }
func (c *fakeIssueCache) Get(id cob.IssueID) (*cob.Issue, error) {
	for _, item := range c.items {
		if item.ID == id {
			return item.Issue, item.Err
		}
	}
	return nil, nil
}

type fakeCobs struct {
	patches *fakePatchCache
	issues  *fakeIssueCache
}

func (c *fakeCobs) Issues(cob.RepoID) IssueCache  { return c.issues }
func (c *fakeCobs) Patches(cob.RepoID) PatchCache { return c.patches }

type fakeNode struct {
	aliases map[cob.ActorID]cob.Alias
	seeding map[cob.RepoID]int
	policy  map[cob.RepoID]bool
}

func (n *fakeNode) Alias(id cob.ActorID) (cob.Alias, bool) {
	alias, ok := n.aliases[id]
	return alias, ok
}
func (n *fakeNode) SeedingCount(rid cob.RepoID) int { return n.seeding[rid] }
func (n *fakeNode) IsSeeding(rid cob.RepoID) bool   { return n.policy[rid] }

func patchWith(id cob.PatchID, timestamp int64) *cob.Patch {
	return &cob.Patch{
		ID:     id,
		Author: actor,
		Title:  "patch " + string(id[:4]),
		State:  cob.PatchState{Status: cob.PatchOpen},
		Revisions: []cob.Revision{{
			ID:        id,
			Author:    actor,
			Base:      oidOf('0'),
			Head:      oidOf('9'),
			Timestamp: timestamp,
		}},
	}
}

func newTestService(patches *fakePatchCache, issues *fakeIssueCache) *Service {
	if patches == nil {
		patches = &fakePatchCache{}
	}
	if issues == nil {
		issues = &fakeIssueCache{}
	}
	st := &fakeStorage{repos: map[cob.RepoID]*fakeRepo{
		cob.RepoID(testRID): {
			id:   cob.RepoID(testRID),
			head: oidOf('9'),
			doc: cob.Doc{
				Payload:    cob.Project{Name: "radview", DefaultBranch: "main"},
				Delegates:  []cob.ActorID{actor},
				Threshold:  1,
				Visibility: cob.Visibility{Type: cob.VisibilityPublic},
			},
			refs: map[cob.RefName]cob.Oid{"refs/heads/main": oidOf('9')},
		},
	}}
	nodeDB := &fakeNode{
		aliases: map[cob.ActorID]cob.Alias{actor: "alice"},
		seeding: map[cob.RepoID]int{cob.RepoID(testRID): 3},
		policy:  map[cob.RepoID]bool{cob.RepoID(testRID): true},
	}
	return New(st, &fakeCobs{patches: patches, issues: issues}, nodeDB, nodeID)
}

func TestPatchesSortedByTimestampDescending(t *testing.T) {
	cache := &fakePatchCache{items: []cobstore.PatchItem{
		{ID: oidOf('a'), Patch: patchWith(oidOf('a'), 10)},
		{ID: oidOf('b'), Patch: patchWith(oidOf('b'), 30)},
		{ID: oidOf('c'), Patch: patchWith(oidOf('c'), 20)},
	}}
	svc := newTestService(cache, nil)

	patches, err := svc.Patches(testRID)
	require.NoError(t, err)
	require.Len(t, patches, 3)
	assert.Equal(t, int64(30), patches[0].Revisions[0].Timestamp)
	assert.Equal(t, int64(20), patches[1].Revisions[0].Timestamp)
	assert.Equal(t, int64(10), patches[2].Revisions[0].Timestamp)
}

func TestPatchesDropsFailingEntity(t *testing.T) {
	bad := patchWith(oidOf('b'), 20)
	bad.Revisions[0].Head = "" // projection of this patch fails

	cache := &fakePatchCache{items: []cobstore.PatchItem{
		{ID: oidOf('a'), Patch: patchWith(oidOf('a'), 30)},
		{ID: oidOf('b'), Patch: bad},
		{ID: oidOf('c'), Patch: patchWith(oidOf('c'), 10)},
	}}
	svc := newTestService(cache, nil)

	patches, err := svc.Patches(testRID)
	require.NoError(t, err)
	require.Len(t, patches, 2)
	assert.Equal(t, oidOf('a'), patches[0].ID)
	assert.Equal(t, oidOf('c'), patches[1].ID)
}

func TestPatchesDropsUndecodableRow(t *testing.T) {
	cache := &fakePatchCache{items: []cobstore.PatchItem{
		{ID: oidOf('a'), Patch: patchWith(oidOf('a'), 30)},
		{ID: oidOf('b'), Err: errors.New("decoding patch: unexpected end of input")},
	}}
	svc := newTestService(cache, nil)

	patches, err := svc.Patches(testRID)
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, oidOf('a'), patches[0].ID)
}

func TestPatchNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Patch(testRID, string(oidOf('f')))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPatchNotFound)
	assert.True(t, IsNotFound(err))
}

func TestPatchMalformedID(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Patch(testRID, "not-an-oid")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestPatchFound(t *testing.T) {
	cache := &fakePatchCache{items: []cobstore.PatchItem{
		{ID: oidOf('a'), Patch: patchWith(oidOf('a'), 10)},
	}}
	svc := newTestService(cache, nil)

	patch, err := svc.Patch(testRID, string(oidOf('a')))
	require.NoError(t, err)
	assert.Equal(t, oidOf('a'), patch.ID)
	assert.Equal(t, cob.Alias("alice"), patch.Author.Alias)
	// Head matches the author's main ref.
	assert.Equal(t, []cob.RefName{"refs/heads/main"}, patch.Revisions[0].Refs)
}

func TestProject(t *testing.T) {
	svc := newTestService(&fakePatchCache{counts: cob.PatchCounts{Open: 2}},
		&fakeIssueCache{counts: cob.IssueCounts{Open: 1, Closed: 4}})

	info, err := svc.Project(testRID)
	require.NoError(t, err)
	assert.Equal(t, "radview", info.Name)
	assert.Equal(t, cob.RepoID(testRID), info.ID)
	assert.Equal(t, oidOf('9'), info.Head)
	assert.Equal(t, 2, info.Patches.Open)
	assert.Equal(t, 4, info.Issues.Closed)
	assert.Equal(t, 3, info.Seeding)
	require.Len(t, info.Delegates, 1)
	assert.Equal(t, cob.Alias("alice"), info.Delegates[0].Alias)
}

func TestProjectMalformedRID(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Project("zNoPrefix")
	assert.Error(t, err)
}

func TestProjectsFiltersAndSorts(t *testing.T) {
	public := cob.Visibility{Type: cob.VisibilityPublic}
	repoA := &fakeRepo{id: "rad:zAAA", head: oidOf('1'), doc: cob.Doc{Visibility: public}}
	repoB := &fakeRepo{id: "rad:zBBB", head: oidOf('2'), doc: cob.Doc{Visibility: public}}
	private := &fakeRepo{id: "rad:zCCC", head: oidOf('3'), doc: cob.Doc{Visibility: cob.Visibility{Type: cob.VisibilityPrivate}}}
	unseeded := &fakeRepo{id: "rad:zDDD", head: oidOf('4'), doc: cob.Doc{Visibility: public}}
	broken := &fakeRepo{id: "rad:zEEE", headErr: errors.New("no head"), doc: cob.Doc{Visibility: public}}

	st := &fakeStorage{repos: map[cob.RepoID]*fakeRepo{
		repoB.id: repoB, repoA.id: repoA, private.id: private, unseeded.id: unseeded, broken.id: broken,
	}}
	nodeDB := &fakeNode{policy: map[cob.RepoID]bool{
		repoA.id: true, repoB.id: true, private.id: true, broken.id: true,
	}}
	svc := New(st, &fakeCobs{patches: &fakePatchCache{}, issues: &fakeIssueCache{}}, nodeDB, nodeID)

	infos, err := svc.Projects()
	require.NoError(t, err)

	// Private, unseeded and failing repositories are dropped; the rest is
	// ordered by repository id.
	require.Len(t, infos, 2)
	assert.Equal(t, cob.RepoID("rad:zAAA"), infos[0].ID)
	assert.Equal(t, cob.RepoID("rad:zBBB"), infos[1].ID)
}

func TestIssueNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Issue(testRID, string(oidOf('f')))
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestIssuesSortedNewestFirst(t *testing.T) {
	cache := &fakeIssueCache{items: []cobstore.IssueItem{
		{ID: oidOf('a'), Issue: &cob.Issue{ID: oidOf('a'), Author: actor, Comments: []cob.Comment{{Timestamp: 5}}}},
		{ID: oidOf('b'), Issue: &cob.Issue{ID: oidOf('b'), Author: actor, Comments: []cob.Comment{{Timestamp: 50}}}},
	}}
	svc := newTestService(nil, cache)

	issues, err := svc.Issues(testRID)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, oidOf('b'), issues[0].ID)
	assert.Equal(t, oidOf('a'), issues[1].ID)
}

func TestNID(t *testing.T) {
	svc := newTestService(nil, nil)
	assert.Equal(t, nodeID, svc.NID())
}
