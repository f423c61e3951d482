package engine

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// FriendRequest records that one camper asked to be grouped with another.
type FriendRequest struct {
	From uuid.UUID
	To   uuid.UUID
}

// FriendGroup is a transitively closed set of campers who requested to be
// placed together. IDs are sequential display numbers, stable for a given
// roster: components are numbered in order of their smallest member ID.
type FriendGroup struct {
	ID        int         `json:"id"`
	CamperIDs []uuid.UUID `json:"camper_ids"`
}

// ResolveFriendGroups computes friend groups as connected components of the
// friend-request graph, restricted to campers present on the roster.
// When requireMutual is false a single request in either direction binds;
// otherwise both directions must be present.
func ResolveFriendGroups(requests []FriendRequest, roster []RawCamper, requireMutual bool) []FriendGroup {
	present := make(map[uuid.UUID]bool, len(roster))
	for _, rc := range roster {
		present[rc.AthleteID] = true
	}

	requested := make(map[[2]uuid.UUID]bool, len(requests))
	for _, req := range requests {
		requested[[2]uuid.UUID{req.From, req.To}] = true
	}

	uf := newUnionFind()
	for _, req := range requests {
		if req.From == req.To || !present[req.From] || !present[req.To] {
			continue
		}
		if requireMutual && !requested[[2]uuid.UUID{req.To, req.From}] {
			continue
		}
		uf.union(req.From, req.To)
	}

	components := make(map[uuid.UUID][]uuid.UUID)
	for id := range uf.parent {
		root := uf.find(id)
		components[root] = append(components[root], id)
	}

	groups := make([]FriendGroup, 0, len(components))
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		slices.SortFunc(members, compareUUID)
		groups = append(groups, FriendGroup{CamperIDs: members})
	}

	slices.SortFunc(groups, func(a, b FriendGroup) int {
		return compareUUID(a.CamperIDs[0], b.CamperIDs[0])
	})
	for i := range groups {
		groups[i].ID = i + 1
	}

	return groups
}

func compareUUID(a, b uuid.UUID) int {
	return strings.Compare(a.String(), b.String())
}

type unionFind struct {
	parent map[uuid.UUID]uuid.UUID
	rank   map[uuid.UUID]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[uuid.UUID]uuid.UUID),
		rank:   make(map[uuid.UUID]int),
	}
}

func (u *unionFind) find(id uuid.UUID) uuid.UUID {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
	}
	for u.parent[id] != id {
		u.parent[id] = u.parent[u.parent[id]]
		id = u.parent[id]
	}
	return id
}

func (u *unionFind) union(a, b uuid.UUID) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
