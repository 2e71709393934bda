package report

import (
	"encoding/json"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
)

// Group collects every raw error of a task that shares one code.
type Group struct {
	Count       int              `json:"count"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Tags        []string         `json:"tags"`
	Description string           `json:"description"`
	Suggestion  string           `json:"suggestion"`
	Header      []string         `json:"header"`
	Messages    []string         `json:"messages"`
	Data        map[int]*RowData `json:"data"`
}

// RowKeys returns the row keys of the group in ascending order. Key 0 holds
// the row-independent errors and therefore always comes first.
func (g *Group) RowKeys() []int {
	keys := make([]int, 0, len(g.Data))
	for key := range g.Data {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// row returns the row stored under key, creating it from fill when absent.
func (g *Group) row(key int, fill []string) *RowData {
	if data, ok := g.Data[key]; ok {
		return data
	}
	data := &RowData{
		Values: append([]string{}, fill...),
		Errors: NewPositionSet(),
	}
	g.Data[key] = data
	return data
}

// RowData is the reconstructed content of one row and the columns flagged in it.
type RowData struct {
	Values []string     `json:"values"`
	Errors *PositionSet `json:"errors"`
}

// PositionSet is a set of 1-based column positions.
type PositionSet struct {
	tree *treeset.Set
}

// NewPositionSet returns a set holding the given positions.
func NewPositionSet(positions ...int) *PositionSet {
	s := &PositionSet{tree: treeset.NewWithIntComparator()}
	s.Add(positions...)
	return s
}

// Add inserts positions; existing members are left untouched.
func (s *PositionSet) Add(positions ...int) {
	if s.tree == nil {
		s.tree = treeset.NewWithIntComparator()
	}
	for _, p := range positions {
		s.tree.Add(p)
	}
}

// Has reports whether position is a member.
func (s *PositionSet) Has(position int) bool {
	if s == nil || s.tree == nil {
		return false
	}
	return s.tree.Contains(position)
}

// Len returns the number of members.
func (s *PositionSet) Len() int {
	if s == nil || s.tree == nil {
		return 0
	}
	return s.tree.Size()
}

// Positions returns the members in ascending order.
func (s *PositionSet) Positions() []int {
	if s == nil || s.tree == nil {
		return nil
	}
	values := s.tree.Values()
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = v.(int)
	}
	return out
}

// Equal reports whether both sets hold the same positions.
func (s *PositionSet) Equal(other *PositionSet) bool {
	a, b := s.Positions(), other.Positions()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array.
func (s *PositionSet) MarshalJSON() ([]byte, error) {
	positions := s.Positions()
	if positions == nil {
		positions = []int{}
	}
	return json.Marshal(positions)
}

// UnmarshalJSON decodes a JSON array of positions.
func (s *PositionSet) UnmarshalJSON(data []byte) error {
	var positions []int
	if err := json.Unmarshal(data, &positions); err != nil {
		return err
	}
	s.tree = treeset.NewWithIntComparator()
	s.Add(positions...)
	return nil
}

// Groups maps error codes to their groups, remembering the order in which
// codes were first seen.
type Groups struct {
	m *linkedhashmap.Map
}

// NewGroups returns an empty mapping.
func NewGroups() *Groups {
	return &Groups{m: linkedhashmap.New()}
}

// Get returns the group for code.
func (gs *Groups) Get(code string) (*Group, bool) {
	if gs == nil || gs.m == nil {
		return nil, false
	}
	v, ok := gs.m.Get(code)
	if !ok {
		return nil, false
	}
	return v.(*Group), true
}

// Len returns the number of distinct codes.
func (gs *Groups) Len() int {
	if gs == nil || gs.m == nil {
		return 0
	}
	return gs.m.Size()
}

// Codes returns the codes in first-occurrence order.
func (gs *Groups) Codes() []string {
	if gs == nil || gs.m == nil {
		return nil
	}
	keys := gs.m.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// List returns the groups in first-occurrence order.
func (gs *Groups) List() []*Group {
	if gs == nil || gs.m == nil {
		return nil
	}
	values := gs.m.Values()
	out := make([]*Group, len(values))
	for i, v := range values {
		out[i] = v.(*Group)
	}
	return out
}

// getOrInsert returns the group for code, creating it with init when absent.
func (gs *Groups) getOrInsert(code string, init func() *Group) *Group {
	if g, ok := gs.Get(code); ok {
		return g
	}
	g := init()
	gs.m.Put(code, g)
	return g
}

// MarshalJSON encodes the groups as an array so the order survives.
func (gs *Groups) MarshalJSON() ([]byte, error) {
	list := gs.List()
	if list == nil {
		list = []*Group{}
	}
	return json.Marshal(list)
}
