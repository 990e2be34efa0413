package domain_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
)

func obsRef(id string) domain.Ref      { return domain.Ref{Kind: domain.KindObservation, ID: domain.ID(id)} }
func targetRef(id string) domain.Ref   { return domain.Ref{Kind: domain.KindTarget, ID: domain.ID(id)} }
func observerRef(id string) domain.Ref { return domain.Ref{Kind: domain.KindObserver, ID: domain.ID(id)} }
func sessionRef(id string) domain.Ref  { return domain.Ref{Kind: domain.KindSession, ID: domain.ID(id)} }
func siteRef(id string) domain.Ref     { return domain.Ref{Kind: domain.KindSite, ID: domain.ID(id)} }

type fixture struct {
	smith, jones *domain.Observer
	home         *domain.Site
	m31, m42     *domain.Target
	s1           *domain.Session
	o1           *domain.Observation
}

// newFixture loads the log of the first example scenario: Smith observes M31
// during session S1 at Home.
func newFixture(t *testing.T) (*domain.Cache, *fixture) {
	t.Helper()
	begin := time.Date(2024, 8, 1, 22, 0, 0, 0, time.UTC)
	f := &fixture{
		smith: &domain.Observer{ID: "smith", Name: "John", Surname: "Smith"},
		jones: &domain.Observer{ID: "jones", Name: "Mary", Surname: "Jones"},
		home:  &domain.Site{ID: "home", Name: "Home"},
		m31:   &domain.Target{ID: "m31", Name: "M31"},
		m42:   &domain.Target{ID: "m42", Name: "M42"},
		s1:    &domain.Session{ID: "s1", Begin: begin, Site: "home"},
		o1: &domain.Observation{
			ID: "o1", Begin: begin, Target: "m31", Observer: "smith", Session: "s1", Site: "home",
		},
	}
	c := domain.NewCache()
	require.NoError(t, c.Add(f.o1, f.smith, f.home, f.m31, f.s1))
	require.NoError(t, c.Add(f.m42))
	require.NoError(t, c.Add(f.jones))
	assertConsistent(t, c)
	return c, f
}

// assertConsistent recomputes every reverse-reference set from the forward
// references of the cached observations and compares it to the index.
func assertConsistent(t *testing.T, c *domain.Cache) {
	t.Helper()
	want := make(map[domain.Ref][]domain.Ref)
	for _, o := range c.Observations() {
		seen := make(map[domain.Ref]bool)
		var visit func(r domain.Ref)
		visit = func(r domain.Ref) {
			el, ok := c.Get(r)
			if !ok || seen[r] {
				return
			}
			seen[r] = true
			want[r] = append(want[r], o.Ref())
			switch x := el.(type) {
			case *domain.Target:
				for _, comp := range x.Components {
					visit(domain.Ref{Kind: domain.KindTarget, ID: comp})
				}
			case *domain.Session:
				for _, co := range x.CoObservers {
					visit(domain.Ref{Kind: domain.KindObserver, ID: co})
				}
			}
		}
		for _, r := range domain.Links(o) {
			visit(r)
		}
	}

	for el := range c.All() {
		got := c.ReferencingObservations(el.Ref())
		exp := want[el.Ref()]
		assert.ElementsMatch(t, exp, got, "reverse references of %s", el.Ref())
		assert.Equal(t, len(got), len(slices.Compact(slices.Clone(got))), "duplicates for %s", el.Ref())
	}
}

func TestCache_ReferencingObservations_Load(t *testing.T) {
	c, _ := newFixture(t)

	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(targetRef("m31")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("smith")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(sessionRef("s1")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(siteRef("home")))
	assert.Empty(t, c.ReferencingObservations(targetRef("m42")))
}

func TestCache_Update_RetargetsObservation(t *testing.T) {
	c, f := newFixture(t)

	updated := *f.o1
	updated.Target = "m42"
	require.NoError(t, c.Update(&updated))

	assert.Empty(t, c.ReferencingObservations(targetRef("m31")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(targetRef("m42")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("smith")))

	el, ok := c.Get(obsRef("o1"))
	require.True(t, ok)
	assert.Equal(t, domain.ID("m42"), el.(*domain.Observation).Target)
	assertConsistent(t, c)
}

func TestCache_Remove_BlockedByDependents(t *testing.T) {
	c, _ := newFixture(t)

	deps, err := c.Remove(observerRef("smith"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{obsRef("o1")}, deps)
	assert.True(t, c.Contains(observerRef("smith")))
}

func TestCache_Remove_AfterObservation(t *testing.T) {
	c, _ := newFixture(t)

	deps, err := c.Remove(obsRef("o1"))
	require.NoError(t, err)
	assert.Empty(t, deps)
	assert.False(t, c.Contains(obsRef("o1")))
	assert.Empty(t, c.ReferencingObservations(targetRef("m31")))

	deps, err = c.Remove(observerRef("smith"))
	require.NoError(t, err)
	assert.Empty(t, deps)
	assert.False(t, c.Contains(observerRef("smith")))
	assertConsistent(t, c)
}

func TestCache_Remove_SiteHeldBySession(t *testing.T) {
	c, _ := newFixture(t)
	_, err := c.Remove(obsRef("o1"))
	require.NoError(t, err)

	deps, err := c.Remove(siteRef("home"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{sessionRef("s1")}, deps)
	assert.Empty(t, c.ReferencingObservations(siteRef("home")))

	deps, err = c.Remove(sessionRef("s1"))
	require.NoError(t, err)
	assert.Empty(t, deps)

	deps, err = c.Remove(siteRef("home"))
	require.NoError(t, err)
	assert.Empty(t, deps)
	assert.NoError(t, c.Check())
}

func TestCache_Remove_Errors(t *testing.T) {
	c, _ := newFixture(t)

	_, err := c.Remove(domain.Ref{Kind: domain.Kind(99), ID: "x"})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = c.Remove(targetRef("nope"))
	require.ErrorIs(t, err, domain.ErrElementNotFound)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "target/nope", zErr.Metadata()["element"])
}

func TestCache_CompositeTarget(t *testing.T) {
	c := domain.NewCache()
	a := &domain.Target{ID: "alpha-cen-a", Name: "AlphaCenA"}
	b := &domain.Target{ID: "alpha-cen-b", Name: "AlphaCenB"}
	sys := &domain.Target{ID: "alpha-cen", Name: "AlphaCentauri", Components: []domain.ID{"alpha-cen-a", "alpha-cen-b"}}
	observer := &domain.Observer{ID: "smith", Surname: "Smith"}
	site := &domain.Site{ID: "home", Name: "Home"}
	o2 := &domain.Observation{ID: "o2", Target: "alpha-cen", Observer: "smith", Site: "home"}

	require.NoError(t, c.Add(o2, a, b, sys, observer, site))

	assert.Equal(t, []domain.Ref{obsRef("o2")}, c.ReferencingObservations(targetRef("alpha-cen-a")))
	assert.Equal(t, []domain.Ref{obsRef("o2")}, c.ReferencingObservations(targetRef("alpha-cen-b")))
	assert.Equal(t, []domain.Ref{obsRef("o2")}, c.ReferencingObservations(targetRef("alpha-cen")))

	// Components are held by the composite even without observations.
	assert.Equal(t, []domain.Ref{targetRef("alpha-cen")}, c.Holders(targetRef("alpha-cen-a")))
	assertConsistent(t, c)
}

func TestCache_CompositeTarget_ComponentDiff(t *testing.T) {
	c := domain.NewCache()
	a := &domain.Target{ID: "a", Name: "A"}
	b := &domain.Target{ID: "b", Name: "B"}
	sys := &domain.Target{ID: "sys", Name: "System", Components: []domain.ID{"a"}}
	observer := &domain.Observer{ID: "smith"}
	site := &domain.Site{ID: "home"}
	require.NoError(t, c.Add(sys, a, b, observer, site))
	for _, id := range []string{"o1", "o2", "o3"} {
		o := &domain.Observation{ID: domain.ID(id), Target: "sys", Observer: "smith", Site: "home"}
		require.NoError(t, c.Add(o))
	}
	require.Len(t, c.ReferencingObservations(targetRef("sys")), 3)
	assert.Empty(t, c.ReferencingObservations(targetRef("b")))

	withB := *sys
	withB.Components = []domain.ID{"a", "b"}
	require.NoError(t, c.Update(&withB))
	assert.Len(t, c.ReferencingObservations(targetRef("b")), 3)
	assertConsistent(t, c)

	withoutB := *sys
	withoutB.Components = []domain.ID{"a"}
	require.NoError(t, c.Update(&withoutB))
	assert.Empty(t, c.ReferencingObservations(targetRef("b")))
	assert.Empty(t, c.Holders(targetRef("b")))
	assert.Len(t, c.ReferencingObservations(targetRef("a")), 3)
	assertConsistent(t, c)
}

func TestCache_CompositeTarget_Nested(t *testing.T) {
	c := domain.NewCache()
	star := &domain.Target{ID: "star", Name: "Star"}
	pair := &domain.Target{ID: "pair", Name: "Pair", Components: []domain.ID{"star"}}
	cluster := &domain.Target{ID: "cluster", Name: "Cluster", Components: []domain.ID{"pair", "cluster"}}
	o := &domain.Observation{ID: "o1", Target: "cluster"}

	require.NoError(t, c.Add(o, star, pair, cluster))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(targetRef("star")))
	assertConsistent(t, c)

	deps, err := c.Remove(targetRef("star"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Ref{obsRef("o1"), targetRef("pair")}, deps)
}

func TestCache_CoObservers(t *testing.T) {
	c, f := newFixture(t)

	s1 := *f.s1
	s1.CoObservers = []domain.ID{"jones"}
	require.NoError(t, c.Update(&s1))

	o3 := &domain.Observation{ID: "o3", Begin: f.o1.Begin.Add(time.Hour), Target: "m42", Observer: "smith", Session: "s1", Site: "home"}
	require.NoError(t, c.Add(o3))

	assert.Equal(t, []domain.Ref{obsRef("o1"), obsRef("o3")}, c.ReferencingObservations(observerRef("jones")))
	assert.Equal(t, []domain.Ref{sessionRef("s1")}, c.Holders(observerRef("jones")))
	assertConsistent(t, c)

	s1.CoObservers = nil
	require.NoError(t, c.Update(&s1))
	assert.Empty(t, c.ReferencingObservations(observerRef("jones")))
	assert.Empty(t, c.Dependents(observerRef("jones")))
	assertConsistent(t, c)

	deps, err := c.Remove(observerRef("jones"))
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestCache_CoObservers_Idempotent(t *testing.T) {
	c, f := newFixture(t)

	for range 2 {
		s1 := *f.s1
		s1.CoObservers = []domain.ID{"jones", "jones"}
		require.NoError(t, c.Update(&s1))
	}

	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("jones")))
	assert.Equal(t, []domain.Ref{sessionRef("s1")}, c.Holders(observerRef("jones")))
	assertConsistent(t, c)
}

func TestCache_CoObserver_AlsoPrimaryObserver(t *testing.T) {
	c, f := newFixture(t)

	s1 := *f.s1
	s1.CoObservers = []domain.ID{"smith"}
	require.NoError(t, c.Update(&s1))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("smith")))

	s1.CoObservers = nil
	require.NoError(t, c.Update(&s1))

	// Smith is still the primary observer of o1.
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("smith")))
	assertConsistent(t, c)
}

func TestCache_Update_SessionSwitch(t *testing.T) {
	c, f := newFixture(t)
	s2 := &domain.Session{ID: "s2", Site: "home", CoObservers: []domain.ID{"jones"}}
	require.NoError(t, c.Add(s2))

	o1 := *f.o1
	o1.Session = "s2"
	require.NoError(t, c.Update(&o1))

	assert.Empty(t, c.ReferencingObservations(sessionRef("s1")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(sessionRef("s2")))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("jones")))
	assertConsistent(t, c)
}

func TestCache_Add_Duplicate(t *testing.T) {
	c, f := newFixture(t)
	before := c.Len()

	renamed := *f.m31
	renamed.Name = "Andromeda"
	inserted, err := c.Insert(&renamed)
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.Equal(t, before, c.Len())
	el, _ := c.Get(targetRef("m31"))
	assert.Equal(t, "M31", el.DisplayName())
	assertConsistent(t, c)
}

func TestCache_Insert_ReportsNewElements(t *testing.T) {
	c := domain.NewCache()

	inserted, err := c.Insert(&domain.Site{ID: "home", Name: "Home"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = c.Insert(&domain.Site{ID: "home", Name: "Other"})
	require.NoError(t, err)
	assert.False(t, inserted)

	inserted, err = c.Insert(&domain.Site{ID: "field", Name: "Field"}, &domain.Site{ID: "home", Name: "Home"})
	require.NoError(t, err)
	assert.True(t, inserted, "dependents already present do not count")
	assert.Equal(t, 2, c.Len())
}

func TestCache_Add_Invalid(t *testing.T) {
	c := domain.NewCache()

	assert.ErrorIs(t, c.Add(nil), domain.ErrUnknownKind)
	var nilTarget *domain.Target
	assert.ErrorIs(t, c.Add(nilTarget), domain.ErrUnknownKind)
	assert.ErrorIs(t, c.Add(&domain.Site{Name: "no id"}), domain.ErrMissingID)
	assert.True(t, c.IsEmpty())
}

func TestCache_Update_NotFound(t *testing.T) {
	c := domain.NewCache()
	err := c.Update(&domain.Target{ID: "m1"})
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
}

func TestCache_LazyWiring(t *testing.T) {
	c := domain.NewCache()
	o := &domain.Observation{ID: "o1", Target: "sys", Observer: "smith", Session: "s1", Site: "home"}

	require.NoError(t, c.Add(o))
	assert.ErrorIs(t, c.Check(), domain.ErrDanglingReference)

	require.NoError(t, c.Add(&domain.Target{ID: "sys", Components: []domain.ID{"a"}}))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(targetRef("sys")))

	require.NoError(t, c.Add(&domain.Target{ID: "a"}))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(targetRef("a")))

	require.NoError(t, c.Add(&domain.Session{ID: "s1", Site: "home", CoObservers: []domain.ID{"jones"}}))
	require.NoError(t, c.Add(&domain.Observer{ID: "jones"}))
	assert.Equal(t, []domain.Ref{obsRef("o1")}, c.ReferencingObservations(observerRef("jones")))
	assert.Equal(t, []domain.Ref{sessionRef("s1")}, c.Holders(observerRef("jones")))

	require.NoError(t, c.Add(&domain.Observer{ID: "smith"}))
	require.NoError(t, c.Add(&domain.Site{ID: "home"}))
	assert.Equal(t, []domain.Ref{sessionRef("s1")}, c.Holders(siteRef("home")))
	assert.NoError(t, c.Check())
	assertConsistent(t, c)
}

func TestCache_Check_Metadata(t *testing.T) {
	c := domain.NewCache()
	require.NoError(t, c.Add(&domain.Observation{ID: "o1", Target: "ghost"}))

	err := c.Check()
	require.Error(t, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, "target/ghost", meta["reference"])
	assert.Equal(t, "observation/o1", meta["referenced_by"])

	_, err = c.Remove(obsRef("o1"))
	require.NoError(t, err)
	assert.NoError(t, c.Check())
}

func TestCache_SortedGetters(t *testing.T) {
	c := domain.NewCache()
	require.NoError(t, c.Add(&domain.Observer{ID: "1", Name: "Zed", Surname: "Brown"}))
	require.NoError(t, c.Add(&domain.Observer{ID: "2", Name: "Amy", Surname: "brown"}))
	require.NoError(t, c.Add(&domain.Observer{ID: "3", Name: "Bob", Surname: "Adams"}))
	require.NoError(t, c.Add(&domain.Scope{ID: "s1", Vendor: "Zeiss", Model: "APQ"}))
	require.NoError(t, c.Add(&domain.Scope{ID: "s2", Vendor: "Celestron", Model: "C8"}))

	var names []string
	for _, o := range c.Observers() {
		names = append(names, o.DisplayName())
	}
	assert.Equal(t, []string{"Bob Adams", "Amy brown", "Zed Brown"}, names)

	scopes := c.Scopes()
	require.Len(t, scopes, 2)
	assert.Equal(t, "Celestron C8", scopes[0].DisplayName())

	var kinds []domain.Kind
	for el := range c.All() {
		kinds = append(kinds, el.Ref().Kind)
	}
	assert.True(t, slices.IsSorted(kinds), "All must yield in document order: %v", kinds)
}

func TestCache_Extract(t *testing.T) {
	c, f := newFixture(t)
	require.NoError(t, c.Add(&domain.Observer{ID: "lonely"}))
	s1 := *f.s1
	s1.CoObservers = []domain.ID{"jones"}
	require.NoError(t, c.Update(&s1))

	sub, err := c.Extract(targetRef("m31"))
	require.NoError(t, err)

	for _, r := range []domain.Ref{targetRef("m31"), obsRef("o1"), observerRef("smith"), sessionRef("s1"), siteRef("home"), observerRef("jones")} {
		assert.True(t, sub.Contains(r), "expected %s in extract", r)
	}
	assert.False(t, sub.Contains(observerRef("lonely")))
	assert.False(t, sub.Contains(targetRef("m42")))
	assert.NoError(t, sub.Check())
	assertConsistent(t, sub)

	_, err = c.Extract(targetRef("missing"))
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
}
