package xmldoc_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/obslog/internal/adapters/xmldoc"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<observations xmlns="http://groups.google.com/group/openastronomylog" version="2.0">
  <targets>
    <target id="alcor-mizar" type="multiple star">
      <name>Alcor/Mizar</name>
      <constellation>UMa</constellation>
      <component>mizar</component>
      <component>alcor</component>
    </target>
    <target id="mizar"><name>Mizar</name></target>
    <target id="alcor"><name>Alcor</name></target>
    <target id="m31" type="galaxy">
      <name>M31</name>
      <alias>Andromeda Galaxy</alias>
      <position>
        <ra unit="rad">0.18648</ra>
        <dec unit="arcmin">2476.8</dec>
      </position>
    </target>
  </targets>
  <sites>
    <site id="home">
      <name>Home</name>
      <longitude unit="deg">8.5</longitude>
      <latitude unit="deg">47.4</latitude>
      <timezone>60</timezone>
    </site>
  </sites>
  <observers>
    <observer id="smith"><name>John</name><surname>Smith</surname></observer>
    <observer id="jones"><name>Mary</name><surname>Jones</surname><contact>mary@example.org</contact></observer>
  </observers>
  <scopes>
    <scope id="dob"><model>8in Dobsonian</model><vendor>Acme</vendor><aperture>203</aperture></scope>
  </scopes>
  <eyepieces>
    <eyepiece id="ep25"><model>Plössl 25</model><focalLength>25</focalLength><apparentFOV unit="deg">52</apparentFOV></eyepiece>
  </eyepieces>
  <sessions>
    <session id="s1" lang="en">
      <begin>2024-08-01T21:00:00Z</begin>
      <end>2024-08-02T01:00:00Z</end>
      <site>home</site>
      <coObserver>jones</coObserver>
    </session>
  </sessions>
  <observation id="o1">
    <observer>smith</observer>
    <site>home</site>
    <session>s1</session>
    <target>m31</target>
    <begin>2024-08-01T22:00:00Z</begin>
    <scope>dob</scope>
    <eyepiece>ep25</eyepiece>
    <result><description>Core and dust lane</description><rating>2</rating></result>
  </observation>
  <observation id="o2">
    <observer>smith</observer>
    <site>home</site>
    <target>alcor-mizar</target>
    <begin>2024-08-01T23:00:00Z</begin>
  </observation>
</observations>
`

func ref(k domain.Kind, id string) domain.Ref { return domain.Ref{Kind: k, ID: domain.ID(id)} }

func TestDecode(t *testing.T) {
	cache, err := xmldoc.Decode(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 12, cache.Len())
	assert.Len(t, cache.Targets(), 4)
	assert.Len(t, cache.Observations(), 2)

	el, ok := cache.Get(ref(domain.KindTarget, "m31"))
	require.True(t, ok)
	m31 := el.(*domain.Target)
	assert.InDelta(t, 10.684, m31.RA, 0.01)
	assert.InDelta(t, 41.28, m31.Dec, 0.01)
	assert.Equal(t, []string{"Andromeda Galaxy"}, m31.Aliases)

	el, ok = cache.Get(ref(domain.KindObservation, "o1"))
	require.True(t, ok)
	o1 := el.(*domain.Observation)
	assert.Equal(t, 2, o1.Result.Rating)
	assert.Equal(t, domain.ID("ep25"), o1.Eyepiece)

	assert.Equal(t,
		[]domain.Ref{ref(domain.KindObservation, "o1"), ref(domain.KindObservation, "o2")},
		cache.ReferencingObservations(ref(domain.KindObserver, "smith")))
	// Co-observer of s1 through o1.
	assert.Equal(t,
		[]domain.Ref{ref(domain.KindObservation, "o1")},
		cache.ReferencingObservations(ref(domain.KindObserver, "jones")))
	// Component of the composite observed in o2.
	assert.Equal(t,
		[]domain.Ref{ref(domain.KindObservation, "o2")},
		cache.ReferencingObservations(ref(domain.KindTarget, "alcor")))
	assert.Equal(t,
		[]domain.Ref{ref(domain.KindTarget, "alcor-mizar")},
		cache.Holders(ref(domain.KindTarget, "alcor")))
}

func TestDecode_Empty(t *testing.T) {
	_, err := xmldoc.Decode(context.Background(), strings.NewReader(""))
	require.ErrorContains(t, err, "document is empty")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := xmldoc.Decode(context.Background(), strings.NewReader("<observations><targets>"))
	require.ErrorContains(t, err, "malformed document")
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := xmldoc.Decode(ctx, strings.NewReader(sample))
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidate_CollectsProblems(t *testing.T) {
	doc := `<observations>
  <targets><target id="m31"><name>M31</name><component>m32</component></target></targets>
  <observers>
    <observer id="smith"><name>John</name><surname>Smith</surname></observer>
    <observer id="smith"><name>Jack</name><surname>Smith</surname></observer>
  </observers>
  <observation id="o1">
    <observer>nobody</observer>
    <target>m31</target>
    <begin>yesterday</begin>
    <result><rating>9</rating></result>
  </observation>
</observations>`

	_, err := xmldoc.Decode(context.Background(), strings.NewReader(doc))
	require.ErrorIs(t, err, xmldoc.ErrInvalidDocument)

	// component m32, duplicate smith, unknown observer, missing site,
	// bad begin, rating.
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, 6, zErr.Metadata()["problems"])
	assert.ErrorContains(t, err, `duplicate observer id "smith"`)
	assert.ErrorContains(t, err, `references unknown observer "nobody"`)
	assert.ErrorContains(t, err, "missing site")
}

func TestValidate_WrongNamespace(t *testing.T) {
	_, err := xmldoc.Decode(context.Background(),
		strings.NewReader(`<observations xmlns="urn:other"></observations>`))
	require.ErrorIs(t, err, xmldoc.ErrInvalidDocument)
}

func TestEncode_DocumentOrder(t *testing.T) {
	cache, err := xmldoc.Decode(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xmldoc.Encode(context.Background(), &buf, cache, "  "))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `xmlns="`+xmldoc.Namespace+`"`)
	assert.Contains(t, out, `version="2.0"`)

	sections := []string{"<targets>", "<sites>", "<observers>", "<scopes>", "<eyepieces>", "<sessions>", "<observation id="}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.NotEqual(t, -1, idx, "missing %s", s)
		assert.Greater(t, idx, last, "%s out of order", s)
		last = idx
	}
	for _, empty := range []string{"<filters", "<imagers", "<lenses"} {
		assert.NotContains(t, out, empty)
	}
}

func TestEncode_EmptyCacheHasNoSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xmldoc.Encode(context.Background(), &buf, domain.NewCache(), "  "))

	out := buf.String()
	assert.Contains(t, out, "<observations ")
	for _, section := range []string{"<targets", "<sites", "<observers", "<sessions", "<observation "} {
		assert.NotContains(t, out, section)
	}

	again, err := xmldoc.Decode(context.Background(), strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())
}

func TestEncode_DecodeStable(t *testing.T) {
	cache, err := xmldoc.Decode(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, xmldoc.Encode(context.Background(), &first, cache, "  "))

	again, err := xmldoc.Decode(context.Background(), bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	require.NoError(t, xmldoc.Encode(context.Background(), &second, again, "  "))

	assert.Equal(t, first.String(), second.String())
}
