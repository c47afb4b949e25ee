package osmparser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campusOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="101" lat="24.8262" lon="102.8565">
    <tag k="name" v="Library"/>
    <tag k="amenity" v="library"/>
    <tag k="addr:street" v="Cuihu North Road"/>
    <tag k="addr:housenumber" v="2"/>
  </node>
  <node id="102" lat="24.8270" lon="102.8580">
    <tag k="name" v="Canteen"/>
  </node>
  <node id="103" lat="24.8251" lon="102.8561"/>
  <node id="104" lat="24.8255" lon="102.8562">
    <tag k="name" v="Gate crossing"/>
    <tag k="crossing" v="zebra"/>
  </node>
  <way id="900">
    <nd ref="101"/>
    <nd ref="102"/>
    <tag k="name" v="Campus walk"/>
    <tag k="highway" v="footway"/>
  </way>
</osm>`

func TestParseXML(t *testing.T) {
	p := NewOSMPOIParser(false)
	pois, err := p.Parse(context.Background(), strings.NewReader(campusOSM))
	require.NoError(t, err)

	require.Len(t, pois, 2)
	assert.Equal(t, int64(101), pois[0].ID)
	assert.Equal(t, "Library", pois[0].Name)
	assert.Equal(t, "Cuihu North Road 2", pois[0].Address)
	assert.Equal(t, 24.8262, pois[0].Lat)
	assert.Equal(t, 102.8565, pois[0].Lon)

	assert.Equal(t, "Canteen", pois[1].Name)
	assert.Equal(t, "", pois[1].Address)
}

func TestParseBrokenXML(t *testing.T) {
	p := NewOSMPOIParser(false)
	_, err := p.Parse(context.Background(), strings.NewReader(`<osm><node id="1" lat="x"`))
	assert.Error(t, err)
}
