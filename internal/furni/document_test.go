package furni

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "name": "rare_dragonlamp",
  "logicType": "furniture_multistate",
  "assets": {"a": {"source": "b", "x": 1}},
  "visualizations": [
    {
      "size": 64,
      "angle": 45,
      "layerCount": 3,
      "layers": {
        "10": {"z": 5, "ink": "ADD"},
        "name": {"alpha": 40, "tag": "COLOR1", "x": 3},
        "2": {"z": 1, "ignoreMouse": true}
      },
      "directions": {"0": {}, "2": {}},
      "animations": {"1": {"layers": {}}},
      "colors": {"1": {"layers": {"0": {"color": 16777215}}}}
    },
    {"size": 32, "angle": 45, "layerCount": 0}
  ]
}`

func TestParse_TypedFields(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, d.Visualizations, 2)

	v := d.Visualization(0)
	assert.Equal(t, 64, v.Size)
	assert.Equal(t, 45, v.Angle)
	assert.Equal(t, 3, v.LayerCount)
	assert.Equal(t, 1, v.AnimationCount())
	assert.Equal(t, 2, v.DirectionCount())
	assert.Contains(t, v.Extra, "colors")

	l, ok := v.Layers.Get("10")
	require.True(t, ok)
	assert.Equal(t, 5, l.ZValue())
	assert.Equal(t, DefaultAlpha, l.AlphaValue())
	assert.Equal(t, InkAdd, l.Ink)
	assert.False(t, l.IgnoresMouse())

	named, ok := v.Layers.Get("name")
	require.True(t, ok)
	assert.Equal(t, 40, named.AlphaValue())
	assert.Equal(t, TagColor1, named.Tag)
	assert.Contains(t, named.Extra, "x")

	second := d.Visualization(1)
	assert.Nil(t, second.Layers)
	assert.Nil(t, d.Visualization(2))
	assert.Nil(t, d.Visualization(-1))
}

func TestLayers_KeyOrder(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "10", "name"}, d.Visualization(0).Layers.IDs())
}

func TestDocument_RoundTripPreservesUnknownMembers(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	out, err := d.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, sampleDoc, string(out))
}

func TestDocument_EncodeWritesLayersInKeyOrder(t *testing.T) {
	ls := NewLayers()
	ls.Set("b", NewLayer())
	ls.Set("1", NewLayer())
	ls.Set("a", NewLayer())
	ls.Set("0", NewLayer())

	b, err := json.Marshal(ls)
	require.NoError(t, err)
	s := string(b)
	assert.Less(t, indexOf(s, `"0"`), indexOf(s, `"1"`))
	assert.Less(t, indexOf(s, `"1"`), indexOf(s, `"b"`))
	assert.Less(t, indexOf(s, `"b"`), indexOf(s, `"a"`))
}

func TestLayer_AbsentFieldsStayAbsent(t *testing.T) {
	var l Layer
	require.NoError(t, json.Unmarshal([]byte(`{"z": 2}`), &l))
	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z": 2}`, string(b))
}

func TestLayer_NoneIsNeverWritten(t *testing.T) {
	l := NewLayer()
	ink, ok := ParseInk(NoneLabel)
	require.True(t, ok)
	l.Ink = ink
	tag, ok := ParseTag("none")
	require.True(t, ok)
	l.Tag = tag

	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z": 0, "alpha": 255, "ignoreMouse": false}`, string(b))
}

func TestLayer_DecodeLenientNumbers(t *testing.T) {
	var l Layer
	require.NoError(t, json.Unmarshal([]byte(`{"z": 2.7, "alpha": "128"}`), &l))
	assert.Equal(t, 2, l.ZValue())
	assert.Equal(t, 128, l.AlphaValue())

	assert.Error(t, json.Unmarshal([]byte(`{"z": "abc"}`), &l))
}

func TestSetAlpha_Clamps(t *testing.T) {
	l := &Layer{}
	l.SetAlpha(999)
	assert.Equal(t, MaxAlpha, l.AlphaValue())
	l.SetAlpha(-4)
	assert.Equal(t, MinAlpha, l.AlphaValue())
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	c := d.Clone()

	cv := c.Visualization(0)
	cv.Size = 1
	cv.Layers.Delete("10")
	named, _ := cv.Layers.Get("name")
	named.SetAlpha(1)
	named.Extra["x"][0] = '9'
	cv.Extra["colors"] = json.RawMessage(`{}`)
	c.Visualizations = append(c.Visualizations, &Visualization{})

	v := d.Visualization(0)
	assert.Equal(t, 64, v.Size)
	assert.True(t, v.Layers.Has("10"))
	orig, _ := v.Layers.Get("name")
	assert.Equal(t, 40, orig.AlphaValue())
	assert.Equal(t, "3", string(orig.Extra["x"]))
	assert.NotEqual(t, `{}`, string(v.Extra["colors"]))
	assert.Len(t, d.Visualizations, 2)
}

func TestLayers_DeleteKeepsOrder(t *testing.T) {
	ls := NewLayers()
	for _, id := range []string{"x", "y", "z"} {
		ls.Set(id, NewLayer())
	}
	assert.True(t, ls.Delete("y"))
	assert.False(t, ls.Delete("y"))
	assert.Equal(t, []string{"x", "z"}, ls.IDs())
	assert.Equal(t, 2, ls.Len())

	var nilSet *Layers
	assert.Equal(t, 0, nilSet.Len())
	assert.False(t, nilSet.Has("x"))
}

func TestIsIndexKey(t *testing.T) {
	for _, id := range []string{"0", "7", "4294967294"} {
		assert.True(t, isIndexKey(id), id)
	}
	for _, id := range []string{"", "01", "-1", "+1", "1.5", "4294967295", "a"} {
		assert.False(t, isIndexKey(id), id)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"visualizations": {}}`))
	assert.Error(t, err)
	_, err = Parse([]byte(`[`))
	assert.Error(t, err)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

const orderedDoc = `{
  "name": "chair",
  "visualizations": [
    {
      "size": 64,
      "layers": {
        "0": {
          "z": 1,
          "x": 3,
          "alpha": 40,
          "ink": "ADD"
        }
      },
      "angle": 45,
      "layerCount": 1
    }
  ],
  "assets": {
    "b": 1,
    "a": 2
  }
}
`

func TestDocument_EncodeKeepsMemberOrder(t *testing.T) {
	d, err := Parse([]byte(orderedDoc))
	require.NoError(t, err)

	out, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, orderedDoc, string(out))
}

func TestDocument_EditedMembersKeepPosition(t *testing.T) {
	d, err := Parse([]byte(orderedDoc))
	require.NoError(t, err)

	c := d.Clone()
	l, ok := c.Visualization(0).Layers.Get("0")
	require.True(t, ok)
	l.SetAlpha(200)
	l.Ink = ""
	l.Tag = TagBadge
	c.Visualization(0).Size = 32

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"chair","visualizations":[{"size":32,"layers":{"0":{"z":1,"x":3,"alpha":200,"tag":"BADGE"}},"angle":45,"layerCount":1}],"assets":{"b":1,"a":2}}`,
		string(b))
}

func TestDocument_NewMembersFollowDecodedOnes(t *testing.T) {
	d, err := Parse([]byte(`{"visualizations":[{"layers":{}}],"name":"x"}`))
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"visualizations":[{"layers":{},"size":0,"angle":0,"layerCount":0}],"name":"x"}`, string(b))
}

func TestLayers_NullLayerRoundTrips(t *testing.T) {
	const in = `{"visualizations":[{"size":1,"angle":0,"layerCount":2,"layers":{"0":null,"1":{"z":2}}}]}`
	d, err := Parse([]byte(in))
	require.NoError(t, err)

	l, ok := d.Visualization(0).Layers.Get("0")
	assert.True(t, ok)
	assert.Nil(t, l)
	assert.Equal(t, 0, l.ZValue())

	b, err := json.Marshal(d.Clone())
	require.NoError(t, err)
	assert.Equal(t, in, string(b))
}

func TestVisualization_AnimationsInIndexOrder(t *testing.T) {
	var v Visualization
	require.NoError(t, json.Unmarshal([]byte(`{"size":1,"angle":0,"layerCount":0,"animations":{"10":{},"2":{},"1":{}}}`), &v))

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"size":1,"angle":0,"layerCount":0,"animations":{"1":{},"2":{},"10":{}}}`, string(b))
}

func TestLayer_CopyFieldsSharesNoPointers(t *testing.T) {
	l := NewLayer()
	l.Ink = InkCopy
	c := l.copyFields()

	c.SetZ(9)
	*c.Alpha = 1
	*c.IgnoreMouse = true
	assert.Equal(t, 0, l.ZValue())
	assert.Equal(t, DefaultAlpha, l.AlphaValue())
	assert.False(t, l.IgnoresMouse())
	assert.Equal(t, InkCopy, c.Ink)
}

func TestLayer_CloneSharesNoPointers(t *testing.T) {
	l := NewLayer()
	c := l.Clone()
	*c.Z = 4
	*c.Alpha = 3
	*c.IgnoreMouse = true
	assert.Equal(t, 0, l.ZValue())
	assert.Equal(t, DefaultAlpha, l.AlphaValue())
	assert.False(t, l.IgnoresMouse())
}
