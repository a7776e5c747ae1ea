package afq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestArguments_SharedKeySpace(t *testing.T) {
	t.Parallel()

	a := NewArguments()
	a.Set("clean_params", cty.StringVal("x"))
	g := a.EnsureGroup("clean_params")
	g["n_points"] = cty.NumberIntVal(100)

	_, ok := a.Get("clean_params")
	assert.False(t, ok, "creating a group replaces a value with the same key")
	assert.Equal(t, []string{"clean_params"}, a.Keys())

	same := a.EnsureGroup("clean_params")
	assert.Len(t, same, 1, "an existing group is returned, not reset")

	a.Set("clean_params", cty.True)
	_, ok = a.Group("clean_params")
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())

	a.Delete("clean_params")
	assert.Zero(t, a.Len())
}

func TestArguments_ValueAndString(t *testing.T) {
	t.Parallel()

	a := NewArguments()
	assert.True(t, cty.EmptyObjectVal.RawEquals(a.Value()))
	assert.Equal(t, "{}", a.String())

	a.Set("omp_nthreads", cty.NumberIntVal(8))
	a.EnsureGroup("tracking_params")["odf_model"] = cty.StringVal("DTI")
	a.EnsureGroup("clean_params")

	v := a.Value()
	require.True(t, v.Type().IsObjectType())
	assert.True(t, cty.EmptyObjectVal.RawEquals(v.GetAttr("clean_params")))
	assert.Equal(t, "DTI", v.GetAttr("tracking_params").GetAttr("odf_model").AsString())

	assert.Equal(t, `{clean_params = {}, omp_nthreads = 8, tracking_params = {odf_model = "DTI"}}`, a.String())
}
