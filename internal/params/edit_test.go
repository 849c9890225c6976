package params

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"purls/internal/model"
)

func sample() []model.Param {
	return []model.Param{
		model.QueryParam("a", "1"),
		model.FragmentParam("top"),
		model.QueryParam("b", "2"),
	}
}

func TestSorted(t *testing.T) {
	in := sample()
	got := Sorted(in)

	assert.Equal(t, []model.Param{
		model.QueryParam("a", "1"),
		model.QueryParam("b", "2"),
		model.FragmentParam("top"),
	}, got)
	assert.Equal(t, sample(), in, "input must not change")
}

func TestAdd(t *testing.T) {
	in := sample()

	got := Add(in, model.QueryParam("c", "3"))
	assert.Equal(t, []model.Param{
		model.QueryParam("a", "1"),
		model.QueryParam("c", "3"),
		model.FragmentParam("top"),
		model.QueryParam("b", "2"),
	}, got)

	got = Add(in, model.FragmentParam("other"))
	assert.Equal(t, in, got, "second fragment is ignored")

	got = Add(nil, model.QueryParam("x", ""))
	assert.Equal(t, []model.Param{model.QueryParam("x", "")}, got)

	assert.Equal(t, sample(), in)
}

func TestAddUTM(t *testing.T) {
	in := []model.Param{
		model.QueryParam("utm_medium", "email"),
		model.FragmentParam("top"),
	}
	got := AddUTM(in)

	assert.Equal(t, []model.Param{
		model.QueryParam("utm_medium", "email"),
		model.QueryParam("utm_source", ""),
		model.QueryParam("utm_campaign", ""),
		model.QueryParam("utm_term", ""),
		model.QueryParam("utm_content", ""),
		model.FragmentParam("top"),
	}, got)

	assert.Equal(t, got, AddUTM(got), "all keys present adds nothing")
}

func TestAddFragment(t *testing.T) {
	got := AddFragment([]model.Param{model.QueryParam("a", "1")})
	assert.Equal(t, []model.Param{model.QueryParam("a", "1"), model.FragmentParam("")}, got)
	assert.Len(t, AddFragment(got), 2)
	assert.True(t, HasFragment(got))
	assert.False(t, HasFragment(nil))
}

func TestUpdate(t *testing.T) {
	in := sample()

	got := Update(in, 0, "z", "9")
	assert.Equal(t, model.QueryParam("z", "9"), got[0])

	got = Update(in, 1, "ignored", "bottom")
	assert.Equal(t, model.FragmentParam("bottom"), got[1])

	assert.Equal(t, in, Update(in, 7, "k", "v"))
	assert.Equal(t, sample(), in)
}

func TestRemove(t *testing.T) {
	in := sample()

	assert.Equal(t, []model.Param{
		model.QueryParam("a", "1"),
		model.QueryParam("b", "2"),
	}, Remove(in, 1))
	assert.Equal(t, in, Remove(in, -1))
	assert.Equal(t, sample(), in)
}

func TestSeparator(t *testing.T) {
	sorted := Sorted(sample())
	assert.Equal(t, "?", Separator(sorted, 0))
	assert.Equal(t, "&", Separator(sorted, 1))
	assert.Equal(t, "#", Separator(sorted, 2))
	assert.Equal(t, "", Separator(sorted, 3))

	onlyFragment := []model.Param{model.FragmentParam("x")}
	assert.Equal(t, "#", Separator(onlyFragment, 0))
}
