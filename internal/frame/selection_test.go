package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSelect(t *testing.T) {
	t.Run("unset alias is recorded", func(t *testing.T) {
		s := NewSelection("task.a")
		require.NoError(t, s.Select("ref", "world"))

		f, ok := s.Lookup("ref")
		require.True(t, ok)
		assert.Equal(t, Frame("world"), f)
	})

	t.Run("same frame twice is a no-op", func(t *testing.T) {
		s := NewSelection("task.a")
		require.NoError(t, s.Select("ref", "world"))
		require.NoError(t, s.Select("ref", "world"))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("different frame is a conflict", func(t *testing.T) {
		s := NewSelection("task.a")
		require.NoError(t, s.Select("ref", "world"))

		err := s.Select("ref", "map")
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "task.a", conflict.Node)
		assert.Equal(t, Alias("ref"), conflict.Alias)
		assert.Equal(t, Frame("world"), conflict.Existing)
		assert.Equal(t, Frame("map"), conflict.Attempted)
		assert.Contains(t, err.Error(), "conflicting frames selected for ref (world != map)")

		f, _ := s.Lookup("ref")
		assert.Equal(t, Frame("world"), f, "a conflict must not overwrite the existing value")
	})
}

func TestFreeze(t *testing.T) {
	s := NewSelection("task.a")
	require.NoError(t, s.Select("ref", "world"))
	s.Freeze()

	assert.True(t, s.Frozen())
	assert.NoError(t, s.Select("ref", "world"))
	assert.Error(t, s.Select("ref", "map"))
	assert.Panics(t, func() { _ = s.Select("other", "map") })
}

func TestResolve(t *testing.T) {
	s := NewSelection("task.a")
	require.NoError(t, s.SelectAll(map[Alias]Frame{"from": "body", "to": "world"}))

	tr, ok := s.Resolve(LocalTransform{From: "from", To: "to"})
	require.True(t, ok)
	assert.Equal(t, Transform{From: "body", To: "world"}, tr)

	_, ok = s.Resolve(LocalTransform{From: "from", To: "missing"})
	assert.False(t, ok)
}

func TestTransform(t *testing.T) {
	tr := Transform{From: "a", To: "b"}
	assert.False(t, tr.IsIdentity())
	assert.True(t, Transform{From: "a", To: "a"}.IsIdentity())
	assert.Equal(t, Transform{From: "b", To: "a"}, tr.Reverse())
	assert.Equal(t, "a => b", tr.String())
}

func TestInvalidConfigurationError(t *testing.T) {
	unset := &InvalidConfigurationError{Node: "task.dev", Alias: "frame", Role: RoleReference}
	assert.Equal(t, "no frame selected for frame as reference frame on task.dev", unset.Error())

	undefined := &InvalidConfigurationError{Node: "task.dev", Alias: "from", Frame: "test_from", Role: RoleFrom}
	assert.Contains(t, undefined.Error(), "test_from selected as 'from' frame")
}

// selectionsGen draws small alias->frame mappings over a tiny alphabet so that
// overlaps, and therefore conflicts, are frequent.
func selectionsGen() *rapid.Generator[map[Alias]Frame] {
	return rapid.MapOf(
		rapid.Custom(func(t *rapid.T) Alias {
			return Alias(rapid.SampledFrom([]string{"a", "b", "c", "d"}).Draw(t, "alias"))
		}),
		rapid.Custom(func(t *rapid.T) Frame {
			return Frame(rapid.SampledFrom([]string{"world", "map", "body"}).Draw(t, "frame"))
		}),
	)
}

func fromMap(m map[Alias]Frame) *Selection {
	s := NewSelection("src")
	for k, v := range m {
		s.entries[k] = v
	}
	return s
}

func compatible(ms ...map[Alias]Frame) bool {
	seen := make(map[Alias]Frame)
	for _, m := range ms {
		for k, v := range m {
			if prev, ok := seen[k]; ok && prev != v {
				return false
			}
			seen[k] = v
		}
	}
	return true
}

func TestMerge_CommutativeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := selectionsGen().Draw(rt, "a")
		b := selectionsGen().Draw(rt, "b")

		ab := NewSelection("n")
		errAB := errors.Join(ab.Merge(fromMap(a)), ab.Merge(fromMap(b)))
		ba := NewSelection("n")
		errBA := errors.Join(ba.Merge(fromMap(b)), ba.Merge(fromMap(a)))

		if compatible(a, b) {
			require.NoError(rt, errAB)
			require.NoError(rt, errBA)
			require.Equal(rt, ab.Entries(), ba.Entries())
		} else {
			var c1, c2 *ConflictError
			require.ErrorAs(rt, errAB, &c1)
			require.ErrorAs(rt, errBA, &c2)
		}
	})
}

func TestMerge_AssociativeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := selectionsGen().Draw(rt, "a")
		b := selectionsGen().Draw(rt, "b")
		c := selectionsGen().Draw(rt, "c")
		if !compatible(a, b, c) {
			rt.Skip("conflicting inputs")
		}

		// (a + b) + c
		left := NewSelection("n")
		require.NoError(rt, left.Merge(fromMap(a)))
		require.NoError(rt, left.Merge(fromMap(b)))
		require.NoError(rt, left.Merge(fromMap(c)))

		// a + (b + c)
		bc := NewSelection("n")
		require.NoError(rt, bc.Merge(fromMap(b)))
		require.NoError(rt, bc.Merge(fromMap(c)))
		right := NewSelection("n")
		require.NoError(rt, right.Merge(fromMap(a)))
		require.NoError(rt, right.Merge(bc))

		require.Equal(rt, left.Entries(), right.Entries())
	})
}

func TestSelect_ConflictReportsBothValuesProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		first := Frame(rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "first"))
		second := Frame(rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "second"))

		s := NewSelection("n")
		require.NoError(rt, s.Select("x", first))
		err := s.Select("x", second)
		if first == second {
			require.NoError(rt, err)
			return
		}
		var conflict *ConflictError
		require.ErrorAs(rt, err, &conflict)
		require.Equal(rt, first, conflict.Existing)
		require.Equal(rt, second, conflict.Attempted)
	})
}
