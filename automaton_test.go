package kleene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateState(t *testing.T) {
	a := NewAutomaton(WithStateCapacity(1))
	q0 := a.CreateState("q0")
	q1 := a.CreateState("q1")
	dup := a.CreateState("q1")

	assert.Equal(t, []int{0, 1, 2}, []int{q0, q1, dup})
	assert.Equal(t, 3, a.GetNumStates())
	assert.Equal(t, []int{q0, q1, dup}, a.States())
	assert.Equal(t, "q1", a.Name(dup))
	assert.Equal(t, "#9", a.Name(9))
	assert.Equal(t, q1, a.Vertex(q1).ID())
	assert.Equal(t, "q0", a.Vertex(q0).Name())
	assert.Nil(t, a.Vertex(7))

	assert.Equal(t, -1, a.Initial())
	require.NoError(t, a.SetInitial(q1))
	assert.Equal(t, q1, a.Initial())

	states := a.States()
	states[0] = 42
	assert.Equal(t, []int{q0, q1, dup}, a.States())
}

func TestAcceptStates(t *testing.T) {
	a := NewAutomaton()
	for _, name := range []string{"a", "b", "c", "d"} {
		a.CreateState(name)
	}
	require.NoError(t, a.SetAccept(3, true))
	require.NoError(t, a.SetAccept(1, true))
	require.NoError(t, a.SetAccept(0, true))
	require.NoError(t, a.SetAccept(0, false))

	assert.Equal(t, []int{1, 3}, a.AcceptStates())
	assert.True(t, a.IsAccept(3))
	assert.False(t, a.IsAccept(0))
	assert.False(t, a.IsAccept(-1))
}

func TestUnknownState(t *testing.T) {
	a := NewAutomaton()
	q0 := a.CreateState("q0")

	_, err := a.AddEdge(q0, 5, NewLiteral("a"))
	assert.ErrorIs(t, err, ErrUnknownState)
	_, err = a.AddEdge(-1, q0, NewLiteral("a"))
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.ErrorIs(t, a.SetInitial(-1), ErrUnknownState)
	assert.ErrorIs(t, a.SetAccept(3, true), ErrUnknownState)
	assert.Equal(t, 0, a.GetNumTransitions())
}

func TestAddEdge(t *testing.T) {
	zero, one := NewLiteral("0"), NewLiteral("1")

	t.Run("merge by union", func(t *testing.T) {
		a := NewAutomaton()
		q0, q1 := a.CreateState("q0"), a.CreateState("q1")

		_, err := a.AddEdge(q0, q1, zero)
		require.NoError(t, err)
		e, err := a.AddEdge(q0, q1, one)
		require.NoError(t, err)

		assert.True(t, NewOr(one, zero).Equals(e.Pattern), e.Pattern.String())
		assert.Equal(t, 1, a.GetNumTransitions())

		got, ok := a.Edge(q0, q1)
		require.True(t, ok)
		assert.Same(t, e, got)
		assert.Same(t, e, a.Vertex(q0).outgoing[q1])
		assert.Same(t, e, a.Vertex(q1).incoming[q0])

		_, ok = a.Edge(q1, q0)
		assert.False(t, ok)
	})

	t.Run("stored canonical", func(t *testing.T) {
		a := NewAutomaton()
		q0 := a.CreateState("q0")

		e, err := a.AddEdge(q0, q0, NewConcat(NewEpsilon(), zero, NewEpsilon()))
		require.NoError(t, err)
		assert.True(t, zero.Equals(e.Pattern))

		e, err = a.AddEdge(q0, q0, NewEpsilon())
		require.NoError(t, err)
		assert.True(t, NewOptional(zero).Equals(e.Pattern), e.Pattern.String())
	})

	t.Run("empty set is absorbed", func(t *testing.T) {
		a := NewAutomaton()
		q0, q1 := a.CreateState("q0"), a.CreateState("q1")

		_, err := a.AddEdge(q0, q1, NewEmptySet())
		require.NoError(t, err)
		e, err := a.AddEdge(q0, q1, one)
		require.NoError(t, err)
		assert.True(t, one.Equals(e.Pattern))
	})
}

func TestRemoveEdge(t *testing.T) {
	a := NewAutomaton()
	q0, q1 := a.CreateState("q0"), a.CreateState("q1")
	e, err := a.AddEdge(q0, q1, NewLiteral("a"))
	require.NoError(t, err)
	_, err = a.AddEdge(q1, q0, NewLiteral("b"))
	require.NoError(t, err)

	a.RemoveEdge(e)
	_, ok := a.Edge(q0, q1)
	assert.False(t, ok)
	assert.Empty(t, a.Vertex(q0).outgoing)
	assert.Empty(t, a.Vertex(q1).incoming)
	assert.Equal(t, 1, a.GetNumTransitions())

	e, err = a.AddEdge(q0, q1, NewLiteral("c"))
	require.NoError(t, err)
	assert.True(t, NewLiteral("c").Equals(e.Pattern))
}

func TestReplaceEdge(t *testing.T) {
	a := NewAutomaton()
	q0, q1 := a.CreateState("q0"), a.CreateState("q1")
	_, err := a.AddEdge(q0, q1, NewLiteral("a"))
	require.NoError(t, err)

	e, err := a.replaceEdge(q0, q1, NewLiteral("b"))
	require.NoError(t, err)
	assert.True(t, NewLiteral("b").Equals(e.Pattern))
	assert.Equal(t, 1, a.GetNumTransitions())

	e, err = a.replaceEdge(q1, q0, NewLiteral("c"))
	require.NoError(t, err)
	assert.True(t, NewLiteral("c").Equals(e.Pattern))
	assert.Equal(t, 2, a.GetNumTransitions())
}

func TestTransitionsOrder(t *testing.T) {
	a := NewAutomaton()
	q0, q1, q2 := a.CreateState("q0"), a.CreateState("q1"), a.CreateState("q2")

	pairs := [][2]int{{q2, q0}, {q1, q2}, {q0, q2}, {q1, q1}, {q0, q0}, {q2, q1}}
	for _, p := range pairs {
		_, err := a.AddEdge(p[0], p[1], NewLiteral("x"))
		require.NoError(t, err)
	}

	var got [][2]int
	for _, e := range a.Transitions() {
		got = append(got, [2]int{e.From, e.To})
	}
	assert.Equal(t, [][2]int{{q0, q0}, {q0, q2}, {q1, q1}, {q1, q2}, {q2, q0}, {q2, q1}}, got)
}

func TestRemovedState(t *testing.T) {
	a := NewAutomaton()
	q0, q1 := a.CreateState("q0"), a.CreateState("q1")
	require.NoError(t, a.SetInitial(q0))
	require.NoError(t, a.SetAccept(q1, true))
	_, err := a.AddEdge(q0, q1, NewLiteral("a"))
	require.NoError(t, err)

	require.NoError(t, a.Generalize())
	require.NoError(t, a.EliminateState())

	assert.Nil(t, a.Vertex(q0))
	assert.Equal(t, "q0", a.Name(q0))
	assert.NotContains(t, a.States(), q0)
	_, err = a.AddEdge(q0, q1, NewLiteral("a"))
	assert.ErrorIs(t, err, ErrUnknownState)
	for _, e := range a.Transitions() {
		assert.NotEqual(t, q0, e.From)
		assert.NotEqual(t, q0, e.To)
	}
}
