package propagation

import (
	"context"
	"testing"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/plan"
	"github.com/specialistvlad/framegrid/internal/transformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p := plan.New(context.Background())
	p.DefineComponent("composite", transformer.NewAnnotations(nil, nil))
	p.DefineComponent("filter", transformer.NewAnnotations([]transformer.Port{
		{Name: "in", Direction: transformer.Input, Frame: "ref"},
		{Name: "out", Direction: transformer.Output, Frame: "ref"},
	}, nil))
	p.DefineComponent("driver", transformer.NewAnnotations([]transformer.Port{
		{Name: "scans", Direction: transformer.Output, Frame: "sensor"},
		{Name: "pose", Direction: transformer.Output, Transform: &frame.LocalTransform{From: "body", To: "world"}},
	}, nil))
	p.DefineComponent("consumer", transformer.NewAnnotations([]transformer.Port{
		{Name: "scans", Direction: transformer.Input, Frame: "laser"},
		{Name: "pose", Direction: transformer.Input, Transform: &frame.LocalTransform{From: "robot", To: "map"}},
	}, []frame.LocalTransform{{From: "laser", To: "map"}}))
	return p
}

func addTask(t *testing.T, p *plan.Plan, name, component string) *plan.Node {
	t.Helper()
	n, err := p.AddTask(name, component)
	require.NoError(t, err)
	return n
}

func lookup(t *testing.T, n transformer.Node, alias frame.Alias) frame.Frame {
	t.Helper()
	f, ok := n.State().Selected.Lookup(alias)
	require.True(t, ok, "no frame for %s on %s", alias, n.ID())
	return f
}

func declared(frames ...frame.Frame) transformer.Settings {
	c := catalog.New()
	c.DeclareFrames(frames...)
	return transformer.DefaultSettings(c)
}

func TestRun_InheritsAlongHierarchy(t *testing.T) {
	p := newPlan(t)
	root := addTask(t, p, "root", "composite")
	left := addTask(t, p, "left", "composite")
	right := addTask(t, p, "right", "composite")
	leaf := addTask(t, p, "leaf", "filter")
	require.NoError(t, p.AddDependency(root, left, "left"))
	require.NoError(t, p.AddDependency(root, right, "right"))
	require.NoError(t, p.AddDependency(left, leaf, "leaf"))
	require.NoError(t, p.AddDependency(right, leaf, "leaf"))

	root.State().Explicit["ref"] = "world"
	left.State().Explicit["odom"] = "odometry"
	right.State().Explicit["base"] = "body"

	require.NoError(t, New(declared()).Run(context.Background(), p))

	assert.Equal(t, map[frame.Alias]frame.Frame{
		"ref":  "world",
		"odom": "odometry",
		"base": "body",
	}, leaf.State().Selected.Entries())
	_, ok := left.State().Selected.Lookup("base")
	assert.False(t, ok, "selections never flow sideways")
}

func TestRun_ConflictWithParent(t *testing.T) {
	p := newPlan(t)
	a := addTask(t, p, "a", "composite")
	b := addTask(t, p, "b", "filter")
	require.NoError(t, p.AddDependency(a, b, "b"))
	a.State().Explicit["ref"] = "world"
	b.State().Explicit["ref"] = "map"

	err := New(declared()).Run(context.Background(), p)
	var conflict *frame.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, frame.Alias("ref"), conflict.Alias)
	assert.Equal(t, frame.Frame("world"), conflict.Existing)
	assert.Equal(t, frame.Frame("map"), conflict.Attempted)
	assert.Equal(t, "task.b", conflict.Node)
}

func TestRun_ConflictBetweenConvergingParents(t *testing.T) {
	p := newPlan(t)
	a := addTask(t, p, "a", "composite")
	b := addTask(t, p, "b", "composite")
	leaf := addTask(t, p, "leaf", "filter")
	require.NoError(t, p.AddDependency(a, leaf, "leaf"))
	require.NoError(t, p.AddDependency(b, leaf, "leaf"))
	a.State().Explicit["ref"] = "world"
	b.State().Explicit["ref"] = "map"

	err := New(declared()).Run(context.Background(), p)
	assert.ErrorAs(t, err, new(*frame.ConflictError))
}

func TestRun_Devices(t *testing.T) {
	t.Run("annotated port", func(t *testing.T) {
		p := newPlan(t)
		d := addTask(t, p, "laser", "driver")
		d.State().Device = &transformer.Device{Name: "hokuyo", Port: "scans", Frame: "laser_front"}

		require.NoError(t, New(declared("laser_front")).Run(context.Background(), p))
		assert.Equal(t, frame.Frame("laser_front"), lookup(t, d, "sensor"))
	})

	t.Run("transform port", func(t *testing.T) {
		p := newPlan(t)
		d := addTask(t, p, "gps", "driver")
		d.State().Device = &transformer.Device{Name: "gps", Port: "pose", Transform: &frame.Transform{From: "antenna", To: "utm"}}

		require.NoError(t, New(declared("antenna", "utm")).Run(context.Background(), p))
		assert.Equal(t, frame.Frame("antenna"), lookup(t, d, "body"))
		assert.Equal(t, frame.Frame("utm"), lookup(t, d, "world"))
	})

	t.Run("explicit selection wins the conflict report", func(t *testing.T) {
		p := newPlan(t)
		d := addTask(t, p, "laser", "driver")
		d.State().Explicit["sensor"] = "laser_rear"
		d.State().Device = &transformer.Device{Name: "hokuyo", Port: "scans", Frame: "laser_front"}

		err := New(declared("laser_front", "laser_rear")).Run(context.Background(), p)
		var conflict *frame.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, frame.Frame("laser_rear"), conflict.Existing)
		assert.Equal(t, frame.Frame("laser_front"), conflict.Attempted)
	})

	t.Run("undeclared frame", func(t *testing.T) {
		p := newPlan(t)
		d := addTask(t, p, "laser", "driver")
		d.State().Device = &transformer.Device{Name: "hokuyo", Port: "scans", Frame: "nowhere"}

		err := New(declared("laser_front")).Run(context.Background(), p)
		var invalid *frame.InvalidConfigurationError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, frame.Frame("nowhere"), invalid.Frame)
		assert.Equal(t, frame.RoleReference, invalid.Role)
	})

	t.Run("unset frame", func(t *testing.T) {
		p := newPlan(t)
		d := addTask(t, p, "gps", "driver")
		d.State().Device = &transformer.Device{Name: "gps", Port: "pose"}

		err := New(declared()).Run(context.Background(), p)
		var invalid *frame.InvalidConfigurationError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, frame.RoleFrom, invalid.Role)
		assert.Equal(t, frame.Alias("body"), invalid.Alias)
		assert.Contains(t, err.Error(), "no frame selected for body")
	})

	t.Run("unknown port", func(t *testing.T) {
		p := newPlan(t)
		d := addTask(t, p, "laser", "driver")
		d.State().Device = &transformer.Device{Name: "hokuyo", Port: "nope", Frame: "laser_front"}

		err := New(declared("laser_front")).Run(context.Background(), p)
		assert.ErrorContains(t, err, "unknown port")
	})
}

func TestRun_PropagatesAlongConnections(t *testing.T) {
	p := newPlan(t)
	// Declared downstream first, so the pull needs more than one round.
	consumer := addTask(t, p, "consumer", "consumer")
	second := addTask(t, p, "second", "filter")
	first := addTask(t, p, "first", "filter")
	driver := addTask(t, p, "driver", "driver")

	connect := func(from transformer.Node, fromPort string, to transformer.Node, toPort string) {
		require.NoError(t, p.Connect(
			transformer.Endpoint{Node: from, Port: fromPort},
			transformer.Endpoint{Node: to, Port: toPort},
			transformer.DefaultPolicy))
	}
	connect(driver, "scans", first, "in")
	connect(first, "out", second, "in")
	connect(second, "out", consumer, "scans")
	connect(driver, "pose", consumer, "pose")

	driver.State().Explicit["sensor"] = "laser_front"
	driver.State().Explicit["body"] = "body"
	driver.State().Explicit["world"] = "world"

	require.NoError(t, New(declared()).Run(context.Background(), p))
	assert.Equal(t, frame.Frame("laser_front"), lookup(t, first, "ref"))
	assert.Equal(t, frame.Frame("laser_front"), lookup(t, second, "ref"))
	assert.Equal(t, frame.Frame("laser_front"), lookup(t, consumer, "laser"))
	assert.Equal(t, frame.Frame("body"), lookup(t, consumer, "robot"))
	assert.Equal(t, frame.Frame("world"), lookup(t, consumer, "map"))

	t.Run("conflict along a connection", func(t *testing.T) {
		p := newPlan(t)
		driver := addTask(t, p, "driver", "driver")
		filter := addTask(t, p, "filter", "filter")
		require.NoError(t, p.Connect(
			transformer.Endpoint{Node: driver, Port: "scans"},
			transformer.Endpoint{Node: filter, Port: "in"},
			transformer.DefaultPolicy))
		driver.State().Explicit["sensor"] = "laser_front"
		filter.State().Explicit["ref"] = "body"

		err := New(declared()).Run(context.Background(), p)
		require.ErrorAs(t, err, new(*frame.ConflictError))
		assert.Contains(t, err.Error(), "task.driver.scans -> task.filter.in")
	})
}

func TestRun_IsIdempotent(t *testing.T) {
	p := newPlan(t)
	root := addTask(t, p, "root", "composite")
	leaf := addTask(t, p, "leaf", "filter")
	require.NoError(t, p.AddDependency(root, leaf, "leaf"))
	root.State().Explicit["ref"] = "world"

	e := New(declared())
	require.NoError(t, e.Run(context.Background(), p))
	first := leaf.State().Selected.Entries()
	require.NoError(t, e.Run(context.Background(), p))
	assert.Equal(t, first, leaf.State().Selected.Entries())
}

func TestRun_InheritsProducerChoices(t *testing.T) {
	p := newPlan(t)
	root := addTask(t, p, "root", "composite")
	leaf := addTask(t, p, "leaf", "filter")
	require.NoError(t, p.AddDependency(root, leaf, "leaf"))
	odom := frame.Transform{From: "odometry", To: "world"}
	root.State().Producers[odom] = "wheel_odometry"

	require.NoError(t, New(declared()).Run(context.Background(), p))
	assert.Equal(t, catalog.ProducerRef("wheel_odometry"), leaf.State().Producers[odom])
}

func TestRun_ConnectionFramesReachChildren(t *testing.T) {
	p := newPlan(t)
	driver := addTask(t, p, "driver", "driver")
	filter := addTask(t, p, "filter", "filter")
	leaf := addTask(t, p, "leaf", "composite")
	require.NoError(t, p.AddDependency(filter, leaf, "leaf"))
	require.NoError(t, p.Connect(
		transformer.Endpoint{Node: driver, Port: "scans"},
		transformer.Endpoint{Node: filter, Port: "in"},
		transformer.DefaultPolicy))
	driver.State().Explicit["sensor"] = "laser_front"

	require.NoError(t, New(declared()).Run(context.Background(), p))
	assert.Equal(t, frame.Frame("laser_front"), lookup(t, filter, "ref"))
	assert.Equal(t, frame.Frame("laser_front"), lookup(t, leaf, "ref"),
		"a frame learned through a connection flows on to the hierarchy children")
}

func TestRun_ProducersDoNotInherit(t *testing.T) {
	p := newPlan(t)
	p.DefineComponent("odometry", transformer.NewAnnotations([]transformer.Port{
		{Name: "pose", Direction: transformer.Output, Transform: &frame.LocalTransform{From: "child", To: "parent"}},
	}, nil))
	left := addTask(t, p, "left", "composite")
	right := addTask(t, p, "right", "composite")
	odom, err := p.Instantiate("odometry")
	require.NoError(t, err)
	role := transformer.ProducerRole(frame.Transform{From: "odometry", To: "world"})
	require.NoError(t, p.AddDependency(left, odom, role))
	require.NoError(t, p.AddDependency(right, odom, role))

	left.State().Explicit["src"] = "laser_left"
	left.State().Producers[frame.Transform{From: "a", To: "b"}] = "ab"
	right.State().Explicit["src"] = "laser_right"
	require.NoError(t, odom.State().Selected.SelectAll(map[frame.Alias]frame.Frame{"child": "odometry", "parent": "world"}))

	require.NoError(t, New(declared()).Run(context.Background(), p), "consumers may disagree on aliases the producer never sees")
	assert.Equal(t, map[frame.Alias]frame.Frame{"child": "odometry", "parent": "world"}, odom.State().Selected.Entries())
	assert.Empty(t, odom.State().Producers)

	t.Run("a plain dependency still inherits", func(t *testing.T) {
		require.NoError(t, p.AddDependency(left, odom, "odometry"))
		require.NoError(t, p.AddDependency(right, odom, "odometry"))
		err := New(declared()).Run(context.Background(), p)
		require.ErrorAs(t, err, new(*frame.ConflictError))
	})
}
