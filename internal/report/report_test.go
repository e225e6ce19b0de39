package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/plan"
	"github.com/specialistvlad/framegrid/internal/transformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()
	c := catalog.New()
	require.NoError(t, c.RegisterStatic("body", "laser", frame.Vector3{0.2, 0, 0.1}, frame.IdentityRotation))
	require.NoError(t, c.RegisterDynamic("odometry", "world", "wheel_odometry"))

	p := plan.New(ctx)
	p.DefineComponent("driver", transformer.NewAnnotations([]transformer.Port{
		{Name: "scans", Direction: transformer.Output, Frame: "sensor"},
		{Name: "status", Direction: transformer.Output, Frame: "unset"},
		{Name: "pose", Direction: transformer.Output, Transform: &frame.LocalTransform{From: "body", To: "world"}},
		{Name: "pose_in", Direction: transformer.Input, Transform: &frame.LocalTransform{From: "x", To: "y"}},
		{Name: "rate", Direction: transformer.Output},
	}, nil))
	n, err := p.AddTask("laser", "driver")
	require.NoError(t, err)
	require.NoError(t, n.State().Selected.SelectAll(map[frame.Alias]frame.Frame{
		"sensor": "laser",
		"body":   "body",
		"world":  "world",
	}))

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	got := Build(ctx, c, p, now)

	want := &State{
		ComputedAt: now,
		StaticTransformations: []StaticTransformation{
			{From: "body", To: "laser", Translation: frame.Vector3{0.2, 0, 0.1}, Rotation: frame.IdentityRotation},
		},
		PortFrameAssociations: []PortFrameAssociation{
			{Node: "task.laser", Port: "scans", Frame: "laser"},
		},
		PortTransformationAssociations: []PortTransformationAssociation{
			{Node: "task.laser", Port: "pose", FromFrame: "body", ToFrame: "world"},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(State{}, "Warnings")); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "no frame selected for unset on task.laser")
}

func TestBuild_TransformPortWarning(t *testing.T) {
	ctx := context.Background()
	p := plan.New(ctx)
	p.DefineComponent("odometry", transformer.NewAnnotations([]transformer.Port{
		{Name: "pose", Direction: transformer.Output, Transform: &frame.LocalTransform{From: "body", To: "world"}},
	}, nil))
	n, err := p.AddTask("odom", "odometry")
	require.NoError(t, err)
	require.NoError(t, n.State().Selected.Select("body", "body"))

	got := Build(ctx, nil, p, time.Time{})
	assert.Empty(t, got.StaticTransformations)
	assert.Empty(t, got.PortTransformationAssociations)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "body => world on task.odom")
}
