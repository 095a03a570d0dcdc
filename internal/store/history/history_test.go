package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/studyplan/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPlansRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time { calls++; return base.Add(time.Duration(calls) * time.Minute) }

	req := model.PlanRequest{Subjects: []model.Subject{{Name: "Math", Hours: 2}}, StartDate: "2026-10-19", EndDate: "2026-10-20", HoursPerDay: 2}
	first := model.PlanResponse{Plan: []model.PlanDay{{Date: "2026-10-19", HoursPlanned: 2, Sessions: []model.Session{{Subject: "Math", Hours: 2}}}}}
	second := model.PlanResponse{Plan: []model.PlanDay{}}
	require.NoError(t, s.SavePlan(ctx, req, first))
	require.NoError(t, s.SavePlan(ctx, req, second))

	got, err := s.Plans(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Days)
	assert.Equal(t, 1, got[1].Days)
	assert.Equal(t, 1, got[1].Subjects)
	assert.Equal(t, "Math", got[1].Response.Plan[0].Sessions[0].Subject)
	assert.Equal(t, base.Add(time.Minute), got[1].CreatedAt)
	assert.NotEmpty(t, got[0].ID)

	limited, err := s.Plans(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSessionsAndTotals(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.RecordSession(ctx, "Math", "work", 1500))
	require.NoError(t, s.RecordSession(ctx, "Math", "break", 300))
	require.NoError(t, s.RecordSession(ctx, "Math", "work", 1500))
	require.NoError(t, s.RecordSession(ctx, "Physics", "work", 600))

	sessions, err := s.Sessions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 4)

	totals, err := s.FocusTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Math": 3000, "Physics": 600}, totals)
}

func TestReopenKeepsData(t *testing.T) {
	p := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(p)
	require.NoError(t, err)
	require.NoError(t, s.RecordSession(context.Background(), "Math", "work", 60))
	require.NoError(t, s.Close())

	s, err = Open(p)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Sessions(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
