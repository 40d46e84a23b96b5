package rockie

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beplus/beplus/internal/api"
	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/resource"
)

type fakeService struct {
	rockie    *resource.Rockie
	getErr    error
	createErr error
	gets      int
	created   []string
}

func (f *fakeService) Get(ctx context.Context) reconcile.Outcome[*resource.Rockie] {
	f.gets++
	if f.getErr != nil {
		return reconcile.FromError(resource.RockieProfile, f.getErr)
	}
	if f.rockie == nil {
		return reconcile.Outcome[*resource.Rockie]{Class: reconcile.Absent}
	}
	return reconcile.Outcome[*resource.Rockie]{Class: reconcile.Success, Data: f.rockie}
}

func (f *fakeService) CreateDefault(ctx context.Context, name string) reconcile.Outcome[struct{}] {
	f.created = append(f.created, name)
	if f.createErr != nil {
		return reconcile.FromError(resource.RockieCreate, f.createErr)
	}
	level := 1
	f.rockie = &resource.Rockie{Level: &level, RockieData: &resource.RockieData{RockieName: name}}
	return reconcile.Outcome[struct{}]{Class: reconcile.Success}
}

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// settle runs cmd and feeds messages back until a load resolves.
func settle(t *testing.T, s *RockieScreen, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		_, cmd = s.Update(msg)
		if _, ok := msg.(loadedMsg); ok {
			return
		}
	}
}

func TestAbsentShowsEmptyStateWithoutBanner(t *testing.T) {
	svc := &fakeService{}
	s := New(context.Background(), svc, "FireRockie2")
	settle(t, s, s.Init())

	st := s.State()
	assert.Equal(t, reconcile.Missing, st.Phase)
	assert.Nil(t, st.Data)
	assert.Empty(t, st.Err)

	view := s.View(80, 20)
	assert.Contains(t, view, resource.NoRockieMessage)
	assert.Contains(t, view, "Create Rockie")
	assert.NotContains(t, view, "dismiss")
}

func TestCreateFromEmptyStateRefetches(t *testing.T) {
	svc := &fakeService{}
	s := New(context.Background(), svc, "FireRockie2")
	settle(t, s, s.Init())

	_, cmd := s.Update(press('c'))
	require.NotNil(t, cmd)
	settle(t, s, cmd)

	assert.Equal(t, []string{"FireRockie2"}, svc.created)
	assert.Equal(t, 2, svc.gets)
	view := s.View(80, 20)
	assert.Contains(t, view, "FireRockie2")
	assert.Contains(t, view, "Not provided", "missing experience falls back")
}

func TestCreateIgnoredWhenProfileExists(t *testing.T) {
	level := 3
	svc := &fakeService{rockie: &resource.Rockie{Level: &level, RockieData: &resource.RockieData{RockieName: "Pebble"}}}
	s := New(context.Background(), svc, "FireRockie2")
	settle(t, s, s.Init())

	_, cmd := s.Update(press('c'))
	assert.Nil(t, cmd)
	assert.Empty(t, svc.created)
	assert.Contains(t, s.View(80, 20), "Pebble")
}

func TestCreateFailureKeepsMessageAfterRefetch(t *testing.T) {
	svc := &fakeService{createErr: &api.ServerError{Status: 500, Body: []byte(`{"oops":true}`)}}
	s := New(context.Background(), svc, "FireRockie2")
	settle(t, s, s.Init())

	_, cmd := s.Update(press('c'))
	settle(t, s, cmd)

	st := s.State()
	assert.Equal(t, reconcile.Missing, st.Phase)
	assert.Equal(t, `Failed to create Rockie: unexpected error (status 500): {"oops":true}`, st.Err)

	s.Update(press('x'))
	assert.Empty(t, s.State().Err)
	assert.Contains(t, s.View(80, 20), resource.NoRockieMessage)
}

func TestServerErrorIsBannerNotEmptyState(t *testing.T) {
	svc := &fakeService{getErr: &api.ServerError{Status: 500, Message: "boom"}}
	s := New(context.Background(), svc, "")
	settle(t, s, s.Init())

	view := s.View(80, 20)
	assert.Contains(t, view, "Failed to fetch Rockie: boom")
	assert.NotContains(t, view, resource.NoRockieMessage)

	_, cmd := s.Update(press('c'))
	assert.Nil(t, cmd)
}

func TestRefreshIgnoredWhileLoading(t *testing.T) {
	svc := &fakeService{}
	s := New(context.Background(), svc, "")
	first := s.Init()

	_, cmd := s.Update(press('r'))
	assert.Nil(t, cmd)
	settle(t, s, first)
	assert.Equal(t, 1, svc.gets)
}

func TestCloseDropsLateResult(t *testing.T) {
	s := New(context.Background(), &fakeService{}, "")
	cmd := s.Init()
	s.Close()
	s.Update(cmd())
	assert.True(t, s.State().IsLoading())
}
