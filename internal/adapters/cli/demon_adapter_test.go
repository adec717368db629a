package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/demonlist/internal/ports/primary"
)

// mockDemonService implements primary.DemonService for testing
type mockDemonService struct {
	createDemonFn   func(ctx context.Context, req primary.DemonSubmission) (*primary.FullDemon, error)
	getDemonFn      func(ctx context.Context, demonID int64) (*primary.FullDemon, error)
	listDemonsFn    func(ctx context.Context, filters primary.DemonFilters) ([]*primary.ListedDemon, error)
	removeCreatorFn func(ctx context.Context, demonID, playerID int64) error

	lastPosition int
	lastUpdate   primary.UpdateDemonRequest
}

func (m *mockDemonService) CreateDemon(ctx context.Context, req primary.DemonSubmission) (*primary.FullDemon, error) {
	if m.createDemonFn != nil {
		return m.createDemonFn(ctx, req)
	}
	creators := make([]*primary.Player, 0, len(req.Creators))
	for i, c := range req.Creators {
		creators = append(creators, &primary.Player{ID: int64(i + 1), Name: c})
	}
	return &primary.FullDemon{
		Demon:    primary.Demon{MinimalDemon: primary.MinimalDemon{ID: 7, Position: req.Position, Name: req.Name}},
		Creators: creators,
	}, nil
}

func (m *mockDemonService) GetDemon(ctx context.Context, demonID int64) (*primary.FullDemon, error) {
	if m.getDemonFn != nil {
		return m.getDemonFn(ctx, demonID)
	}
	video := "https://www.youtube.com/watch?v=9fsZ014qB3s"
	return &primary.FullDemon{
		Demon: primary.Demon{
			MinimalDemon: primary.MinimalDemon{ID: demonID, Position: 1, Name: "Tidal Wave"},
			Requirement:  100,
			Video:        &video,
			Publisher:    primary.Player{ID: 1, Name: "OniLinkGD"},
			Verifier:     primary.Player{ID: 2, Name: "Zoink"},
		},
		Records: []*primary.Record{{ID: 1, Progress: 100, Player: primary.Player{ID: 2, Name: "Zoink"}}},
	}, nil
}

func (m *mockDemonService) GetDemonByPosition(ctx context.Context, position int) (*primary.FullDemon, error) {
	m.lastPosition = position
	return m.GetDemon(ctx, 1)
}

func (m *mockDemonService) ListDemons(ctx context.Context, filters primary.DemonFilters) ([]*primary.ListedDemon, error) {
	if m.listDemonsFn != nil {
		return m.listDemonsFn(ctx, filters)
	}
	return []*primary.ListedDemon{}, nil
}

func (m *mockDemonService) UpdateDemon(ctx context.Context, req primary.UpdateDemonRequest) (*primary.FullDemon, error) {
	m.lastUpdate = req
	return m.GetDemon(ctx, req.DemonID)
}

func (m *mockDemonService) AddCreator(ctx context.Context, demonID int64, playerName string) (*primary.Player, error) {
	return &primary.Player{ID: 3, Name: playerName}, nil
}

func (m *mockDemonService) RemoveCreator(ctx context.Context, demonID, playerID int64) error {
	if m.removeCreatorFn != nil {
		return m.removeCreatorFn(ctx, demonID, playerID)
	}
	return nil
}

func TestDemonAdapter_Add(t *testing.T) {
	var out bytes.Buffer
	adapter := NewDemonAdapter(&mockDemonService{}, &out)

	_, err := adapter.Add(context.Background(), primary.DemonSubmission{
		Name: "Bloodbath", Position: 3, Creators: []string{"Riot", "Knobbelboy"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Added Bloodbath at #3") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if !strings.Contains(out.String(), "Creators: Riot, Knobbelboy") {
		t.Errorf("expected creators in output: %q", out.String())
	}
}

func TestDemonAdapter_AddError(t *testing.T) {
	var out bytes.Buffer
	serviceErr := errors.New("position out of range")
	adapter := NewDemonAdapter(&mockDemonService{
		createDemonFn: func(ctx context.Context, req primary.DemonSubmission) (*primary.FullDemon, error) {
			return nil, serviceErr
		},
	}, &out)

	_, err := adapter.Add(context.Background(), primary.DemonSubmission{Name: "x", Position: 10})
	if !errors.Is(err, serviceErr) {
		t.Errorf("expected wrapped service error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on error, got %q", out.String())
	}
}

func TestDemonAdapter_ListEmpty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewDemonAdapter(&mockDemonService{}, &out)

	if _, err := adapter.List(context.Background(), primary.DemonFilters{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No demons found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDemonAdapter_ListSections(t *testing.T) {
	var out bytes.Buffer
	adapter := NewDemonAdapter(&mockDemonService{
		listDemonsFn: func(ctx context.Context, filters primary.DemonFilters) ([]*primary.ListedDemon, error) {
			return []*primary.ListedDemon{
				{MinimalDemon: primary.MinimalDemon{ID: 1, Position: 1, Name: "Tidal Wave"}, Section: "main", Publisher: primary.Player{Name: "OniLinkGD"}},
				{MinimalDemon: primary.MinimalDemon{ID: 2, Position: 76, Name: "Cataclysm"}, Section: "extended", Hidden: true},
				{MinimalDemon: primary.MinimalDemon{ID: 3, Position: 151, Name: "Bloodbath"}, Section: "legacy"},
			}, nil
		},
	}, &out)

	if _, err := adapter.List(context.Background(), primary.DemonFilters{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Main List", "Extended List", "Legacy List", "#76", "[hidden]", "OniLinkGD"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output: %q", want, out.String())
		}
	}
}

func TestDemonAdapter_ShowByPosition(t *testing.T) {
	var out bytes.Buffer
	service := &mockDemonService{}
	adapter := NewDemonAdapter(service, &out)

	if _, err := adapter.Show(context.Background(), 4, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if service.lastPosition != 4 {
		t.Errorf("expected lookup at position 4, got %d", service.lastPosition)
	}
	for _, want := range []string{"Tidal Wave", "Verifier:    Zoink", "Video:", "100%  Zoink"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output: %q", want, out.String())
		}
	}
}

func TestDemonAdapter_Edit(t *testing.T) {
	var out bytes.Buffer
	service := &mockDemonService{}
	adapter := NewDemonAdapter(service, &out)
	requirement := 50

	if _, err := adapter.Edit(context.Background(), primary.UpdateDemonRequest{DemonID: 5, Requirement: &requirement}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if service.lastUpdate.DemonID != 5 || *service.lastUpdate.Requirement != 50 {
		t.Errorf("unexpected update request: %+v", service.lastUpdate)
	}
	if !strings.Contains(out.String(), "Updated demon 5") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDemonAdapter_CreatorLinks(t *testing.T) {
	var out bytes.Buffer
	notFound := errors.New("not found")
	adapter := NewDemonAdapter(&mockDemonService{
		removeCreatorFn: func(ctx context.Context, demonID, playerID int64) error {
			if playerID == 99 {
				return notFound
			}
			return nil
		},
	}, &out)
	ctx := context.Background()

	if err := adapter.AddCreator(ctx, 1, "Riot"); err != nil {
		t.Fatalf("AddCreator failed: %v", err)
	}
	if !strings.Contains(out.String(), "Riot (ID 3) added as creator of demon 1") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if err := adapter.RemoveCreator(ctx, 1, 3); err != nil {
		t.Fatalf("RemoveCreator failed: %v", err)
	}
	if err := adapter.RemoveCreator(ctx, 1, 99); !errors.Is(err, notFound) {
		t.Errorf("expected wrapped not found, got %v", err)
	}
}
