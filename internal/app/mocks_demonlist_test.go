package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTx records how a transaction ended.
type mockTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *mockTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *mockTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

// mockTransactor hands out mockTx values and keeps them for inspection.
type mockTransactor struct {
	txs      []*mockTx
	beginErr error
}

func (m *mockTransactor) Begin(ctx context.Context) (secondary.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	tx := &mockTx{}
	m.txs = append(m.txs, tx)
	return tx, nil
}

func (m *mockTransactor) last() *mockTx {
	if len(m.txs) == 0 {
		return nil
	}
	return m.txs[len(m.txs)-1]
}

// mockPlayerRepository stores players in memory, matching names by their folded key.
type mockPlayerRepository struct {
	players   []*secondary.PlayerRecord
	nextID    int64
	getErr    error
	createErr error

	// conflicts makes the next N Create calls fail with ErrConflict.
	// When raceWinner is set, the first of them also stores that name,
	// as if a concurrent writer had won.
	conflicts  int
	raceWinner string

	createCalls int
}

func newMockPlayerRepository(names ...string) *mockPlayerRepository {
	m := &mockPlayerRepository{}
	for _, n := range names {
		m.insert(n)
	}
	return m
}

func (m *mockPlayerRepository) insert(name string) *secondary.PlayerRecord {
	m.nextID++
	p := &secondary.PlayerRecord{ID: m.nextID, Name: name}
	m.players = append(m.players, p)
	return p
}

func (m *mockPlayerRepository) find(id int64) *secondary.PlayerRecord {
	for _, p := range m.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *mockPlayerRepository) GetByID(ctx context.Context, tx secondary.Tx, id int64) (*secondary.PlayerRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p := m.find(id); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("player %d: %w", id, secondary.ErrNotFound)
}

func (m *mockPlayerRepository) GetByName(ctx context.Context, tx secondary.Tx, name string) (*secondary.PlayerRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, p := range m.players {
		if coreplayer.NameKey(p.Name) == coreplayer.NameKey(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("player %q: %w", name, secondary.ErrNotFound)
}

func (m *mockPlayerRepository) Create(ctx context.Context, tx secondary.Tx, name string) (*secondary.PlayerRecord, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.conflicts > 0 {
		m.conflicts--
		if m.raceWinner != "" {
			m.insert(m.raceWinner)
			m.raceWinner = ""
		}
		return nil, fmt.Errorf("player %q already exists: %w", name, secondary.ErrConflict)
	}
	for _, p := range m.players {
		if coreplayer.NameKey(p.Name) == coreplayer.NameKey(name) {
			return nil, fmt.Errorf("player %q already exists: %w", name, secondary.ErrConflict)
		}
	}
	return m.insert(name), nil
}

func (m *mockPlayerRepository) List(ctx context.Context, tx secondary.Tx, filters secondary.PlayerFilters) ([]*secondary.PlayerRecord, error) {
	var result []*secondary.PlayerRecord
	for _, p := range m.players {
		if filters.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.NameContains)) {
			continue
		}
		result = append(result, p)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

// mockDemonRepository keeps demons in memory and shifts them like storage does.
type mockDemonRepository struct {
	demons  []*secondary.DemonRecord
	players *mockPlayerRepository
	nextID  int64

	countErr   error
	shiftErr   error
	createErr  error
	updateErr  error
	shiftCalls int
}

func newMockDemonRepository(players *mockPlayerRepository, names ...string) *mockDemonRepository {
	m := &mockDemonRepository{players: players}
	owner := players.insert("Owner")
	for i, n := range names {
		m.nextID++
		m.demons = append(m.demons, &secondary.DemonRecord{
			ID: m.nextID, Name: n, Position: i + 1, Requirement: 100,
			VerifierID: owner.ID, VerifierName: owner.Name,
			PublisherID: owner.ID, PublisherName: owner.Name,
		})
	}
	return m
}

func (m *mockDemonRepository) Count(ctx context.Context, tx secondary.Tx) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.demons), nil
}

func (m *mockDemonRepository) ShiftOpen(ctx context.Context, tx secondary.Tx, from int) error {
	m.shiftCalls++
	if m.shiftErr != nil {
		return m.shiftErr
	}
	for _, d := range m.demons {
		if d.Position >= from {
			d.Position++
		}
	}
	return nil
}

func (m *mockDemonRepository) ShiftClose(ctx context.Context, tx secondary.Tx, removed int) error {
	m.shiftCalls++
	if m.shiftErr != nil {
		return m.shiftErr
	}
	for _, d := range m.demons {
		if d.Position > removed {
			d.Position--
		}
	}
	return nil
}

func (m *mockDemonRepository) Create(ctx context.Context, tx secondary.Tx, demon *secondary.DemonRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, d := range m.demons {
		if d.Position == demon.Position {
			return fmt.Errorf("position %d is taken: %w", demon.Position, secondary.ErrConflict)
		}
	}
	m.nextID++
	demon.ID = m.nextID
	stored := *demon
	m.demons = append(m.demons, &stored)
	return nil
}

func (m *mockDemonRepository) withNames(d *secondary.DemonRecord) *secondary.DemonRecord {
	c := *d
	if p := m.players.find(c.VerifierID); p != nil {
		c.VerifierName = p.Name
	}
	if p := m.players.find(c.PublisherID); p != nil {
		c.PublisherName = p.Name
	}
	return &c
}

func (m *mockDemonRepository) GetByID(ctx context.Context, tx secondary.Tx, id int64) (*secondary.DemonRecord, error) {
	for _, d := range m.demons {
		if d.ID == id {
			return m.withNames(d), nil
		}
	}
	return nil, fmt.Errorf("demon %d: %w", id, secondary.ErrNotFound)
}

func (m *mockDemonRepository) GetByPosition(ctx context.Context, tx secondary.Tx, position int) (*secondary.DemonRecord, error) {
	for _, d := range m.demons {
		if d.Position == position {
			return m.withNames(d), nil
		}
	}
	return nil, fmt.Errorf("no demon at position %d: %w", position, secondary.ErrNotFound)
}

func (m *mockDemonRepository) List(ctx context.Context, tx secondary.Tx, filters secondary.DemonFilters) ([]*secondary.DemonRecord, error) {
	var result []*secondary.DemonRecord
	for _, d := range m.demons {
		if d.Position <= filters.After || (d.Hidden && !filters.IncludeHidden) {
			continue
		}
		if filters.NameContains != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(filters.NameContains)) {
			continue
		}
		result = append(result, m.withNames(d))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockDemonRepository) Update(ctx context.Context, tx secondary.Tx, demon *secondary.DemonRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, d := range m.demons {
		if d.ID == demon.ID {
			updated := *demon
			updated.Position = d.Position
			m.demons[i] = &updated
			return nil
		}
	}
	return fmt.Errorf("demon %d: %w", demon.ID, secondary.ErrNotFound)
}

func (m *mockDemonRepository) positions() map[int]string {
	got := make(map[int]string, len(m.demons))
	for _, d := range m.demons {
		got[d.Position] = d.Name
	}
	return got
}

// mockCreatorRepository stores creator links in insertion order.
type mockCreatorRepository struct {
	links   [][2]int64
	players *mockPlayerRepository
	addErr  error
}

func (m *mockCreatorRepository) Add(ctx context.Context, tx secondary.Tx, demonID, playerID int64) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.links = append(m.links, [2]int64{demonID, playerID})
	return nil
}

func (m *mockCreatorRepository) Remove(ctx context.Context, tx secondary.Tx, demonID, playerID int64) (int, error) {
	kept := m.links[:0]
	removed := 0
	for _, l := range m.links {
		if l[0] == demonID && l[1] == playerID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	m.links = kept
	return removed, nil
}

func (m *mockCreatorRepository) ListByDemon(ctx context.Context, tx secondary.Tx, demonID int64) ([]*secondary.PlayerRecord, error) {
	var result []*secondary.PlayerRecord
	for _, l := range m.links {
		if l[0] == demonID {
			result = append(result, m.players.find(l[1]))
		}
	}
	return result, nil
}

// mockRecordRepository returns fixed records.
type mockRecordRepository struct {
	records []*secondary.CompletionRecord
}

func (m *mockRecordRepository) ListByDemon(ctx context.Context, tx secondary.Tx, demonID int64, status string) ([]*secondary.CompletionRecord, error) {
	var result []*secondary.CompletionRecord
	for _, r := range m.records {
		if r.DemonID == demonID && (status == "" || r.Status == status) {
			result = append(result, r)
		}
	}
	return result, nil
}

// mockVideoValidator accepts links starting with https:// and rejects the rest.
type mockVideoValidator struct{}

var errBadVideo = errors.New("unsupported video host")

func (mockVideoValidator) Validate(raw string) (string, error) {
	if !strings.HasPrefix(raw, "https://") {
		return "", errBadVideo
	}
	return strings.TrimSuffix(raw, "/"), nil
}

// mockCheckRepository returns a fixed report.
type mockCheckRepository struct {
	report *secondary.IntegrityReport
	err    error
}

func (m *mockCheckRepository) Integrity(ctx context.Context, tx secondary.Tx) (*secondary.IntegrityReport, error) {
	return m.report, m.err
}
