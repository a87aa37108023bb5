package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// MockRepository implements the Crop, Field, Task and Farmer interfaces
// for testing. It is map-backed and safe for concurrent use.
type MockRepository struct {
	mu      sync.Mutex
	crops   map[string]*domain.Crop // keyed by name
	cropSeq []string                // insertion order, mirrors catalog order
	fields  map[string]*domain.Field
	tasks   map[string]*domain.Task
	farmers map[string]*domain.Farmer
	nextID  int

	// FailWith, when set, is returned by every call. Lets tests exercise
	// error paths without a second mock type.
	FailWith error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		crops:   make(map[string]*domain.Crop),
		fields:  make(map[string]*domain.Field),
		tasks:   make(map[string]*domain.Task),
		farmers: make(map[string]*domain.Farmer),
	}
}

func (m *MockRepository) genID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// --- Crop ---

func (m *MockRepository) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	crops := make([]domain.Crop, 0, len(m.cropSeq))
	for _, name := range m.cropSeq {
		crops = append(crops, *m.crops[name])
	}
	return crops, nil
}

func (m *MockRepository) GetCrop(ctx context.Context, name string) (*domain.Crop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for _, c := range m.crops {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCropNotFound
}

func (m *MockRepository) UpsertCrop(ctx context.Context, crop *domain.Crop) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return false, m.FailWith
	}
	_, exists := m.crops[crop.Name]
	cp := *crop
	m.crops[crop.Name] = &cp
	if !exists {
		m.cropSeq = append(m.cropSeq, crop.Name)
	}
	return !exists, nil
}

func (m *MockRepository) SetOversupply(ctx context.Context, names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	flagged := make(map[string]bool, len(names))
	for _, n := range names {
		flagged[strings.ToLower(n)] = true
	}
	for _, c := range m.crops {
		c.Oversupply = flagged[strings.ToLower(c.Name)]
	}
	return nil
}

func (m *MockRepository) ListOversupplied(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var names []string
	for _, name := range m.cropSeq {
		if m.crops[name].Oversupply {
			names = append(names, name)
		}
	}
	return names, nil
}

// --- Field ---

func (m *MockRepository) CreateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	cp := *field
	if cp.ID == "" {
		cp.ID = m.genID("field")
	}
	cp.State = domain.FieldActive
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.fields[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockRepository) GetField(ctx context.Context, fieldID string) (*domain.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getFieldLocked(fieldID)
}

func (m *MockRepository) getFieldLocked(fieldID string) (*domain.Field, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	f, ok := m.fields[fieldID]
	if !ok {
		return nil, domain.ErrFieldNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *MockRepository) UpdateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	existing, ok := m.fields[field.ID]
	if !ok {
		return nil, domain.ErrFieldNotFound
	}
	existing.Name = field.Name
	existing.SoilType = field.SoilType
	existing.WateringMethod = field.WateringMethod
	existing.LastYearCrop = field.LastYearCrop
	existing.SizeHectares = field.SizeHectares
	existing.Location = field.Location
	existing.UpdatedAt = time.Now().UTC()
	cp := *existing
	return &cp, nil
}

func (m *MockRepository) DeleteField(ctx context.Context, fieldID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.fields[fieldID]; !ok {
		return domain.ErrFieldNotFound
	}
	delete(m.fields, fieldID)
	for id, t := range m.tasks {
		if t.FieldID == fieldID {
			delete(m.tasks, id)
		}
	}
	return nil
}

func (m *MockRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]domain.Field, error) {
	return m.listFields(func(f *domain.Field) bool {
		return f.OwnerID == ownerID && !f.Archived
	})
}

func (m *MockRepository) ListCompletedByOwner(ctx context.Context, ownerID string) ([]domain.Field, error) {
	return m.listFields(func(f *domain.Field) bool {
		return f.OwnerID == ownerID && f.Archived
	})
}

func (m *MockRepository) ListAll(ctx context.Context) ([]domain.Field, error) {
	return m.listFields(func(*domain.Field) bool { return true })
}

func (m *MockRepository) listFields(keep func(*domain.Field) bool) ([]domain.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []domain.Field
	for _, f := range m.fields {
		if keep(f) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Task ---

func (m *MockRepository) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	cp := *task
	if cp.ID == "" {
		cp.ID = m.genID("task")
	}
	cp.CreatedAt = time.Now().UTC()
	m.tasks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getTaskLocked(taskID)
}

func (m *MockRepository) getTaskLocked(taskID string) (*domain.Task, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID, fieldID string) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []domain.Task
	for _, t := range m.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if fieldID != "" && t.FieldID != fieldID {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) YieldTrend(ctx context.Context, ownerID string) ([]domain.YieldPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	type bucket struct {
		kilos    float64
		hectares map[string]float64
	}
	byYear := make(map[int]*bucket)
	for _, t := range m.tasks {
		if t.Type != domain.TaskHarvesting || !t.Completed || t.CompletedAt == nil {
			continue
		}
		if ownerID != "" && t.OwnerID != ownerID {
			continue
		}
		year := t.CompletedAt.Year()
		b, ok := byYear[year]
		if !ok {
			b = &bucket{hectares: make(map[string]float64)}
			byYear[year] = b
		}
		b.kilos += t.KilosHarvested
		if f, ok := m.fields[t.FieldID]; ok {
			b.hectares[t.FieldID] = f.SizeHectares
		}
	}
	var points []domain.YieldPoint
	for year, b := range byYear {
		var ha float64
		for _, h := range b.hectares {
			ha += h
		}
		p := domain.YieldPoint{Year: year, TotalKilos: b.kilos, Hectares: ha}
		if ha > 0 {
			p.KilosPerHectare = b.kilos / ha
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points, nil
}

func (m *MockRepository) HarvestTotal(ctx context.Context, fieldID string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	var total float64
	for _, t := range m.tasks {
		if t.FieldID == fieldID && t.Type == domain.TaskHarvesting && t.Completed {
			total += t.KilosHarvested
		}
	}
	return total, nil
}

// --- Farmer ---

func (m *MockRepository) GetFarmer(ctx context.Context, farmerID string) (*domain.Farmer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	f, ok := m.farmers[farmerID]
	if !ok {
		return nil, domain.ErrFarmerNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *MockRepository) UpsertFarmer(ctx context.Context, farmer *domain.Farmer) (*domain.Farmer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	cp := *farmer
	if cp.ID == "" {
		cp.ID = m.genID("farmer")
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	m.farmers[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockRepository) TouchLastActive(ctx context.Context, farmerID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if f, ok := m.farmers[farmerID]; ok {
		f.LastActiveAt = at
	}
	return nil
}

func (m *MockRepository) CountActiveSince(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	count := 0
	for _, f := range m.farmers {
		if !f.LastActiveAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

// --- FieldTx ---

// MockTx wraps MockRepository for transaction testing. Mutations apply
// immediately; Commit and Rollback are no-ops.
type MockTx struct {
	repo *MockRepository
}

func (m *MockRepository) BeginTx(ctx context.Context) (FieldTx, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return &MockTx{repo: m}, nil
}

func (mt *MockTx) Commit(ctx context.Context) error   { return nil }
func (mt *MockTx) Rollback(ctx context.Context) error { return nil }

func (mt *MockTx) GetFieldForUpdate(ctx context.Context, fieldID string) (*domain.Field, error) {
	return mt.repo.GetField(ctx, fieldID)
}

func (mt *MockTx) SaveSelection(ctx context.Context, fieldID, cropName string, recs []domain.Recommendation, weather domain.WeatherSnapshot, tip string) error {
	mt.repo.mu.Lock()
	defer mt.repo.mu.Unlock()
	f, ok := mt.repo.fields[fieldID]
	if !ok {
		return domain.ErrFieldNotFound
	}
	f.SelectedCrop = cropName
	f.LockedRecommendations = recs
	w := weather
	f.LockedWeather = &w
	f.LockedTip = tip
	f.UpdatedAt = time.Now().UTC()
	return nil
}

func (mt *MockTx) MarkPlanted(ctx context.Context, fieldID string, at time.Time) error {
	mt.repo.mu.Lock()
	defer mt.repo.mu.Unlock()
	f, ok := mt.repo.fields[fieldID]
	if !ok {
		return domain.ErrFieldNotFound
	}
	f.State = domain.FieldPlanted
	f.PlantedDate = &at
	f.UpdatedAt = time.Now().UTC()
	return nil
}

func (mt *MockTx) ArchiveField(ctx context.Context, fieldID string, at time.Time) error {
	mt.repo.mu.Lock()
	defer mt.repo.mu.Unlock()
	f, ok := mt.repo.fields[fieldID]
	if !ok {
		return domain.ErrFieldNotFound
	}
	f.State = domain.FieldHarvested
	f.HarvestDate = &at
	f.CompletedAt = &at
	f.Archived = true
	f.UpdatedAt = time.Now().UTC()
	return nil
}

func (mt *MockTx) GetTaskForUpdate(ctx context.Context, taskID string) (*domain.Task, error) {
	return mt.repo.GetTask(ctx, taskID)
}

func (mt *MockTx) CompleteTask(ctx context.Context, taskID string, at time.Time, kilos float64) error {
	mt.repo.mu.Lock()
	defer mt.repo.mu.Unlock()
	t, ok := mt.repo.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Completed = true
	t.CompletedAt = &at
	t.KilosHarvested = kilos
	return nil
}

func (mt *MockTx) TouchFarmer(ctx context.Context, farmerID string, at time.Time) error {
	return mt.repo.TouchLastActive(ctx, farmerID, at)
}
