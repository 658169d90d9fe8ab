package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
)

// 内存仓储，只实现测试用到的行为

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*entity.Project)}
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) List(ctx context.Context, filter *repository.ProjectFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Project
	for _, p := range r.projects {
		cp := *p
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (r *fakeProjectRepo) UpdateStatus(ctx context.Context, id string, status entity.ProjectStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		p.Status = status
	}
	return nil
}

func (r *fakeProjectRepo) IncrementPhase(ctx context.Context, id string, from entity.Phase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.CurrentPhase != from || p.CurrentPhase >= entity.PhasePublication {
		return repository.ErrPhaseMoved
	}
	p.CurrentPhase++
	return nil
}

func (r *fakeProjectRepo) CountVideos(ctx context.Context, id string) (int, error) {
	return 0, nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[string]*entity.Video)}
}

func (r *fakeVideoRepo) Create(ctx context.Context, v *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Update(ctx context.Context, v *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Video
	for _, v := range r.videos {
		if v.ProjectID == projectID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVideoRepo) UpdatePhaseStatus(ctx context.Context, id string, status entity.PhaseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.videos[id]; ok {
		v.PhaseStatus = status
	}
	return nil
}

func (r *fakeVideoRepo) ResetForNextPhase(ctx context.Context, projectID string, phase entity.Phase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.videos {
		if v.ProjectID == projectID {
			v.CurrentPhase = phase
			v.PhaseStatus = entity.PhaseStatusPending
		}
	}
	return nil
}

func (r *fakeVideoRepo) SetApproval(ctx context.Context, id string, field entity.ApprovalField, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.videos[id]; ok {
		v.SetApproval(field, value)
	}
	return nil
}

type fakeDeliverableRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Deliverable
}

func newFakeDeliverableRepo() *fakeDeliverableRepo {
	return &fakeDeliverableRepo{items: make(map[string]*entity.Deliverable)}
}

func (r *fakeDeliverableRepo) Create(ctx context.Context, d *entity.Deliverable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDeliverableRepo) GetByID(ctx context.Context, id string) (*entity.Deliverable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeliverableRepo) Update(ctx context.Context, d *entity.Deliverable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDeliverableRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeDeliverableRepo) ListByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Deliverable
	for _, d := range r.items {
		if d.VideoID == videoID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HookNumber < out[j].HookNumber })
	return out, nil
}

func (r *fakeDeliverableRepo) ListUnnumberedByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	all, _ := r.ListByVideo(ctx, videoID)
	var out []*entity.Deliverable
	for _, d := range all {
		if d.AdNumber == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeliverableRepo) SetAdNumber(ctx context.Context, id string, adNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return fmt.Errorf("deliverable %s not found", id)
	}
	now := time.Now()
	d.AdNumber = &adNumber
	d.NumberedAt = &now
	return nil
}

func (r *fakeDeliverableRepo) SetGeneratedName(ctx context.Context, id string, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.items[id]; ok {
		d.GeneratedName = name
	}
	return nil
}

type fakeCounterRepo struct {
	mu    sync.Mutex
	value int
}

func (r *fakeCounterRepo) Increment(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value++
	return r.value, nil
}

func (r *fakeCounterRepo) Current(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, nil
}

type fakeAreaRepo struct {
	areas       map[string]*entity.Area // slug -> area
	memberships []entity.AreaMember
}

func newFakeAreaRepo() *fakeAreaRepo {
	return &fakeAreaRepo{areas: make(map[string]*entity.Area)}
}

func (r *fakeAreaRepo) addArea(slug string) *entity.Area {
	a := &entity.Area{ID: "area-" + slug, Name: slug, Slug: slug, IsActive: true}
	r.areas[slug] = a
	return a
}

func (r *fakeAreaRepo) addMember(userID, slug string, position entity.AreaPosition) {
	area, ok := r.areas[slug]
	if !ok {
		area = r.addArea(slug)
	}
	r.memberships = append(r.memberships, entity.AreaMember{
		ID: fmt.Sprintf("m-%d", len(r.memberships)), UserID: userID, AreaID: area.ID, Position: position,
	})
}

func (r *fakeAreaRepo) ListActiveBySlugs(ctx context.Context, slugs []string) ([]*entity.Area, error) {
	var out []*entity.Area
	for _, slug := range slugs {
		if a, ok := r.areas[slug]; ok && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAreaRepo) HasMembership(ctx context.Context, userID string, areaIDs []string, positions []entity.AreaPosition) (bool, error) {
	idSet := make(map[string]bool, len(areaIDs))
	for _, id := range areaIDs {
		idSet[id] = true
	}
	posSet := make(map[entity.AreaPosition]bool, len(positions))
	for _, p := range positions {
		posSet[p] = true
	}
	for _, m := range r.memberships {
		if m.UserID == userID && idSet[m.AreaID] && posSet[m.Position] {
			return true, nil
		}
	}
	return false, nil
}

type fakeSummaryCache struct {
	mu           sync.Mutex
	entries      map[string]*PhaseSummary
	invalidation int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{entries: make(map[string]*PhaseSummary)}
}

func (c *fakeSummaryCache) GetSummary(ctx context.Context, projectID string) (*PhaseSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[projectID], nil
}

func (c *fakeSummaryCache) SetSummary(ctx context.Context, projectID string, summary *PhaseSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectID] = summary
	return nil
}

func (c *fakeSummaryCache) Invalidate(ctx context.Context, projectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, projectID)
	c.invalidation++
	return nil
}
