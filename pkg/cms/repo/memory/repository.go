package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nappsng/cms/pkg/cms"
)

// Repository implements cms.Repository using in-memory storage. It is the
// default backend for tests and development servers.
type Repository struct {
	mu               sync.RWMutex
	blocks           map[uuid.UUID]*cms.ContentBlock
	blocksByKey      map[string]uuid.UUID
	members          map[uuid.UUID]*cms.TeamMember
	enrollments      map[uuid.UUID]*cms.EnrollmentRecord
	enrollmentByPair map[string]uuid.UUID // "school|year" -> record id
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		blocks:           make(map[uuid.UUID]*cms.ContentBlock),
		blocksByKey:      make(map[string]uuid.UUID),
		members:          make(map[uuid.UUID]*cms.TeamMember),
		enrollments:      make(map[uuid.UUID]*cms.EnrollmentRecord),
		enrollmentByPair: make(map[string]uuid.UUID),
	}
}

func pairKey(schoolID uuid.UUID, academicYear string) string {
	return fmt.Sprintf("%s|%s", schoolID, academicYear)
}

// paginate returns the page slice plus the pre-slicing total.
func paginate[T any](items []T, limit, offset int) ([]T, int) {
	total := len(items)
	if offset >= total {
		return []T{}, total
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, total
}

// Content block operations

func (r *Repository) CreateContentBlock(ctx context.Context, block *cms.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blocksByKey[block.Key]; exists {
		return cms.ErrDuplicateKey
	}

	// Store a copy to avoid external modifications
	blockCopy := *block
	r.blocks[block.ID] = &blockCopy
	r.blocksByKey[block.Key] = block.ID

	return nil
}

func (r *Repository) GetContentBlock(ctx context.Context, id uuid.UUID) (*cms.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	block, exists := r.blocks[id]
	if !exists {
		return nil, cms.ErrContentBlockNotFound
	}

	blockCopy := *block
	return &blockCopy, nil
}

func (r *Repository) GetContentBlockByKey(ctx context.Context, key string) (*cms.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.blocksByKey[key]
	if !exists {
		return nil, cms.ErrContentBlockNotFound
	}

	blockCopy := *r.blocks[id]
	return &blockCopy, nil
}

func (r *Repository) UpdateContentBlock(ctx context.Context, block *cms.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.blocks[block.ID]
	if !exists {
		return cms.ErrContentBlockNotFound
	}

	if prev.Key != block.Key {
		if _, taken := r.blocksByKey[block.Key]; taken {
			return cms.ErrDuplicateKey
		}
		delete(r.blocksByKey, prev.Key)
		r.blocksByKey[block.Key] = block.ID
	}

	blockCopy := *block
	r.blocks[block.ID] = &blockCopy

	return nil
}

func (r *Repository) DeleteContentBlock(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	block, exists := r.blocks[id]
	if !exists {
		return cms.ErrContentBlockNotFound
	}

	delete(r.blocksByKey, block.Key)
	delete(r.blocks, id)
	return nil
}

func (r *Repository) ListContentBlocks(ctx context.Context, filter cms.ContentBlockFilter, limit, offset int) ([]*cms.ContentBlock, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*cms.ContentBlock
	for _, block := range r.blocks {
		if filter.Kind != nil && block.Kind != *filter.Kind {
			continue
		}
		if filter.Active != nil && block.Active != *filter.Active {
			continue
		}
		blockCopy := *block
		result = append(result, &blockCopy)
	}

	// Sort order ascending, creation order as tie-break
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	result, total := paginate(result, limit, offset)
	return result, total, nil
}

// Team member operations

func (r *Repository) CreateTeamMember(ctx context.Context, member *cms.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	memberCopy := *member
	r.members[member.ID] = &memberCopy

	return nil
}

func (r *Repository) GetTeamMember(ctx context.Context, id uuid.UUID) (*cms.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, exists := r.members[id]
	if !exists {
		return nil, cms.ErrTeamMemberNotFound
	}

	memberCopy := *member
	return &memberCopy, nil
}

func (r *Repository) UpdateTeamMember(ctx context.Context, member *cms.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[member.ID]; !exists {
		return cms.ErrTeamMemberNotFound
	}

	memberCopy := *member
	r.members[member.ID] = &memberCopy

	return nil
}

func (r *Repository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[id]; !exists {
		return cms.ErrTeamMemberNotFound
	}

	delete(r.members, id)
	return nil
}

func (r *Repository) ListTeamMembers(ctx context.Context, filter cms.TeamMemberFilter, limit, offset int) ([]*cms.TeamMember, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*cms.TeamMember
	for _, member := range r.members {
		if filter.Category != nil && member.Category != *filter.Category {
			continue
		}
		if filter.Role != nil && member.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && member.Active != *filter.Active {
			continue
		}
		if filter.Featured != nil && member.Featured != *filter.Featured {
			continue
		}
		memberCopy := *member
		result = append(result, &memberCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	result, total := paginate(result, limit, offset)
	return result, total, nil
}

// Enrollment operations

func (r *Repository) CreateEnrollment(ctx context.Context, record *cms.EnrollmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(record.SchoolID, record.AcademicYear)
	if _, exists := r.enrollmentByPair[key]; exists {
		return cms.ErrDuplicateEnrollment
	}

	recordCopy := *record
	r.enrollments[record.ID] = &recordCopy
	r.enrollmentByPair[key] = record.ID

	return nil
}

func (r *Repository) GetEnrollment(ctx context.Context, id uuid.UUID) (*cms.EnrollmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.enrollments[id]
	if !exists {
		return nil, cms.ErrEnrollmentNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

func (r *Repository) GetEnrollmentBySchoolYear(ctx context.Context, schoolID uuid.UUID, academicYear string) (*cms.EnrollmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.enrollmentByPair[pairKey(schoolID, academicYear)]
	if !exists {
		return nil, cms.ErrEnrollmentNotFound
	}

	recordCopy := *r.enrollments[id]
	return &recordCopy, nil
}

func (r *Repository) UpdateEnrollment(ctx context.Context, record *cms.EnrollmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.enrollments[record.ID]
	if !exists {
		return cms.ErrEnrollmentNotFound
	}

	prevKey := pairKey(prev.SchoolID, prev.AcademicYear)
	newKey := pairKey(record.SchoolID, record.AcademicYear)
	if prevKey != newKey {
		if _, taken := r.enrollmentByPair[newKey]; taken {
			return cms.ErrDuplicateEnrollment
		}
		delete(r.enrollmentByPair, prevKey)
		r.enrollmentByPair[newKey] = record.ID
	}

	recordCopy := *record
	r.enrollments[record.ID] = &recordCopy

	return nil
}

func (r *Repository) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.enrollments[id]
	if !exists {
		return cms.ErrEnrollmentNotFound
	}

	delete(r.enrollmentByPair, pairKey(record.SchoolID, record.AcademicYear))
	delete(r.enrollments, id)
	return nil
}

func (r *Repository) ListEnrollments(ctx context.Context, filter cms.EnrollmentFilter, limit, offset int) ([]*cms.EnrollmentRecord, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*cms.EnrollmentRecord
	for _, record := range r.enrollments {
		if filter.SchoolID != nil && record.SchoolID != *filter.SchoolID {
			continue
		}
		if filter.AcademicYear != nil && record.AcademicYear != *filter.AcademicYear {
			continue
		}
		recordCopy := *record
		result = append(result, &recordCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].AcademicYear != result[j].AcademicYear {
			return result[i].AcademicYear < result[j].AcademicYear
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	result, total := paginate(result, limit, offset)
	return result, total, nil
}
