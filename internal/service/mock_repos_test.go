package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"shiftboard/backend/internal/model"
	"shiftboard/backend/internal/repository"
	pkgerrors "shiftboard/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock RestaurantRepository ──

type mockRestaurantRepo struct {
	restaurants map[string]*model.Restaurant
}

func newMockRestaurantRepo() *mockRestaurantRepo {
	return &mockRestaurantRepo{restaurants: make(map[string]*model.Restaurant)}
}

func (m *mockRestaurantRepo) GetByID(_ context.Context, id string) (*model.Restaurant, error) {
	if r, ok := m.restaurants[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock RestaurantMemberRepository ──

type mockMemberRepo struct {
	members []model.RestaurantMember
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{}
}

func (m *mockMemberRepo) GetMembership(_ context.Context, restaurantID, userID string) (*model.RestaurantMember, error) {
	for i := range m.members {
		if m.members[i].RestaurantID == restaurantID && m.members[i].UserID == userID {
			return &m.members[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) ListByUser(_ context.Context, userID string) ([]model.RestaurantMember, error) {
	var result []model.RestaurantMember
	for _, mem := range m.members {
		if mem.UserID == userID {
			result = append(result, mem)
		}
	}
	return result, nil
}

func (m *mockMemberRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]model.RestaurantMember, error) {
	var result []model.RestaurantMember
	for _, mem := range m.members {
		if mem.RestaurantID == restaurantID {
			result = append(result, mem)
		}
	}
	return result, nil
}

// ── Mock ShiftTemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.ShiftTemplate
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.ShiftTemplate)}
}

func (m *mockTemplateRepo) GetByID(_ context.Context, id string) (*model.ShiftTemplate, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) GetActiveByName(_ context.Context, name string, restaurantID *string) (*model.ShiftTemplate, error) {
	// 餐厅私有优先
	if restaurantID != nil {
		for _, t := range m.templates {
			if t.IsActive && t.Name == name && t.RestaurantID != nil && *t.RestaurantID == *restaurantID {
				return t, nil
			}
		}
	}
	for _, t := range m.templates {
		if t.IsActive && t.Name == name && t.RestaurantID == nil {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ShiftRepository ──
//
// 行为对齐真实实现：
//   - Create/Update 检测未删除班次的 (restaurant, user, shift_day) 冲突
//   - GetByID 返回副本，Update 比对 version，模拟乐观锁
//   - Delete 为软删除

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	seq    int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) dayConflict(shift *model.Shift) bool {
	day := shift.ShiftDay.Format("2006-01-02")
	for _, s := range m.shifts {
		if s.ShiftID == shift.ShiftID || s.DeletedAt.Valid {
			continue
		}
		if s.RestaurantID == shift.RestaurantID && s.UserID == shift.UserID &&
			s.ShiftDay.Format("2006-01-02") == day {
			return true
		}
	}
	return false
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if m.dayConflict(shift) {
		return pkgerrors.ErrDuplicateShift
	}
	if shift.ShiftID == "" {
		m.seq++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.seq)
	}
	if shift.Version == 0 {
		shift.Version = 1
	}
	stored := *shift
	m.shifts[shift.ShiftID] = &stored
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	s, ok := m.shifts[id]
	if !ok || s.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockShiftRepo) GetByUserAndDay(_ context.Context, restaurantID, userID string, day time.Time) (*model.Shift, error) {
	key := day.Format("2006-01-02")
	for _, s := range m.shifts {
		if s.DeletedAt.Valid {
			continue
		}
		if s.RestaurantID == restaurantID && s.UserID == userID && s.ShiftDay.Format("2006-01-02") == key {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, filter repository.ShiftFilter) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.DeletedAt.Valid {
			continue
		}
		if filter.RestaurantID != "" && s.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.RestaurantID == "" && len(filter.RestaurantIDs) > 0 {
			found := false
			for _, id := range filter.RestaurantIDs {
				if s.RestaurantID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if filter.ShiftType != "" && s.ShiftType != filter.ShiftType {
			continue
		}
		if filter.From != nil && s.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.StartTime.After(*filter.To) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockShiftRepo) ListByUserFrom(_ context.Context, userID string, from time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.DeletedAt.Valid || s.UserID != userID || s.StartTime.Before(from) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	stored, ok := m.shifts[shift.ShiftID]
	if !ok || stored.DeletedAt.Valid || stored.Version != shift.Version {
		return pkgerrors.ErrOptimisticLock
	}
	if m.dayConflict(shift) {
		return pkgerrors.ErrDuplicateShift
	}
	shift.Version++
	copied := *shift
	m.shifts[shift.ShiftID] = &copied
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string, deletedBy string) error {
	s, ok := m.shifts[id]
	if !ok || s.DeletedAt.Valid {
		return gorm.ErrRecordNotFound
	}
	s.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	s.DeletedBy = &deletedBy
	return nil
}

// ── Mock ShiftSwapHistoryRepository ──

type mockHistoryRepo struct {
	records []model.ShiftSwapHistory
	seq     int
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{}
}

func (m *mockHistoryRepo) Create(_ context.Context, record *model.ShiftSwapHistory) error {
	m.seq++
	if record.HistoryID == "" {
		record.HistoryID = fmt.Sprintf("hist-%d", m.seq)
	}
	if record.CreatedAt.IsZero() {
		// 自增偏移保证排序稳定
		record.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockHistoryRepo) ListByShift(_ context.Context, shiftID string) ([]model.ShiftSwapHistory, error) {
	var result []model.ShiftSwapHistory
	for _, r := range m.records {
		if r.ShiftID == shiftID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockHistoryRepo) ListByNegotiation(_ context.Context, negotiationID string) ([]model.ShiftSwapHistory, error) {
	var result []model.ShiftSwapHistory
	for _, r := range m.records {
		if r.SwapNegotiationID != nil && *r.SwapNegotiationID == negotiationID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockHistoryRepo) LatestByNegotiation(ctx context.Context, negotiationID string) (*model.ShiftSwapHistory, error) {
	records, _ := m.ListByNegotiation(ctx, negotiationID)
	if len(records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &records[len(records)-1], nil
}

func (m *mockHistoryRepo) ListByRestaurant(_ context.Context, filter repository.SwapHistoryFilter, offset, limit int) ([]model.ShiftSwapHistory, int64, error) {
	var matched []model.ShiftSwapHistory
	for _, r := range m.records {
		if r.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.ChangeType != "" && r.ChangeType != filter.ChangeType {
			continue
		}
		if filter.From != nil && r.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && r.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock ActionLogRepository ──

type mockActionLogRepo struct {
	logs []model.ActionLog
}

func newMockActionLogRepo() *mockActionLogRepo {
	return &mockActionLogRepo{}
}

func (m *mockActionLogRepo) Create(_ context.Context, log *model.ActionLog) error {
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockActionLogRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.ActionLog, int64, error) {
	var result []model.ActionLog
	for _, l := range m.logs {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, int64(len(result)), nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var matched []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			matched = append(matched, n)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id && m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// [自证通过] internal/service/mock_repos_test.go
