package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrDuplicateShift 唯一约束冲突：同一员工同一天已存在班次
// 由 Repository 层将数据库唯一索引冲突翻译而来，批量创建时作为跳过信号处理
var ErrDuplicateShift = errors.New("该员工当天已有班次")
