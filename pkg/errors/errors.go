package errors

import "errors"

// ErrAlreadyDecided 条件更新冲突：申请已离开 pending 状态，不允许二次审批
var ErrAlreadyDecided = errors.New("该申请已被处理，无法重复审批")

// ErrConstraintViolation 存储层唯一约束/并发写入冲突
var ErrConstraintViolation = errors.New("数据写入冲突，请刷新后重试")
