package service

import (
	"strings"

	"github.com/mallhub-next/internal/constants"
)

// allowedTransitions 订单状态流转表，completed 与 cancelled 为终态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusCompleted: true,
		constants.OrderStatusCancelled: true,
	},
}

// CanTransition 判断状态流转是否合法
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// IsTerminalStatus 判断是否终态
func IsTerminalStatus(status string) bool {
	return len(allowedTransitions[status]) == 0
}

// NormalizeOrderStatus 归一化外部传入的订单状态，未知状态返回空串
func NormalizeOrderStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.OrderStatusPending:
		return constants.OrderStatusPending
	case constants.OrderStatusCompleted:
		return constants.OrderStatusCompleted
	case constants.OrderStatusCancelled:
		return constants.OrderStatusCancelled
	default:
		return ""
	}
}

// DisplayOrderStatus 返回对外展示用的状态（首字母大写）
func DisplayOrderStatus(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "Pending"
	case constants.OrderStatusCompleted:
		return "Completed"
	case constants.OrderStatusCancelled:
		return "Cancelled"
	default:
		return status
	}
}
