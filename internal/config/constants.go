package config

import "time"

const (
	// Cart lines are always added one at a time
	DefaultQuantity = 1

	// Order history paging
	OrdersPerPage     = 20
	MaxOrdersPageSize = 100

	// Sales counters, events and log messages after a commit
	AfterCommitTimeout = 5 * time.Second

	// Telegram log delivery
	TelegramSendTimeout = 10 * time.Second

	// HTTP server
	ReadHeaderTimeout = 5 * time.Second
)
