package relay

import (
	"context"
)

// Server 可被 App 调度的中继服务单元
type Server interface {
	// Init 校验并装配服务配置，不执行网络操作
	Init(ctx context.Context) error
	// Serve 以阻塞态运行服务，直到发生致命错误或 ctx 结束
	Serve(ctx context.Context) error
}
