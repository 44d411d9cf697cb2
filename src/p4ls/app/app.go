// Package app assembles the p4ls-daemon application.
package app

import (
	"context"
	"time"

	notifier "github.com/p4lang/p4ls/src/p4ls/gateway/ide-client"
	"github.com/p4lang/p4ls/src/p4ls/handler"
	"github.com/p4lang/p4ls/src/p4ls/internal/analyzer"
	"github.com/p4lang/p4ls/src/p4ls/internal/core"
	"github.com/p4lang/p4ls/src/p4ls/internal/fs"
	"github.com/p4lang/p4ls/src/p4ls/internal/jsonrpcfx"
	"github.com/p4lang/p4ls/src/p4ls/internal/progress"
	"github.com/p4lang/p4ls/src/p4ls/internal/serverinfofile"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the p4ls-daemon application module.
var Module = fx.Options(
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	analyzer.Module,
	progress.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New), // outbounds
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "p4ls-daemon",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
)
