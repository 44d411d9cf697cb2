// Package handler wires the service's inbound surfaces into Fx.
package handler

import (
	controller "github.com/p4lang/p4ls/src/p4ls/controller/p4ls-daemon"
	p4lsdaemon "github.com/p4lang/p4ls/src/p4ls/handler/p4ls-daemon"
	"github.com/p4lang/p4ls/src/p4ls/repository/session"
	"go.uber.org/fx"
)

// Module provides the p4ls-daemon server into an Fx application.
var Module = fx.Options(
	controller.Module,
	session.Module,
	fx.Provide(p4lsdaemon.New),
	fx.Invoke(func(m p4lsdaemon.ConnectionManager) {}),
	fx.Invoke(func(c controller.Controller) {}),
)
