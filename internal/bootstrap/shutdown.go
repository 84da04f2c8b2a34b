package bootstrap

import (
	"context"
	"log/slog"
)

type stopper interface {
	Stop(context.Context) error
}

type shutdownable interface {
	Shutdown(context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server             stopper
	AuditWorker        shutdownable
	TaskService        shutdownable
	CharacterService   shutdownable
	ResilientPublisher shutdownable
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Audit worker (cancel the timer, wait for a running audit)
// 3. Services
// 4. Event publisher (flush pending events)
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.AuditWorker != nil {
		if err := c.AuditWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgAuditWorkerShutdownFailed, "error", err)
		}
	}

	shutdownService(ctx, ServiceNameTask, c.TaskService)
	shutdownService(ctx, ServiceNameCharacter, c.CharacterService)

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

func shutdownService(ctx context.Context, name string, service shutdownable) {
	if service == nil {
		return
	}
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
