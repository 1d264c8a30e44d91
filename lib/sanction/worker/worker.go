package sanctionworker

import (
	"context"
	"time"
	sanctionhandler "workshift-backend/lib/sanction"
	baseworker "workshift-backend/lib/utils/base-worker"
	"workshift-backend/lib/utils/helpers"
)

// StartWorker finaliza periodicamente las sanciones vencidas; interval 0 no arranca nada
func StartWorker(ctx context.Context, handler sanctionhandler.Provider, interval time.Duration) {
	if interval <= 0 {
		return
	}
	i := &impl{
		BaseImpl: *baseworker.NewInstance("SanctionSweepWorker", 15*time.Second, interval),
		handler:  handler,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	handler sanctionhandler.Provider
}

func (i impl) handle(ctx context.Context) {
	if helpers.IsContextDone(ctx) {
		return
	}
	count, err := i.handler.SweepExpired()
	if err != nil {
		i.GetLogger().WithError(err).Error("Error al finalizar sanciones vencidas")
		return
	}
	i.GetLogger().WithField("count", count).Info("Sanciones vencidas procesadas")
}
