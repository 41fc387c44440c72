package payments

import (
	"context"
	"errors"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestWorker_RunOnceRequiresLeaderLock(t *testing.T) {
	locker := new(mocks.LockerService)
	usecase := new(mocks.PaymentUsecase)
	worker := NewWorker(zap.NewNop(), &config.InternalConfig{}, locker, usecase)
	locker.On("TryLock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, reconcileLeaderLockTTL).Return(false, "", nil)

	worker.runOnce(context.Background())

	usecase.AssertNotCalled(t, "ReconcileAwaitingSettlement", mock.Anything)
}

func TestWorker_RunOnceReconcilesAndReleases(t *testing.T) {
	locker := new(mocks.LockerService)
	usecase := new(mocks.PaymentUsecase)
	worker := NewWorker(zap.NewNop(), &config.InternalConfig{}, locker, usecase)
	locker.On("TryLock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, reconcileLeaderLockTTL).Return(true, "token", nil)
	locker.On("Unlock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, "token").Return(nil)
	usecase.On("ReconcileAwaitingSettlement", mock.Anything).Return(2, nil)

	worker.runOnce(context.Background())

	usecase.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestWorker_RunOnceLockError(t *testing.T) {
	locker := new(mocks.LockerService)
	usecase := new(mocks.PaymentUsecase)
	worker := NewWorker(zap.NewNop(), &config.InternalConfig{}, locker, usecase)
	locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", errors.New("redis down"))

	worker.runOnce(context.Background())

	usecase.AssertNotCalled(t, "ReconcileAwaitingSettlement", mock.Anything)
}

func TestWorker_StartAndStop(t *testing.T) {
	worker := NewWorker(zap.NewNop(), &config.InternalConfig{Payment: config.AppPayment{ReconcileCronSpec: "not a spec"}}, new(mocks.LockerService), new(mocks.PaymentUsecase))
	worker.Start(context.Background())
	worker.Stop()
	worker.Stop()
}
