package usecase

import (
	"context"

	"files-manager/internal/domain/repository"
)

// AppUseCase serves the operational status and stats endpoints.
type AppUseCase struct {
	sessions repository.Sessions
	records  repository.Records
}

// NewAppUseCase creates a new app use case.
func NewAppUseCase(sessions repository.Sessions, records repository.Records) *AppUseCase {
	return &AppUseCase{
		sessions: sessions,
		records:  records,
	}
}

// Status reports liveness of the session store and the record store. It
// never fails; a down store is just reported as false.
func (a *AppUseCase) Status(ctx context.Context) (redisAlive, dbAlive bool) {
	redisAlive = a.sessions.Ping(ctx) == nil
	dbAlive = a.records.Ping(ctx) == nil
	return redisAlive, dbAlive
}

// Stats returns the total number of users and file records.
func (a *AppUseCase) Stats(ctx context.Context) (users, files int64, err error) {
	users, err = a.records.CountUsers(ctx)
	if err != nil {
		return 0, 0, err
	}
	files, err = a.records.CountFiles(ctx)
	if err != nil {
		return 0, 0, err
	}
	return users, files, nil
}
