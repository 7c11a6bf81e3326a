package service

import "context"

type HealthService struct {
	repo HealthRepo
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo}
}

// Check проверяет доступность БД.
func (s *HealthService) Check(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
