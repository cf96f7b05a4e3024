package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/repositories"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/types"
)

const statsMonths = 6

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context, actor authz.Actor) (*types.DashboardStats, error)
	InvalidateStats(ctx context.Context) error
}

type DashboardService struct {
	repo      repositories.DashboardRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewDashboardService(
	repo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{repo: repo, cacheRepo: cacheRepo, ttl: ttl, logger: logger}
}

// GetDashboardStats aggregates the requests visible to the actor. Results are cached per
// user under the current stats generation.
func (s *DashboardService) GetDashboardStats(ctx context.Context, actor authz.Actor) (*types.DashboardStats, error) {
	key := s.cacheKey(ctx, actor)
	if key != "" {
		if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
			var stats types.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cacheRepo.Set(ctx, key, payload, s.ttl); err != nil {
				s.logger.Warn("DashboardService: failed to cache stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// InvalidateStats starts a new generation; entries of older generations expire on their own.
func (s *DashboardService) InvalidateStats(ctx context.Context) error {
	if _, err := s.cacheRepo.Incr(ctx, constants.CacheKeyStatsVersion); err != nil {
		return fmt.Errorf("failed to bump stats generation: %w", err)
	}
	return nil
}

// cacheKey returns "" when the generation cannot be read, which disables caching for the call.
func (s *DashboardService) cacheKey(ctx context.Context, actor authz.Actor) string {
	var version int64
	raw, err := s.cacheRepo.Get(ctx, constants.CacheKeyStatsVersion)
	switch {
	case err == nil:
		version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ""
		}
	case errors.Is(err, repositories.ErrCacheMiss):
		version = 0
	default:
		s.logger.Warn("DashboardService: cache unavailable", zap.Error(err))
		return ""
	}
	return fmt.Sprintf(constants.CacheKeyStats, version, actor.Role, actor.ID)
}

func (s *DashboardService) load(ctx context.Context, actor authz.Actor) (*types.DashboardStats, error) {
	scope := visibilityScope(actor)
	pending, hasPending := pendingScope(actor)

	var (
		wg         sync.WaitGroup
		totals     *repositories.RequestTotals
		pendingFor int64
		totalUsers int64
		byType     []types.DashboardCountByGroup
		byProvince []types.DashboardCountByGroup
		byStatus   []types.DashboardCountByGroup
		monthly    []types.DashboardMonth
		byRole     []types.DashboardCountByGroup

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { totals, err = s.repo.GetRequestTotals(ctx, scope); return })
	addTask(func() (err error) { byType, err = s.repo.GetCountByType(ctx, scope); return })
	addTask(func() (err error) { byProvince, err = s.repo.GetCountByProvince(ctx, scope); return })
	addTask(func() (err error) { byStatus, err = s.repo.GetCountByStatus(ctx, scope); return })
	addTask(func() (err error) { monthly, err = s.repo.GetMonthly(ctx, scope, statsMonths); return })
	if hasPending {
		addTask(func() (err error) { pendingFor, err = s.repo.CountRequests(ctx, andScope(scope, pending)); return })
	}
	if authz.PermissionsFor(actor.Role)[authz.UsersManage] {
		addTask(func() (err error) { totalUsers, err = s.repo.CountUsers(ctx); return })
		addTask(func() (err error) { byRole, err = s.repo.GetUsersByRole(ctx); return })
	}

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("DashboardService: failed to load stats", zap.Error(errs[0]))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternalServer, errs[0])
	}

	for i := range byRole {
		byRole[i].Label = constants.Label(constants.RoleLabels, constants.Role(byRole[i].Key))
	}
	for i := range byType {
		byType[i].Label = constants.Label(constants.RequestTypeLabels, constants.RequestType(byType[i].Key))
	}
	for i := range byStatus {
		byStatus[i].Label = constants.Label(constants.StatusLabels, constants.RequestStatus(byStatus[i].Key))
	}
	if byRole == nil {
		byRole = []types.DashboardCountByGroup{}
	}

	return &types.DashboardStats{
		TotalRequests:      totals.Total,
		PendingRequests:    totals.Pending,
		CompletedRequests:  totals.Completed,
		RejectedRequests:   totals.Rejected,
		PendingForUser:     pendingFor,
		TotalUsers:         totalUsers,
		RequestsByType:     byType,
		RequestsByProvince: byProvince,
		RequestsByStatus:   byStatus,
		Monthly:            monthly,
		UsersByRole:        byRole,
	}, nil
}

func andScope(a, b sq.Sqlizer) sq.Sqlizer {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return sq.And{a, b}
}
