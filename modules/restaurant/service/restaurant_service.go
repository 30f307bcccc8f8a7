package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"restaurant-directory/core/broker"
	"restaurant-directory/core/constants"
	"restaurant-directory/core/dto"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/metrics"
	"restaurant-directory/core/params"
	"restaurant-directory/core/queue"
	"restaurant-directory/core/storage"
	"restaurant-directory/core/utils"
	restaurantDto "restaurant-directory/modules/restaurant/dto"
	"restaurant-directory/modules/restaurant/entity"
	"restaurant-directory/modules/restaurant/hours"
	"restaurant-directory/modules/restaurant/mapper"
	"restaurant-directory/modules/restaurant/repository"
	"restaurant-directory/modules/restaurant/seed"
	"restaurant-directory/modules/restaurant/tasks"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxSlugAttempts = 5

type RestaurantServiceInterface interface {
	List(ctx context.Context, query hours.Query, page params.QueryParams) (*restaurantDto.RestaurantListResponse, *errors.AppError)
	Get(ctx context.Context, id uuid.UUID) (*restaurantDto.RestaurantResponse, *errors.AppError)
	GetBySlug(ctx context.Context, slug string) (*restaurantDto.RestaurantResponse, *errors.AppError)
	Create(ctx context.Context, req *restaurantDto.CreateRestaurantRequest) (*restaurantDto.RestaurantResponse, *errors.AppError)
	Update(ctx context.Context, id uuid.UUID, req *restaurantDto.UpdateRestaurantRequest) (*restaurantDto.RestaurantResponse, *errors.AppError)
	Delete(ctx context.Context, id uuid.UUID) *errors.AppError
	OpeningHours(ctx context.Context, id uuid.UUID) (*restaurantDto.OpeningHoursResponse, *errors.AppError)
	CheckOpen(ctx context.Context, id uuid.UUID, query hours.Query) (*restaurantDto.CheckOpenResponse, *errors.AppError)
	Unparseable(ctx context.Context) (*restaurantDto.UnparseableResponse, *errors.AppError)
	CacheStats(ctx context.Context) *restaurantDto.CacheStatsResponse
	WarmUpCache(ctx context.Context) (*restaurantDto.WarmUpResponse, *errors.AppError)
	ClearCache(ctx context.Context) (*restaurantDto.ClearCacheResponse, *errors.AppError)
	Export(ctx context.Context) (*restaurantDto.ExportResponse, *errors.AppError)
	ScheduleExport(ctx context.Context) (*restaurantDto.ExportResponse, *errors.AppError)
	Seed(ctx context.Context, records []seed.Restaurant) (int, *errors.AppError)
}

type RestaurantService struct {
	repo      repository.RestaurantRepositoryInterface
	cache     *CacheService
	publisher broker.Publisher
	enqueuer  queue.Enqueuer
	store     storage.ObjectStore
}

func NewRestaurantService(
	repo repository.RestaurantRepositoryInterface,
	cache *CacheService,
	publisher broker.Publisher,
	enqueuer queue.Enqueuer,
	store storage.ObjectStore,
) *RestaurantService {
	if cache == nil {
		cache = NewCacheService(nil, 0)
	}
	if publisher == nil {
		publisher = broker.NoopPublisher{}
	}
	if enqueuer == nil {
		enqueuer = queue.NoopEnqueuer{}
	}
	if store == nil {
		store = storage.NewS3Store(storage.Config{})
	}
	return &RestaurantService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		enqueuer:  enqueuer,
		store:     store,
	}
}

// List returns one page of restaurants matching query. Every filter runs
// over the full directory in memory; name-only results are also cached
// per name.
func (s *RestaurantService) List(ctx context.Context, query hours.Query, page params.QueryParams) (*restaurantDto.RestaurantListResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	start := time.Now()
	var (
		items  []restaurantDto.RestaurantResponse
		cached bool
	)

	nameOnly := query.Name != "" && !query.HasSchedule()
	if nameOnly {
		items, cached = s.cache.GetFiltered(ctx, query.Name)
	}
	if !cached {
		all, gen, hit, err := s.loadAll(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurants failed", err)
		}
		cached = hit

		filterStart := time.Now()
		items = hours.Filter(all, query)
		metrics.ObserveFilter(time.Since(filterStart))

		if nameOnly {
			s.cache.PutFiltered(ctx, gen, query.Name, items)
		}
	}

	result := &restaurantDto.RestaurantListResponse{
		Pagination: dto.Paginate(items, page.PageNumber, page.PageSize),
		Meta: restaurantDto.ListMeta{
			Total:           len(items),
			ExecutionTimeMs: float64(time.Since(start).Microseconds()) / 1000,
			Cached:          cached,
			FiltersApplied:  query.Applied(),
		},
	}
	logger.Info("RestaurantService:List",
		"filters", result.Meta.FiltersApplied,
		"total", result.Meta.Total,
		"cached", cached,
	)
	return result, nil
}

func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*restaurantDto.RestaurantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.get(ctx, id)
}

func (s *RestaurantService) GetBySlug(ctx context.Context, slug string) (*restaurantDto.RestaurantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	restaurant, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurant failed", err)
	}
	if restaurant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "restaurant not found", nil)
	}
	return mapper.ToRestaurantResponse(restaurant), nil
}

func (s *RestaurantService) Create(ctx context.Context, req *restaurantDto.CreateRestaurantRequest) (*restaurantDto.RestaurantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	restaurant := mapper.ToRestaurantEntity(req)
	created, appErr := s.create(ctx, restaurant)
	if appErr != nil {
		return nil, appErr
	}

	response := mapper.ToRestaurantResponse(created)
	s.afterWrite(ctx, constants.EventActionCreated, created.ID, response)
	return response, nil
}

func (s *RestaurantService) Update(ctx context.Context, id uuid.UUID, req *restaurantDto.UpdateRestaurantRequest) (*restaurantDto.RestaurantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurant failed", err)
	}
	if existing == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "restaurant not found", nil)
	}

	previousName := existing.Name
	mapper.ApplyUpdate(existing, req)
	if existing.Name != previousName {
		existing.Slug, err = s.uniqueSlug(ctx, existing.Name, existing.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "update restaurant failed", err)
		}
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update restaurant failed", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "restaurant not found", nil)
	}

	response := mapper.ToRestaurantResponse(updated)
	s.afterWrite(ctx, constants.EventActionUpdated, updated.ID, response)
	return response, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete restaurant failed", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "restaurant not found", nil)
	}

	s.afterWrite(ctx, constants.EventActionDeleted, id, nil)
	return nil
}

func (s *RestaurantService) OpeningHours(ctx context.Context, id uuid.UUID) (*restaurantDto.OpeningHoursResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	restaurant, appErr := s.get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	schedules := hours.Parse(restaurant.OpeningHours)
	return &restaurantDto.OpeningHoursResponse{
		Restaurant:      *restaurant,
		RawOpeningHours: restaurant.OpeningHours,
		ParsedSchedules: schedules,
		Parseable:       !schedules.IsEmpty(),
	}, nil
}

// CheckOpen evaluates a single restaurant against query's day and time.
// Unset parts match any day or any time.
func (s *RestaurantService) CheckOpen(ctx context.Context, id uuid.UUID, query hours.Query) (*restaurantDto.CheckOpenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	restaurant, appErr := s.get(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	response := &restaurantDto.CheckOpenResponse{
		Restaurant:   *restaurant,
		IsOpen:       hours.Parse(restaurant.OpeningHours).IsOpenAt(query.Day, query.Time),
		OpeningHours: restaurant.OpeningHours,
	}
	if query.Day != nil {
		response.Day = query.Day.String()
	}
	if query.Time != nil {
		response.Time = query.Time.Clock()
	}
	return response, nil
}

func (s *RestaurantService) Unparseable(ctx context.Context) (*restaurantDto.UnparseableResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	all, _, _, err := s.loadAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurants failed", err)
	}
	broken := hours.Unparseable(all)
	if broken == nil {
		broken = []restaurantDto.RestaurantResponse{}
	}
	metrics.SetUnparseable(len(broken))
	return &restaurantDto.UnparseableResponse{Total: len(broken), Restaurants: broken}, nil
}

func (s *RestaurantService) CacheStats(ctx context.Context) *restaurantDto.CacheStatsResponse {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	return s.cache.Stats(ctx)
}

// WarmUpCache loads every restaurant into the list cache and the per-id
// cache.
func (s *RestaurantService) WarmUpCache(ctx context.Context) (*restaurantDto.WarmUpResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !s.cache.Available(ctx) {
		return nil, errors.NewAppError(errors.ErrCacheUnavailable, "cache unavailable", nil)
	}

	gen := s.cache.Generation(ctx)
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurants failed", err)
	}
	items := mapper.ToRestaurantResponses(rows)
	s.cache.PutAll(ctx, gen, items)
	for i := range items {
		s.cache.PutOneAt(ctx, gen, &items[i])
	}
	metrics.SetUnparseable(len(hours.Unparseable(items)))

	logger.Info("RestaurantService:WarmUpCache", "count", len(items))
	return &restaurantDto.WarmUpResponse{Count: len(items)}, nil
}

func (s *RestaurantService) ClearCache(ctx context.Context) (*restaurantDto.ClearCacheResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !s.cache.Available(ctx) {
		return nil, errors.NewAppError(errors.ErrCacheUnavailable, "cache unavailable", nil)
	}
	deleted, err := s.cache.Clear(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCacheUnavailable, "clear cache failed", err)
	}
	return &restaurantDto.ClearCacheResponse{Deleted: deleted}, nil
}

// Export uploads a JSON snapshot of the directory, parsed schedules
// included, and returns its object key.
func (s *RestaurantService) Export(ctx context.Context) (*restaurantDto.ExportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExportTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurants failed", err)
	}

	now := time.Now().UTC()
	snapshot := restaurantDto.ExportSnapshot{
		GeneratedAt: now,
		Total:       len(rows),
		Restaurants: make([]restaurantDto.ExportedRestaurant, 0, len(rows)),
	}
	for i := range rows {
		snapshot.Restaurants = append(snapshot.Restaurants, restaurantDto.ExportedRestaurant{
			RestaurantResponse: *mapper.ToRestaurantResponse(&rows[i]),
			Schedules:          hours.Parse(rows[i].OpeningHours),
		})
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "encode export failed", err)
	}

	key := ExportKey(now, utils.GenerateID(8))
	if err := s.store.Put(ctx, key, body, "application/json"); err != nil {
		if stderrors.Is(err, storage.ErrNotConfigured) {
			return nil, errors.NewAppError(errors.ErrStorageUnavailable, "export storage is not configured", err)
		}
		return nil, errors.NewAppError(errors.ErrStorageUnavailable, "upload export failed", err)
	}

	logger.Info("RestaurantService:Export", "key", key, "count", len(rows))
	return &restaurantDto.ExportResponse{Key: key, Count: len(rows)}, nil
}

// ScheduleExport queues an export for a worker.
func (s *RestaurantService) ScheduleExport(ctx context.Context) (*restaurantDto.ExportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.enqueuer.Enqueue(ctx, tasks.NewExportTask()); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "queue export failed", err)
	}
	return &restaurantDto.ExportResponse{Queued: true}, nil
}

// Seed inserts records into an empty directory. It does nothing when
// restaurants already exist.
func (s *RestaurantService) Seed(ctx context.Context, records []seed.Restaurant) (int, *errors.AppError) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "count restaurants failed", err)
	}
	if total > 0 {
		logger.Info("RestaurantService:Seed:Skipped", "existing", total)
		return 0, nil
	}

	inserted := 0
	for _, record := range records {
		restaurant := mapper.ToRestaurantEntity(&restaurantDto.CreateRestaurantRequest{
			Name:         record.Name,
			OpeningHours: record.OpeningHours,
		})
		if _, appErr := s.create(ctx, restaurant); appErr != nil {
			return inserted, appErr
		}
		inserted++
	}

	s.cache.InvalidateLists(ctx)
	logger.Info("RestaurantService:Seed", "inserted", inserted)
	return inserted, nil
}

func ExportKey(at time.Time, suffix string) string {
	return fmt.Sprintf("exports/restaurants-%s-%s.json", at.Format("20060102T150405Z"), suffix)
}

func (s *RestaurantService) get(ctx context.Context, id uuid.UUID) (*restaurantDto.RestaurantResponse, *errors.AppError) {
	if cached, ok := s.cache.GetOne(ctx, id); ok {
		return cached, nil
	}

	gen := s.cache.Generation(ctx)
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get restaurant failed", err)
	}
	if restaurant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "restaurant not found", nil)
	}

	response := mapper.ToRestaurantResponse(restaurant)
	s.cache.PutOneAt(ctx, gen, response)
	return response, nil
}

func (s *RestaurantService) create(ctx context.Context, restaurant *entity.Restaurant) (*entity.Restaurant, *errors.AppError) {
	var err error
	restaurant.Slug, err = s.uniqueSlug(ctx, restaurant.Name, uuid.Nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create restaurant failed", err)
	}
	created, err := s.repo.Create(ctx, restaurant)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create restaurant failed", err)
	}
	return created, nil
}

// loadAll returns the whole directory ordered by name, from the cache when
// possible, with the cache generation the list belongs to. Lists derived
// from it are cached under that generation.
func (s *RestaurantService) loadAll(ctx context.Context) ([]restaurantDto.RestaurantResponse, int64, bool, error) {
	if items, gen, ok := s.cache.GetAll(ctx); ok {
		return items, gen, true, nil
	}
	gen := s.cache.Generation(ctx)
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, NoGeneration, false, err
	}
	items := mapper.ToRestaurantResponses(rows)
	s.cache.PutAll(ctx, gen, items)
	return items, gen, false, nil
}

// uniqueSlug derives a slug from name, adding a random suffix while the
// slug is taken by another restaurant.
func (s *RestaurantService) uniqueSlug(ctx context.Context, name string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurant"
	}
	candidate := base
	for i := 0; i < maxSlugAttempts; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + utils.GenerateID(6)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", name, maxSlugAttempts)
}

// afterWrite keeps caches, subscribers and workers in step with a write.
// Failures are logged; the write itself has already succeeded.
// The generation bump in InvalidateLists must come before the per-id
// entry is touched so a concurrent read cannot cache the old row.
func (s *RestaurantService) afterWrite(ctx context.Context, action string, id uuid.UUID, response *restaurantDto.RestaurantResponse) {
	s.cache.InvalidateLists(ctx)
	if response != nil {
		s.cache.PutOne(ctx, response)
	} else {
		s.cache.InvalidateOne(ctx, id)
	}

	event := broker.Event{
		Entity:     constants.EventEntityRestaurant,
		Action:     action,
		ResourceID: id.String(),
		Timestamp:  time.Now().UTC(),
	}
	if response != nil {
		event.Data = response
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("RestaurantService:Publish", "topic", event.Topic(), "id", id, "error", err)
	}

	if err := s.enqueuer.Enqueue(ctx, tasks.NewCacheWarmUpTask()); err != nil {
		logger.Warn("RestaurantService:EnqueueWarmUp", "error", err)
	}
}
