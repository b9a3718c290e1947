package impl

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"quest/config"
	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/domain/repository"
	"quest/internal/domain/service"
	"quest/internal/errors"
	"quest/internal/usecase"

	"go.uber.org/fx"
)

// HybridServiceParams holds dependencies for the hybrid service, injected by Fx
type HybridServiceParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Remote     service.RemoteClient
	Local      repository.LocalStore
	TxManager  repository.TransactionManager
	Fixture    service.FixtureProvider
	Publisher  service.EventPublisher
	Metrics    service.TierMetrics
	Replicator *Replicator
}

type hybridService struct {
	remote      service.RemoteClient
	local       repository.LocalStore
	txManager   repository.TransactionManager
	fixture     service.FixtureProvider
	publisher   service.EventPublisher
	metrics     service.TierMetrics
	replicator  *Replicator
	logger      *slog.Logger
	syncTimeout time.Duration
	now         func() time.Time

	syncMu   sync.Mutex
	lastSync atomic.Pointer[time.Time]
}

// NewHybridService creates the tiered data access service
func NewHybridService(params HybridServiceParams) usecase.HybridUsecase {
	return newHybridService(params)
}

func newHybridService(params HybridServiceParams) *hybridService {
	return &hybridService{
		remote:      params.Remote,
		local:       params.Local,
		txManager:   params.TxManager,
		fixture:     params.Fixture,
		publisher:   params.Publisher,
		metrics:     params.Metrics,
		replicator:  params.Replicator,
		logger:      params.Logger,
		syncTimeout: params.Config.Sync.Timeout,
		now:         time.Now,
	}
}

// --- Adventurers ---

func (s *hybridService) FetchAdventurers(ctx context.Context, filter entity.Filter) (*usecase.Result[[]*entity.Adventurer], error) {
	return fetchTiered(ctx, s, readTiers[[]*entity.Adventurer]{
		kind:   entity.KindAdventurer,
		remote: remoteList[entity.Adventurer](s, endpointAdventurers, filter),
		local: func(ctx context.Context) ([]*entity.Adventurer, error) {
			return s.local.FindAdventurers(ctx, filter)
		},
		fixture: func() []*entity.Adventurer { return s.fixture.Adventurers(filter) },
		found:   nonEmpty[entity.Adventurer],
		mirror:  mirrorList(s, entity.KindAdventurer, upsertAdventurers),
	})
}

func (s *hybridService) FetchAdventurer(ctx context.Context, id int64) (*usecase.Result[*entity.Adventurer], error) {
	filter := entity.ByAdventurer(id)

	result, err := s.FetchAdventurers(ctx, filter)
	if err != nil {
		return nil, err
	}

	return firstMatch(result, filter, domainerrors.ErrAdventurerNotFound)
}

// FetchAdventurerByUsername looks an adventurer up by exact username, e.g. for sign-in.
func (s *hybridService) FetchAdventurerByUsername(ctx context.Context, username string) (*usecase.Result[*entity.Adventurer], error) {
	filter := entity.Filter{Username: username}

	result, err := s.FetchAdventurers(ctx, filter)
	if err != nil {
		return nil, err
	}

	return firstMatch(result, filter, domainerrors.ErrAdventurerNotFound)
}

func (s *hybridService) CreateAdventurer(ctx context.Context, input *usecase.CreateAdventurerInput) (*usecase.Result[*entity.Adventurer], error) {
	return writeTiered(ctx, s, writeTiers[*entity.Adventurer]{
		kind:   entity.KindAdventurer,
		remote: remoteWrite[entity.Adventurer](s, http.MethodPost, endpointAdventurers, input),
		local: localCreate(s.local.CreateAdventurer, func() *entity.Adventurer {
			return &entity.Adventurer{
				Username:       input.Username,
				Password:       input.Password,
				ProfilePicture: input.ProfilePicture,
			}
		}),
		mirror: mirrorOne(s, entity.KindAdventurer, upsertAdventurers),
	})
}

// UpdateAdventurer changes the set fields of an adventurer. The local fallback reads,
// merges and writes in one transaction.
func (s *hybridService) UpdateAdventurer(ctx context.Context, id int64, input *usecase.UpdateAdventurerInput) (*usecase.Result[*entity.Adventurer], error) {
	return writeTiered(ctx, s, writeTiers[*entity.Adventurer]{
		kind:   entity.KindAdventurer,
		remote: remoteWrite[entity.Adventurer](s, http.MethodPut, adventurerEndpoint(id), input),
		local: func(ctx context.Context) (*entity.Adventurer, error) {
			var updated *entity.Adventurer
			err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
				repo := factory.NewAdventurerRepository()

				adventurer, err := repo.FindAdventurerByID(ctx, id)
				if err != nil {
					if errors.Is(err, repository.ErrRecordNotFound) {
						return domainerrors.ErrAdventurerNotFound
					}

					return err
				}

				input.Apply(adventurer)
				if err := repo.UpdateAdventurer(ctx, adventurer); err != nil {
					return err
				}
				updated = adventurer

				return nil
			})
			if err != nil {
				return nil, err
			}

			return updated, nil
		},
		mirror: mirrorOne(s, entity.KindAdventurer, upsertAdventurers),
	})
}

// --- Regions ---

func (s *hybridService) FetchRegions(ctx context.Context, filter entity.Filter) (*usecase.Result[[]*entity.Region], error) {
	return fetchTiered(ctx, s, readTiers[[]*entity.Region]{
		kind:   entity.KindRegion,
		remote: remoteList[entity.Region](s, endpointRegions, filter),
		local: func(ctx context.Context) ([]*entity.Region, error) {
			return s.local.FindRegions(ctx, filter)
		},
		fixture: func() []*entity.Region { return s.fixture.Regions(filter) },
		found:   nonEmpty[entity.Region],
		mirror:  mirrorList(s, entity.KindRegion, upsertRegions),
	})
}

func (s *hybridService) FetchRegion(ctx context.Context, id int64) (*usecase.Result[*entity.Region], error) {
	filter := entity.ByRegion(id)

	result, err := s.FetchRegions(ctx, filter)
	if err != nil {
		return nil, err
	}

	return firstMatch(result, filter, domainerrors.ErrNotFound)
}

func (s *hybridService) CreateRegion(ctx context.Context, input *usecase.CreateRegionInput) (*usecase.Result[*entity.Region], error) {
	return writeTiered(ctx, s, writeTiers[*entity.Region]{
		kind:   entity.KindRegion,
		remote: remoteWrite[entity.Region](s, http.MethodPost, endpointRegions, input),
		local: localCreate(s.local.CreateRegion, func() *entity.Region {
			return &entity.Region{
				AdventurerID: input.AdventurerID,
				Name:         input.Name,
				Description:  input.Description,
				Center:       input.Center,
				Radius:       input.Radius,
			}
		}),
		mirror: mirrorOne(s, entity.KindRegion, upsertRegions),
	})
}

// LocateRegions narrows the full region list to the regions containing point.
func (s *hybridService) LocateRegions(ctx context.Context, point entity.Point) (*usecase.Result[[]*entity.Region], error) {
	result, err := s.FetchRegions(ctx, entity.Filter{})
	if err != nil {
		return nil, err
	}

	containing := make([]*entity.Region, 0, len(result.Data))
	for _, region := range result.Data {
		if region.Contains(point) {
			containing = append(containing, region)
		}
	}

	return &usecase.Result[[]*entity.Region]{Data: containing, Source: result.Source}, nil
}

// --- Landmarks ---

func (s *hybridService) FetchLandmarks(ctx context.Context, filter entity.Filter) (*usecase.Result[[]*entity.Landmark], error) {
	return fetchTiered(ctx, s, readTiers[[]*entity.Landmark]{
		kind:   entity.KindLandmark,
		remote: remoteList[entity.Landmark](s, endpointLandmarks, filter),
		local: func(ctx context.Context) ([]*entity.Landmark, error) {
			return s.local.FindLandmarks(ctx, filter)
		},
		fixture: func() []*entity.Landmark { return s.fixture.Landmarks(filter) },
		found:   nonEmpty[entity.Landmark],
		mirror:  mirrorList(s, entity.KindLandmark, upsertLandmarks),
	})
}

func (s *hybridService) CreateLandmark(ctx context.Context, input *usecase.CreateLandmarkInput) (*usecase.Result[*entity.Landmark], error) {
	return writeTiered(ctx, s, writeTiers[*entity.Landmark]{
		kind:   entity.KindLandmark,
		remote: remoteWrite[entity.Landmark](s, http.MethodPost, endpointLandmarks, input),
		local: localCreate(s.local.CreateLandmark, func() *entity.Landmark {
			return &entity.Landmark{
				RegionID: input.RegionID,
				Name:     input.Name,
				Location: input.Location,
			}
		}),
		mirror: mirrorOne(s, entity.KindLandmark, upsertLandmarks),
	})
}

// --- Adventures ---

func (s *hybridService) FetchAdventures(ctx context.Context, filter entity.Filter) (*usecase.Result[[]*entity.Adventure], error) {
	return fetchTiered(ctx, s, readTiers[[]*entity.Adventure]{
		kind:   entity.KindAdventure,
		remote: remoteList[entity.Adventure](s, endpointAdventures, filter),
		local: func(ctx context.Context) ([]*entity.Adventure, error) {
			return s.local.FindAdventures(ctx, filter)
		},
		fixture: func() []*entity.Adventure { return s.fixture.Adventures(filter) },
		found:   nonEmpty[entity.Adventure],
		mirror:  mirrorList(s, entity.KindAdventure, upsertAdventures),
	})
}

func (s *hybridService) FetchAdventure(ctx context.Context, id int64) (*usecase.Result[*entity.Adventure], error) {
	filter := entity.ByAdventure(id)

	result, err := s.FetchAdventures(ctx, filter)
	if err != nil {
		return nil, err
	}

	return firstMatch(result, filter, domainerrors.ErrNotFound)
}

func (s *hybridService) CreateAdventure(ctx context.Context, input *usecase.CreateAdventureInput) (*usecase.Result[*entity.Adventure], error) {
	return writeTiered(ctx, s, writeTiers[*entity.Adventure]{
		kind:   entity.KindAdventure,
		remote: remoteWrite[entity.Adventure](s, http.MethodPost, endpointAdventures, input),
		local: localCreate(s.local.CreateAdventure, func() *entity.Adventure {
			return &entity.Adventure{
				AdventurerID: input.AdventurerID,
				RegionID:     input.RegionID,
				Name:         input.Name,
				TokenCount:   input.TokenCount,
				Location:     input.Location,
			}
		}),
		mirror: mirrorOne(s, entity.KindAdventure, upsertAdventures),
	})
}

// --- Tokens ---

// FetchTokens returns remote tokens as sent; the local and fixture tiers order them by
// collection order, then id.
func (s *hybridService) FetchTokens(ctx context.Context, filter entity.Filter) (*usecase.Result[[]*entity.Token], error) {
	return fetchTiered(ctx, s, readTiers[[]*entity.Token]{
		kind:   entity.KindToken,
		remote: remoteList[entity.Token](s, endpointTokens, filter),
		local: func(ctx context.Context) ([]*entity.Token, error) {
			return s.local.FindTokens(ctx, filter)
		},
		fixture: func() []*entity.Token { return s.fixture.Tokens(filter) },
		found:   nonEmpty[entity.Token],
		mirror:  mirrorList(s, entity.KindToken, upsertTokens),
	})
}

func (s *hybridService) CreateToken(ctx context.Context, input *usecase.CreateTokenInput) (*usecase.Result[*entity.Token], error) {
	return writeTiered(ctx, s, writeTiers[*entity.Token]{
		kind:   entity.KindToken,
		remote: remoteWrite[entity.Token](s, http.MethodPost, endpointTokens, input),
		local: localCreate(s.local.CreateToken, func() *entity.Token {
			return &entity.Token{
				AdventureID: input.AdventureID,
				Location:    input.Location,
				Hint:        input.Hint,
				TokenOrder:  input.TokenOrder,
			}
		}),
		mirror: mirrorOne(s, entity.KindToken, upsertTokens),
	})
}

// --- Completed adventures ---

func (s *hybridService) FetchCompletedAdventures(ctx context.Context, filter entity.Filter) (*usecase.Result[[]*entity.CompletedAdventure], error) {
	return fetchTiered(ctx, s, readTiers[[]*entity.CompletedAdventure]{
		kind:   entity.KindCompletedAdventure,
		remote: remoteList[entity.CompletedAdventure](s, endpointCompletedAdventures, filter),
		local: func(ctx context.Context) ([]*entity.CompletedAdventure, error) {
			return s.local.FindCompletedAdventures(ctx, filter)
		},
		fixture: func() []*entity.CompletedAdventure { return s.fixture.CompletedAdventures(filter) },
		found:   nonEmpty[entity.CompletedAdventure],
		mirror:  mirrorList(s, entity.KindCompletedAdventure, upsertCompletedAdventures),
	})
}

// CreateCompletedAdventure records a completion, stamping the current date and time when unset.
func (s *hybridService) CreateCompletedAdventure(ctx context.Context, input *usecase.CreateCompletedAdventureInput) (*usecase.Result[*entity.CompletedAdventure], error) {
	stamped := *input
	now := s.now()
	if stamped.CompletionDate == "" {
		stamped.CompletionDate = now.Format(entity.CompletionDateLayout)
	}
	if stamped.CompletionTime == "" {
		stamped.CompletionTime = now.Format(entity.CompletionTimeLayout)
	}

	return writeTiered(ctx, s, writeTiers[*entity.CompletedAdventure]{
		kind:   entity.KindCompletedAdventure,
		remote: remoteWrite[entity.CompletedAdventure](s, http.MethodPost, endpointCompletedAdventures, &stamped),
		local: localCreate(s.local.CreateCompletedAdventure, func() *entity.CompletedAdventure {
			return &entity.CompletedAdventure{
				AdventurerID:   stamped.AdventurerID,
				AdventureID:    stamped.AdventureID,
				CompletionDate: stamped.CompletionDate,
				CompletionTime: stamped.CompletionTime,
			}
		}),
		mirror: mirrorOne(s, entity.KindCompletedAdventure, upsertCompletedAdventures),
	})
}

// --- Tier helpers ---

type matcher[T any] interface {
	*T
	Matches(entity.Filter) bool
}

func nonEmpty[T any](items []*T) bool {
	return len(items) > 0
}

// firstMatch picks the first row satisfying filter, keeping the source of the list.
func firstMatch[T any, P matcher[T]](result *usecase.Result[[]*T], filter entity.Filter, notFound *domainerrors.BaseError) (*usecase.Result[*T], error) {
	for _, item := range result.Data {
		if P(item).Matches(filter) {
			return &usecase.Result[*T]{Data: item, Source: result.Source}, nil
		}
	}

	return nil, notFound
}

func remoteList[T any](s *hybridService, endpoint string, filter entity.Filter) func(context.Context) ([]*T, error) {
	return func(ctx context.Context) ([]*T, error) {
		var rows []*T
		if err := s.remote.Call(ctx, http.MethodGet, endpoint, filterQuery(filter), nil, &rows); err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []*T{}
		}

		return rows, nil
	}
}

func remoteWrite[T any](s *hybridService, method, endpoint string, body any) func(context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		out := new(T)
		if err := s.remote.Call(ctx, method, endpoint, nil, body, out); err != nil {
			return nil, err
		}

		return out, nil
	}
}

func localCreate[T any](create func(context.Context, *T) error, build func() *T) func(context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		item := build()
		if err := create(ctx, item); err != nil {
			return nil, err
		}

		return item, nil
	}
}
