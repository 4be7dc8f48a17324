package lights

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lifxbridge/internal/coordinator"
	"github.com/wheelibin/lifxbridge/internal/lifx"
)

type lightCoordinator interface {
	lightSource
	Lights() map[string]lifx.Light
	AddListener(listener func(coordinator.Update))
}

// LightService tracks which lights are known and creates an entity for
// each newly discovered one. An entity is kept once created; a light
// the API stops reporting just becomes unavailable.
type LightService struct {
	logger      *log.Logger
	api         lightStateSetter
	coordinator lightCoordinator

	mu       sync.Mutex
	entities map[string]*LightEntity
}

func NewLightService(logger *log.Logger, api lightStateSetter, coord lightCoordinator) *LightService {
	s := &LightService{
		logger:      logger,
		api:         api,
		coordinator: coord,
		entities:    map[string]*LightEntity{},
	}

	s.addNewLights(coord.Lights())
	coord.AddListener(s.handleUpdate)

	return s
}

func (s *LightService) handleUpdate(update coordinator.Update) {
	if update.Err != nil {
		return
	}
	s.addNewLights(update.Lights)
}

func (s *LightService) addNewLights(lights map[string]lifx.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, light := range lights {
		if _, known := s.entities[id]; known {
			continue
		}
		s.logger.Info("discovered light", "id", id, "label", light.Label)
		s.entities[id] = NewLightEntity(s.logger, s.api, s.coordinator, id)
	}
}

func (s *LightService) Get(id string) (*LightEntity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, ok := s.entities[id]
	return entity, ok
}

// All returns the known entities sorted by label for stable display.
func (s *LightService) All() []*LightEntity {
	s.mu.Lock()
	entities := lo.Values(s.entities)
	s.mu.Unlock()

	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Label() == entities[j].Label() {
			return entities[i].ID() < entities[j].ID()
		}
		return entities[i].Label() < entities[j].Label()
	})
	return entities
}
