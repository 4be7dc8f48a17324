package lights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lifxbridge/internal/coordinator"
	"github.com/wheelibin/lifxbridge/internal/lifx"
	"github.com/wheelibin/lifxbridge/internal/lights"
)

type stubCoordinator struct {
	stubSource
	listeners []func(coordinator.Update)
}

func (s *stubCoordinator) Lights() map[string]lifx.Light {
	return s.lights
}

func (s *stubCoordinator) AddListener(listener func(coordinator.Update)) {
	s.listeners = append(s.listeners, listener)
}

func (s *stubCoordinator) push(update coordinator.Update) {
	for _, listener := range s.listeners {
		listener(update)
	}
}

func Test_LightService(t *testing.T) {

	t.Run("creates entities for the initial lights", func(t *testing.T) {
		t.Parallel()

		coord := &stubCoordinator{stubSource: stubSource{lights: map[string]lifx.Light{
			"001": {ID: "001", Label: "Lounge"},
			"002": {ID: "002", Label: "Hall"},
		}}}

		service := lights.NewLightService(testLogger(), &mockStateSetter{}, coord)

		all := service.All()
		require.Len(t, all, 2)
		// sorted by label
		assert.Equal(t, "002", all[0].ID())
		assert.Equal(t, "001", all[1].ID())
	})

	t.Run("adds entities for lights discovered on later refreshes", func(t *testing.T) {
		t.Parallel()

		coord := &stubCoordinator{stubSource: stubSource{lights: map[string]lifx.Light{
			"001": {ID: "001", Label: "Lounge"},
		}}}
		service := lights.NewLightService(testLogger(), &mockStateSetter{}, coord)
		require.Len(t, service.All(), 1)

		coord.lights["002"] = lifx.Light{ID: "002", Label: "Hall"}
		coord.push(coordinator.Update{Lights: coord.lights})

		all := service.All()
		require.Len(t, all, 2)
		_, ok := service.Get("002")
		assert.True(t, ok)
	})

	t.Run("failed refresh updates add nothing", func(t *testing.T) {
		t.Parallel()

		coord := &stubCoordinator{stubSource: stubSource{lights: map[string]lifx.Light{
			"001": {ID: "001", Label: "Lounge"},
		}}}
		service := lights.NewLightService(testLogger(), &mockStateSetter{}, coord)

		coord.push(coordinator.Update{
			Lights: map[string]lifx.Light{"001": {ID: "001"}, "003": {ID: "003"}},
			Err:    &lifx.APIError{StatusCode: 500},
		})

		assert.Len(t, service.All(), 1)
	})

	t.Run("a light dropped by the API keeps its entity but becomes unavailable", func(t *testing.T) {
		t.Parallel()

		coord := &stubCoordinator{stubSource: stubSource{lights: map[string]lifx.Light{
			"001": {ID: "001", Label: "Lounge", Connected: true},
		}}}
		service := lights.NewLightService(testLogger(), &mockStateSetter{}, coord)

		entity, ok := service.Get("001")
		require.True(t, ok)
		assert.True(t, entity.Available())

		delete(coord.lights, "001")
		coord.push(coordinator.Update{Lights: coord.lights})

		entity, ok = service.Get("001")
		require.True(t, ok)
		assert.False(t, entity.Available())
	})
}
