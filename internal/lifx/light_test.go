package lifx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lifxbridge/internal/lifx"
)

func Test_LightDefaults(t *testing.T) {

	t.Run("minimal record: every absent field gets its default", func(t *testing.T) {
		t.Parallel()

		var light lifx.Light
		require.NoError(t, json.Unmarshal([]byte(`{"id":"abc123","label":"Lamp"}`), &light))

		assert.Equal(t, "abc123", light.ID)
		assert.Equal(t, "abc123", light.UUID, "uuid falls back to id")
		assert.Equal(t, "Lamp", light.Label)
		assert.False(t, light.Connected)
		assert.False(t, light.IsOn())
		assert.Equal(t, float64(0), light.Brightness)
		assert.Equal(t, float64(0), light.Hue())
		assert.Equal(t, float64(0), light.Saturation())
		assert.Equal(t, 3500, light.Kelvin())
		assert.False(t, light.SupportsColor())
		assert.False(t, light.SupportsTemperature())
		assert.Equal(t, 2500, light.MinKelvin())
		assert.Equal(t, 9000, light.MaxKelvin())
	})

	t.Run("empty capabilities: kelvin bounds still default", func(t *testing.T) {
		t.Parallel()

		var light lifx.Light
		require.NoError(t, json.Unmarshal([]byte(`{"id":"abc123","product":{"capabilities":{}}}`), &light))

		assert.False(t, light.SupportsColor())
		assert.False(t, light.SupportsTemperature())
		assert.Equal(t, 2500, light.MinKelvin())
		assert.Equal(t, 9000, light.MaxKelvin())
	})

	t.Run("capabilities with explicit bounds win over defaults", func(t *testing.T) {
		t.Parallel()

		var light lifx.Light
		data := `{"id":"abc123","product":{"capabilities":{"has_color":true,"min_kelvin":1500,"max_kelvin":4000}}}`
		require.NoError(t, json.Unmarshal([]byte(data), &light))

		assert.True(t, light.SupportsColor())
		assert.Equal(t, 1500, light.MinKelvin())
		assert.Equal(t, 4000, light.MaxKelvin())
	})

	t.Run("full record: accessors read the vendor values", func(t *testing.T) {
		t.Parallel()

		data := `{
      "id": "d073d55b6334",
      "uuid": "026f2b5d-7a41-4d1a-8c6f-1e6a3a0d1b11",
      "label": "Kitchen",
      "connected": true,
      "power": "on",
      "brightness": 0.8,
      "color": {"hue": 120, "saturation": 0.5, "kelvin": 3500},
      "group": {"id": "g1", "name": "Kitchen"},
      "location": {"id": "loc1", "name": "Home"},
      "product": {
        "name": "LIFX A19",
        "capabilities": {"has_color": true, "has_variable_color_temp": true, "min_kelvin": 2500, "max_kelvin": 9000}
      },
      "last_seen": "2023-05-04T12:00:00Z",
      "seconds_since_seen": 3
    }`

		var light lifx.Light
		require.NoError(t, json.Unmarshal([]byte(data), &light))

		assert.Equal(t, "026f2b5d-7a41-4d1a-8c6f-1e6a3a0d1b11", light.UUID)
		assert.True(t, light.Connected)
		assert.True(t, light.IsOn())
		assert.Equal(t, 0.8, light.Brightness)
		assert.Equal(t, float64(120), light.Hue())
		assert.Equal(t, 0.5, light.Saturation())
		assert.Equal(t, 3500, light.Kelvin())
		assert.Equal(t, "LIFX A19", light.Product.Name)
		assert.Equal(t, "Kitchen", light.Group.Name)
		assert.Equal(t, 3, light.SecondsSinceSeen)
	})
}
