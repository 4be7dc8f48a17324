package lights

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lifxbridge/internal/constants"
	"github.com/wheelibin/lifxbridge/internal/lifx"
	"github.com/wheelibin/lifxbridge/internal/models"
)

type lightStateSetter interface {
	SetState(selector string, update lifx.StateUpdate) (*lifx.OperationResults, error)
	Breathe(selector string, opts lifx.EffectOptions) (*lifx.OperationResults, error)
	Pulse(selector string, opts lifx.EffectOptions) (*lifx.OperationResults, error)
}

type lightSource interface {
	Light(id string) (lifx.Light, bool)
	Stale() bool
	RequestRefresh() error
}

// LightEntity adapts one light record into host-style properties and
// translates host commands into API calls. It holds no light state of
// its own, everything is read through the coordinator on demand.
type LightEntity struct {
	logger *log.Logger
	api    lightStateSetter
	source lightSource
	id     string
}

func NewLightEntity(logger *log.Logger, api lightStateSetter, source lightSource, id string) *LightEntity {
	return &LightEntity{logger: logger, api: api, source: source, id: id}
}

func (e *LightEntity) ID() string {
	return e.id
}

func (e *LightEntity) selector() string {
	return fmt.Sprintf("id:%s", e.id)
}

func (e *LightEntity) light() (lifx.Light, bool) {
	return e.source.Light(e.id)
}

func (e *LightEntity) Label() string {
	light, ok := e.light()
	if !ok {
		return e.id
	}
	return light.Label
}

// Available means the last refresh succeeded, the light is still being
// reported by the API, and it is connected to the cloud.
func (e *LightEntity) Available() bool {
	light, ok := e.light()
	return !e.source.Stale() && ok && light.Connected
}

func (e *LightEntity) IsOn() bool {
	light, ok := e.light()
	return ok && light.IsOn()
}

// Brightness in the host scale (0-255).
func (e *LightEntity) Brightness() int {
	light, ok := e.light()
	if !ok {
		return 0
	}
	return int(math.Round(light.Brightness * 255))
}

func (e *LightEntity) ColorMode() models.ColorMode {
	light, ok := e.light()
	if !ok {
		return models.ColorModeBrightness
	}

	if light.SupportsColor() && light.Saturation() > 0 {
		return models.ColorModeHS
	}
	if light.SupportsTemperature() {
		return models.ColorModeColorTemp
	}
	return models.ColorModeBrightness
}

func (e *LightEntity) SupportedColorModes() []models.ColorMode {
	light, ok := e.light()
	if !ok {
		return []models.ColorMode{models.ColorModeBrightness}
	}

	modes := []models.ColorMode{}
	if light.SupportsColor() {
		modes = append(modes, models.ColorModeHS)
	}
	if light.SupportsTemperature() {
		modes = append(modes, models.ColorModeColorTemp)
	}
	if len(modes) == 0 {
		modes = append(modes, models.ColorModeBrightness)
	}
	return modes
}

// HSColor returns hue (0-360) and saturation in the host scale (0-100).
func (e *LightEntity) HSColor() (float64, float64) {
	light, ok := e.light()
	if !ok {
		return 0, 0
	}
	return light.Hue(), light.Saturation() * 100
}

func (e *LightEntity) ColorTempKelvin() int {
	light, ok := e.light()
	if !ok {
		return constants.DefaultKelvin
	}
	return light.Kelvin()
}

func (e *LightEntity) MinKelvin() int {
	light, ok := e.light()
	if !ok {
		return constants.DefaultMinKelvin
	}
	return light.MinKelvin()
}

func (e *LightEntity) MaxKelvin() int {
	light, ok := e.light()
	if !ok {
		return constants.DefaultMaxKelvin
	}
	return light.MaxKelvin()
}

func (e *LightEntity) Effects() []string {
	return []string{models.EffectBreathe, models.EffectPulse}
}

func (e *LightEntity) DeviceInfo() models.DeviceInfo {
	info := models.DeviceInfo{
		Identifiers:  []string{fmt.Sprintf("lifxbridge:%s", e.id)},
		Manufacturer: "LIFX",
		Model:        "Unknown",
	}

	light, ok := e.light()
	if !ok {
		return info
	}

	info.Name = light.Label
	if light.Product.Name != "" {
		info.Model = light.Product.Name
	}
	info.SuggestedArea = light.Group.Name
	return info
}

// HS is a colour in the host scale: hue 0-360, saturation 0-100.
type HS struct {
	Hue        float64
	Saturation float64
}

// TurnOnOptions are the optional parts of a turn-on command. HS takes
// precedence over Kelvin when both are supplied.
type TurnOnOptions struct {
	Effect     string
	HS         *HS
	Kelvin     *int
	Brightness *int // host scale, 0-255
	Transition *float64
}

func (e *LightEntity) TurnOn(opts TurnOnOptions) error {

	// an effect request short-circuits: no state call is made
	switch opts.Effect {
	case models.EffectBreathe:
		effect := lifx.NewEffectOptions(constants.EffectColor)
		effect.Period = constants.BreathePeriodSeconds
		effect.Cycles = constants.BreatheCycles
		if _, err := e.api.Breathe(e.selector(), effect); err != nil {
			return fmt.Errorf("error starting breathe effect on light (%s): %w", e.id, err)
		}
		return nil
	case models.EffectPulse:
		effect := lifx.NewEffectOptions(constants.EffectColor)
		effect.Period = constants.PulsePeriodSeconds
		effect.Cycles = constants.PulseCycles
		if _, err := e.api.Pulse(e.selector(), effect); err != nil {
			return fmt.Errorf("error starting pulse effect on light (%s): %w", e.id, err)
		}
		return nil
	}

	update := lifx.StateUpdate{
		Power:    lo.ToPtr(constants.PowerOn),
		Duration: e.transition(opts.Transition),
	}

	if opts.HS != nil {
		// saturation converts back to the vendor scale
		update.Color = lo.ToPtr(fmt.Sprintf("hue:%g saturation:%g", opts.HS.Hue, opts.HS.Saturation/100))
	} else if opts.Kelvin != nil {
		update.Color = lo.ToPtr(fmt.Sprintf("kelvin:%d", *opts.Kelvin))
	}

	if opts.Brightness != nil {
		update.Brightness = lo.ToPtr(float64(*opts.Brightness) / 255)
	}

	if _, err := e.api.SetState(e.selector(), update); err != nil {
		return fmt.Errorf("error turning on light (%s): %w", e.id, err)
	}

	// resynchronise with whatever the cloud actually did
	return e.source.RequestRefresh()
}

func (e *LightEntity) TurnOff(transition *float64) error {
	update := lifx.StateUpdate{
		Power:    lo.ToPtr(constants.PowerOff),
		Duration: e.transition(transition),
	}

	if _, err := e.api.SetState(e.selector(), update); err != nil {
		return fmt.Errorf("error turning off light (%s): %w", e.id, err)
	}

	return e.source.RequestRefresh()
}

func (e *LightEntity) transition(transition *float64) float64 {
	if transition == nil {
		return constants.DefaultTransitionSeconds
	}
	return *transition
}
