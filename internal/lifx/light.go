package lifx

import (
	"encoding/json"

	"github.com/wheelibin/lifxbridge/internal/constants"
)

type Color struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Kelvin     int     `json:"kelvin"`
}

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Capabilities struct {
	HasColor             bool `json:"has_color"`
	HasVariableColorTemp bool `json:"has_variable_color_temp"`
	HasIR                bool `json:"has_ir"`
	HasMultizone         bool `json:"has_multizone"`
	MinKelvin            int  `json:"min_kelvin"`
	MaxKelvin            int  `json:"max_kelvin"`
}

func (c *Capabilities) UnmarshalJSON(data []byte) error {
	// kelvin bounds default rather than zero when the product omits them
	type alias Capabilities
	a := alias{
		MinKelvin: constants.DefaultMinKelvin,
		MaxKelvin: constants.DefaultMaxKelvin,
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Capabilities(a)
	return nil
}

type Product struct {
	Name         string        `json:"name"`
	Capabilities *Capabilities `json:"capabilities"`
}

// Light is a snapshot of one light as reported by the cloud API.
// It is only ever built by decoding an API response and is replaced
// wholesale on every refresh, never mutated.
type Light struct {
	ID               string  `json:"id"`
	UUID             string  `json:"uuid"`
	Label            string  `json:"label"`
	Connected        bool    `json:"connected"`
	Power            string  `json:"power"`
	Brightness       float64 `json:"brightness"`
	Color            *Color  `json:"color"`
	Group            Group   `json:"group"`
	Location         Group   `json:"location"`
	Product          Product `json:"product"`
	LastSeen         string  `json:"last_seen"`
	SecondsSinceSeen int     `json:"seconds_since_seen"`
}

func (l *Light) UnmarshalJSON(data []byte) error {
	type alias Light
	a := alias{Power: constants.PowerOff}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.UUID == "" {
		a.UUID = a.ID
	}
	*l = Light(a)
	return nil
}

func (l Light) IsOn() bool {
	return l.Power == constants.PowerOn
}

func (l Light) Hue() float64 {
	if l.Color == nil {
		return 0
	}
	return l.Color.Hue
}

// Saturation is in the vendor scale (0-1).
func (l Light) Saturation() float64 {
	if l.Color == nil {
		return 0
	}
	return l.Color.Saturation
}

func (l Light) Kelvin() int {
	if l.Color == nil {
		return constants.DefaultKelvin
	}
	return l.Color.Kelvin
}

func (l Light) SupportsColor() bool {
	return l.Product.Capabilities != nil && l.Product.Capabilities.HasColor
}

func (l Light) SupportsTemperature() bool {
	return l.Product.Capabilities != nil && l.Product.Capabilities.HasVariableColorTemp
}

func (l Light) MinKelvin() int {
	if l.Product.Capabilities == nil {
		return constants.DefaultMinKelvin
	}
	return l.Product.Capabilities.MinKelvin
}

func (l Light) MaxKelvin() int {
	if l.Product.Capabilities == nil {
		return constants.DefaultMaxKelvin
	}
	return l.Product.Capabilities.MaxKelvin
}
