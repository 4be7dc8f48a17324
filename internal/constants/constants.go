package constants

import "time"

const APIBaseURL = "https://api.lifx.com/v1"

const RequestTimeout = 10 * time.Second
const DefaultPollInterval = 30 * time.Second

// selector for every light on the account
const SelectorAll = "all"

const PowerOn = "on"
const PowerOff = "off"

const DefaultTransitionSeconds = 1.0

// defaults applied when a light omits colour/capability data
const DefaultKelvin = 3500
const DefaultMinKelvin = 2500
const DefaultMaxKelvin = 9000

// fixed parameters used when an effect is triggered from a turn-on command
const EffectColor = "white"
const BreathePeriodSeconds = 2.0
const BreatheCycles = 3.0
const PulsePeriodSeconds = 1.0
const PulseCycles = 3.0
