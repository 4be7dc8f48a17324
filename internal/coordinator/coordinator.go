package coordinator

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lifxbridge/internal/concurrency"
	"github.com/wheelibin/lifxbridge/internal/constants"
	"github.com/wheelibin/lifxbridge/internal/lifx"
)

type lifxAPI interface {
	ListLights(selector string) ([]lifx.Light, error)
}

// Update is what listeners receive after every refresh attempt. On a
// failed refresh Err is set and Lights is the previous (retained) map.
type Update struct {
	Lights map[string]lifx.Light
	Err    error
}

// Coordinator owns the shared id -> light map. It is refreshed wholesale
// on a fixed interval (or on demand) and is never patched incrementally;
// a light the API stops reporting simply disappears from the map.
type Coordinator struct {
	logger   *log.Logger
	api      lifxAPI
	interval time.Duration

	refreshGuard concurrency.SingleFlight

	mu        sync.RWMutex
	lights    map[string]lifx.Light
	stale     bool
	listeners []func(Update)
}

func New(logger *log.Logger, api lifxAPI, interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}
	return &Coordinator{
		logger:   logger,
		api:      api,
		interval: interval,
		lights:   map[string]lifx.Light{},
	}
}

// Initialise performs the mandatory first refresh. If it fails the
// coordinator is not usable and setup should be aborted.
func (c *Coordinator) Initialise() error {
	if err := c.RequestRefresh(); err != nil {
		return fmt.Errorf("initial light refresh failed: %w", err)
	}
	return nil
}

// Run polls until a value arrives on stopChannel.
func (c *Coordinator) Run(stopChannel chan bool) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopChannel:
			c.logger.Debug("coordinator stopping")
			return
		case <-ticker.C:
			// a failed poll degrades to stale, it never brings the loop down
			if err := c.RequestRefresh(); err != nil {
				c.logger.Error("light refresh failed", "err", err)
			}
		}
	}
}

// RequestRefresh refreshes the light map now. If a refresh is already in
// flight the caller waits for it and shares its result rather than
// issuing a duplicate API call.
func (c *Coordinator) RequestRefresh() error {
	return c.refreshGuard.Do(c.refresh)
}

func (c *Coordinator) refresh() error {

	lights, err := c.api.ListLights(constants.SelectorAll)
	if err != nil {
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		c.notifyListeners(Update{Lights: c.Lights(), Err: err})
		return err
	}

	byID := lo.KeyBy(lights, func(l lifx.Light) string { return l.ID })

	c.mu.Lock()
	c.lights = byID
	c.stale = false
	c.mu.Unlock()

	c.logger.Debug("refreshed lights", "count", len(byID))
	c.notifyListeners(Update{Lights: c.Lights()})

	return nil
}

func (c *Coordinator) notifyListeners(update Update) {
	c.mu.RLock()
	listeners := make([]func(Update), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, listener := range listeners {
		listener(update)
	}
}

// AddListener registers a callback invoked after every refresh attempt.
func (c *Coordinator) AddListener(listener func(Update)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Coordinator) Light(id string) (lifx.Light, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	light, ok := c.lights[id]
	return light, ok
}

// Lights returns a copy of the current map.
func (c *Coordinator) Lights() map[string]lifx.Light {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lights := make(map[string]lifx.Light, len(c.lights))
	for id, light := range c.lights {
		lights[id] = light
	}
	return lights
}

// Stale reports whether the most recent refresh attempt failed. The
// light map still holds the last successful snapshot.
func (c *Coordinator) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}
