// Package config holds the tunable protocol timers and defaults every
// ospfd component reads from, collected into a struct with documented
// defaults since a driver can run several Routers with different timings
// in the same process
// instead.
package config

import "time"

// Config holds every timer and default that drives a single Router
// instance. Zero-value fields are filled in by Default() defaults.
type Config struct {
	// HelloAddress is the all-routers multicast destination Hello packets
	// are sent to.
	HelloAddress string

	// HelloInterval is the period between Hello transmissions on an
	// interface.
	HelloInterval time.Duration

	// RouterDeadInterval bounds neighbor liveness detection. Per spec,
	// defaults to 4x HelloInterval.
	RouterDeadInterval time.Duration

	// LSURetransmitInterval is the fixed retry period for unacknowledged
	// LSAs in a neighbor's retransmission queue.
	LSURetransmitInterval time.Duration

	// MinLSArrival is the minimum interval between accepting successive
	// updates of the same LSA key, to prevent flooding storms.
	MinLSArrival time.Duration

	// LSRefreshTime is the interval at which a router re-originates its own
	// LSAs with a fresh sequence number, before MaxAge.
	LSRefreshTime time.Duration

	// MaxAge is the age (in seconds of age, not wall time) at which an LSA
	// is treated as withdrawn.
	MaxAge uint16

	// SpfDelay is the debounce delay between an LSDB change and the SPF run
	// it triggers.
	SpfDelay time.Duration

	// SpfHoldDown is the minimum interval between the end of one SPF run
	// and the start of the next.
	SpfHoldDown time.Duration

	// LeaderDebounce is how long a candidate must hold minimum-router-id
	// status in its area before assuming area-leadership.
	LeaderDebounce time.Duration

	// InitialHelloDelay delays the first Hello after Enable, to let
	// interface state settle (e.g. in tests that enable many routers at
	// once).
	InitialHelloDelay time.Duration

	// AreaMask is the subnet mask applied when computing area membership
	// from an interface's local address, mirroring the ns-3 original's
	// AreaMask attribute.
	AreaMask string

	// AutoSyncInterfaces polls the transport for interface up/down changes
	// instead of relying solely on push notifications.
	AutoSyncInterfaces bool

	// InterfaceSyncInterval is the poll period used when AutoSyncInterfaces
	// is enabled.
	InterfaceSyncInterval time.Duration

	// EnableAreaProxy turns on Area-LSA/L2-Summary origination and L2 SPF.
	// A router with this disabled never contends for area-leadership and
	// never floods those two LSA kinds.
	EnableAreaProxy bool

	// ThrottleInitialInterval and ThrottleMaxInterval bound the per-LSA-kind
	// re-origination throttle: the interval starts
	// at ThrottleInitialInterval and doubles on rapid re-triggers up to
	// ThrottleMaxInterval.
	ThrottleInitialInterval time.Duration
	ThrottleMaxInterval     time.Duration

	// DefaultMetric is used for interfaces whose metric was never
	// explicitly set.
	DefaultMetric uint16
}

// Default returns the baseline configuration ospfd ships with.
func Default() Config {
	return Config{
		HelloAddress:            "224.0.0.5",
		HelloInterval:           10 * time.Second,
		RouterDeadInterval:      40 * time.Second,
		LSURetransmitInterval:   5 * time.Second,
		MinLSArrival:            1 * time.Second,
		LSRefreshTime:           1800 * time.Second,
		MaxAge:                  3600,
		SpfDelay:                100 * time.Millisecond,
		SpfHoldDown:             1 * time.Second,
		LeaderDebounce:          20 * time.Second, // 2x default HelloInterval
		InitialHelloDelay:       0,
		AreaMask:                "255.255.255.255",
		AutoSyncInterfaces:      false,
		InterfaceSyncInterval:   1 * time.Second,
		EnableAreaProxy:         true,
		ThrottleInitialInterval: 1 * time.Second,
		ThrottleMaxInterval:     16 * time.Second,
		DefaultMetric:           1,
	}
}

// WithDefaults fills any zero-valued duration, string or numeric fields of
// c with the values from Default(), leaving explicitly-set fields untouched. Booleans
// have no "unset" state and are left as provided by the caller.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.HelloAddress == "" {
		c.HelloAddress = d.HelloAddress
	}
	if c.HelloInterval == 0 {
		c.HelloInterval = d.HelloInterval
	}
	if c.RouterDeadInterval == 0 {
		c.RouterDeadInterval = d.RouterDeadInterval
	}
	if c.LSURetransmitInterval == 0 {
		c.LSURetransmitInterval = d.LSURetransmitInterval
	}
	if c.MinLSArrival == 0 {
		c.MinLSArrival = d.MinLSArrival
	}
	if c.LSRefreshTime == 0 {
		c.LSRefreshTime = d.LSRefreshTime
	}
	if c.MaxAge == 0 {
		c.MaxAge = d.MaxAge
	}
	if c.SpfDelay == 0 {
		c.SpfDelay = d.SpfDelay
	}
	if c.SpfHoldDown == 0 {
		c.SpfHoldDown = d.SpfHoldDown
	}
	if c.LeaderDebounce == 0 {
		c.LeaderDebounce = d.LeaderDebounce
	}
	if c.AreaMask == "" {
		c.AreaMask = d.AreaMask
	}
	if c.InterfaceSyncInterval == 0 {
		c.InterfaceSyncInterval = d.InterfaceSyncInterval
	}
	if c.ThrottleInitialInterval == 0 {
		c.ThrottleInitialInterval = d.ThrottleInitialInterval
	}
	if c.ThrottleMaxInterval == 0 {
		c.ThrottleMaxInterval = d.ThrottleMaxInterval
	}
	if c.DefaultMetric == 0 {
		c.DefaultMetric = d.DefaultMetric
	}
	return c
}
