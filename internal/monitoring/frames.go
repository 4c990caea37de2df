package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FrameMonitor tracks simulation throughput for a headless run. The driver
// records frames from its loop; a background goroutine reports periodically.
type FrameMonitor struct {
	mu            sync.RWMutex
	started       time.Time
	frames        int
	turns         int
	lastTurn      int
	peakEnemies   int
	slowFrames    int
	slowThreshold time.Duration
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	logger        zerolog.Logger
}

// NewFrameMonitor creates a monitor that reports every interval
func NewFrameMonitor(interval time.Duration, logger zerolog.Logger) *FrameMonitor {
	return &FrameMonitor{
		checkInterval: interval,
		slowThreshold: 50 * time.Millisecond,
		stopChan:      make(chan struct{}),
		logger:        logger.With().Str("component", "frame_monitor").Logger(),
	}
}

// Start begins periodic reporting
func (fm *FrameMonitor) Start() {
	fm.mu.Lock()
	fm.started = time.Now()
	fm.mu.Unlock()

	go fm.monitor()
	fm.logger.Debug().
		Dur("interval", fm.checkInterval).
		Int("goroutines", runtime.NumGoroutine()).
		Msg("Started frame monitoring")
}

// Stop ends periodic reporting. It is safe to call more than once.
func (fm *FrameMonitor) Stop() {
	fm.stopOnce.Do(func() { close(fm.stopChan) })
}

func (fm *FrameMonitor) monitor() {
	ticker := time.NewTicker(fm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fm.report()
		case <-fm.stopChan:
			return
		}
	}
}

// RecordFrame notes one processed frame, how long it took, the turn it ended
// on and how many enemies were alive
func (fm *FrameMonitor) RecordFrame(took time.Duration, turn, enemies int) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	fm.frames++
	if turn != fm.lastTurn {
		fm.turns += turn - fm.lastTurn
		fm.lastTurn = turn
	}
	if enemies > fm.peakEnemies {
		fm.peakEnemies = enemies
	}
	if took > fm.slowThreshold {
		fm.slowFrames++
	}
}

func (fm *FrameMonitor) report() {
	m := fm.GetMetrics()
	fm.logger.Info().
		Int("frames", m.Frames).
		Int("turns", m.Turns).
		Float64("frames_per_sec", m.FramesPerSecond).
		Int("peak_enemies", m.PeakEnemies).
		Int("slow_frames", m.SlowFrames).
		Int("goroutines", m.Goroutines).
		Msg("Simulation metrics")

	if m.SlowFrames > 0 {
		fm.logger.Warn().
			Int("slow_frames", m.SlowFrames).
			Dur("threshold", fm.slowThreshold).
			Msg("Frames exceeded the time budget")
	}
}

// GetMetrics returns the current throughput numbers
func (fm *FrameMonitor) GetMetrics() FrameMetrics {
	fm.mu.RLock()
	defer fm.mu.RUnlock()

	m := FrameMetrics{
		Frames:      fm.frames,
		Turns:       fm.turns,
		PeakEnemies: fm.peakEnemies,
		SlowFrames:  fm.slowFrames,
		Goroutines:  runtime.NumGoroutine(),
	}
	if !fm.started.IsZero() {
		if elapsed := time.Since(fm.started).Seconds(); elapsed > 0 {
			m.FramesPerSecond = float64(fm.frames) / elapsed
		}
	}
	return m
}

// FrameMetrics contains simulation throughput statistics
type FrameMetrics struct {
	Frames          int     `json:"frames"`
	Turns           int     `json:"turns"`
	FramesPerSecond float64 `json:"frames_per_second"`
	PeakEnemies     int     `json:"peak_enemies"`
	SlowFrames      int     `json:"slow_frames"`
	Goroutines      int     `json:"goroutines"`
}
