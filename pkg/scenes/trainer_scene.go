package scenes

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/reflex/pkg/config"
	"github.com/decker502/reflex/pkg/game"
	"github.com/decker502/reflex/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	// Target colors by highlight state.
	colorNeutral     = color.RGBA{R: 0x33, G: 0x66, B: 0xCC, A: 0xFF} // blue
	colorActive      = color.RGBA{R: 0xE0, G: 0x20, B: 0x20, A: 0xFF} // red
	colorPreSelected = color.RGBA{R: 0xE8, G: 0xD0, B: 0x20, A: 0xFF} // yellow
)

// TrainerScene is the single gameplay scene: it renders the target field,
// polls pointer input every frame, routes clicks into the session recorder
// and advances the retarget scheduler.
//
// TrainerScene 同时实现 game.Highlighter 和 game.PointerResolver，
// 场景自身就是目标高亮与命中检测的视图层。
type TrainerScene struct {
	cfg      *config.TrainerConfig
	state    *game.SessionState
	registry *game.TargetRegistry

	scheduler *game.RetargetScheduler
	hitTester *game.HitTester
	recorder  *game.SessionRecorder

	settingsManager *game.SettingsManager
	statsManager    *game.StatsManager
	audioManager    *game.AudioManager

	sessionID string
	reportDir string

	quitRequested bool
	saved         bool
}

// NewTrainerScene creates the gameplay scene from a validated config.
// The rng drives both target selection and the session ID; callers pass a
// time-seeded source in production and a fixed seed in tests.
func NewTrainerScene(cfg *config.TrainerConfig, sm *game.SettingsManager, stm *game.StatsManager, am *game.AudioManager, reportDir string, rng *rand.Rand) (*TrainerScene, error) {
	scene := &TrainerScene{
		cfg:             cfg,
		state:           &game.SessionState{},
		settingsManager: sm,
		statsManager:    stm,
		audioManager:    am,
		reportDir:       reportDir,
	}

	registry := game.NewTargetRegistry(cfg, scene)
	scene.registry = registry

	scheduler, err := game.NewRetargetScheduler(registry, scene.state, cfg.RetargetInterval, rng)
	if err != nil {
		return nil, err
	}
	scene.scheduler = scheduler

	scene.hitTester = game.NewHitTester(scene.state, scene)
	scene.recorder = game.NewSessionRecorder(scene.state, time.Now())
	scene.recorder.RecordFirstActivation(time.Now())
	scene.sessionID = game.MakeSessionID(game.SessionIDLength, rng)

	log.Printf("[TrainerScene] Session %s started with %d targets", scene.sessionID, registry.Count())
	return scene, nil
}

// SetHighlight implements game.Highlighter. The registry already updated the
// target's state; the scene only needs it for logging since Draw reads the
// state directly each frame.
func (s *TrainerScene) SetHighlight(index int, state game.HighlightState) {
	log.Printf("[TrainerScene] Target %d -> %s", index, state)
}

// ResolvePointerHit implements game.PointerResolver with a circle hit test
// against the target at the given index.
func (s *TrainerScene) ResolvePointerHit(x, y float64, index int) (int, bool) {
	t, err := s.registry.Get(index)
	if err != nil {
		return -1, false
	}
	if t.Contains(x, y) {
		return index, true
	}
	return -1, false
}

// Update advances the scene by deltaTime seconds.
//
// 每帧顺序严格固定：先采样指针并做悬停检测，再处理点击，最后推进调度器。
// 这样点击记录永远基于点击发生那一刻的活动目标，而不是本帧换位后的目标。
func (s *TrainerScene) Update(deltaTime float64) {
	pointer := utils.GetPointerState(s.cfg.Window.Width, s.cfg.Window.Height)

	s.hitTester.Test(game.PointerSample{
		X:     float64(pointer.X),
		Y:     float64(pointer.Y),
		Valid: pointer.Valid,
	})

	if pointer.JustPressed {
		event := s.recorder.OnClick(time.Now())
		if s.audioManager != nil {
			s.audioManager.PlayClick()
		}
		log.Printf("[TrainerScene] %s", event.Kind)
	}

	s.scheduler.Advance(deltaTime)

	if utils.IsQuitJustPressed() {
		s.quitRequested = true
	}
}

// Draw renders the target field and the control hints.
func (s *TrainerScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for i := 0; i < s.registry.Count(); i++ {
		t, err := s.registry.Get(i)
		if err != nil {
			continue
		}
		var c color.RGBA
		switch t.State {
		case game.HighlightActive:
			c = colorActive
		case game.HighlightPreSelected:
			c = colorPreSelected
		default:
			c = colorNeutral
		}
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(t.Radius), c, true)
	}

	ebitenutil.DebugPrintAt(screen, "Reflex Trainer", 8, 4)
	ebitenutil.DebugPrintAt(screen, "[Left Click]: On Red Dot", 8, 20)
	ebitenutil.DebugPrintAt(screen, "ESC: Quit", 8, 36)
}

// QuitRequested implements game.QuitRequester: it reports whether the player
// pressed Escape this session.
func (s *TrainerScene) QuitRequested() bool {
	return s.quitRequested
}

// SaveOnExit writes the session report and persists lifetime stats.
// It is idempotent: the app calls it both on Escape and on window close,
// and only the first call does work.
func (s *TrainerScene) SaveOnExit() bool {
	if s.saved {
		return true
	}
	s.saved = true

	ok := true
	events := s.recorder.Events()

	path, err := game.WriteReport(s.reportDir, s.sessionID, events)
	if err != nil {
		log.Printf("[TrainerScene] Failed to write report: %v", err)
		ok = false
	} else {
		log.Printf("[TrainerScene] Report written to %s (%d events)", path, len(events))
	}

	if s.statsManager != nil {
		s.statsManager.RecordSession(events)
		if err := s.statsManager.Save(); err != nil {
			log.Printf("[TrainerScene] Failed to save stats: %v", err)
			ok = false
		}
	}

	if s.settingsManager != nil {
		if err := s.settingsManager.Save(); err != nil {
			log.Printf("[TrainerScene] Failed to save settings: %v", err)
			ok = false
		}
	}
	return ok
}

// Events exposes the recorded session events, mainly for tests and the
// final-screen summary.
func (s *TrainerScene) Events() []game.InteractionEvent {
	return s.recorder.Events()
}

// SessionID returns the random identifier embedded in the report file name.
func (s *TrainerScene) SessionID() string {
	return s.sessionID
}
