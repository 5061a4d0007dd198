package mill

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
)

const (
	// Degrees per second, one full day every 64 seconds.
	SUN_SPEED float32 = -360.0 / 64.0
	// Sun pivot pitch at midday and midnight.
	SUN_MIDDAY    float32 = 270
	SUN_MIDNIGHT  float32 = 90
	SUN_INITIAL   float32 = 260
	SHADOW_SIZE   uint32  = 2048
	WINDOW_FALLOFF        = 0.4
)

var (
	sunlightColor0  = math.NewVec4(0.612, 0.365, 0.306, 1)
	sunlightColor1  = math.NewVec4(0.765, 0.573, 0.400, 1)
	moonlightColor0 = math.NewVec4(0.247, 0.384, 0.404, 1)
	moonlightColor1 = math.NewVec4(0.392, 0.537, 0.561, 1)
	windowColor     = math.NewVec4(1, 0.678, 0.384, 1)
)

// Shutters open in the morning and close in the afternoon.
const (
	shuttersOpenFrom  float32 = 0.30
	shuttersOpenTo    float32 = 0.35
	shuttersCloseFrom float32 = 0.60
	shuttersCloseTo   float32 = 0.70
)

/**
 * @brief The day/night cycle: the sun and moon pivots, the light colors and
 * the mill shutters.
 */
type sunlight struct {
	// Sun pivot pitch in degrees, in [0, 360].
	position float32
	animate  bool
	// Set by the midday and midnight keys, consumed by the next update.
	midday   bool
	midnight bool

	closedShutters bool

	sunPivot  *scene.Node
	moonPivot *scene.Node
	sun       *scene.Light
	moon      *scene.Light
	ambient   *scene.Light
	windows   []*scene.Light

	shuttersOpen  *scene.AnimationControl
	shuttersClose *scene.AnimationControl
}

func newSunlight(sc *scene.Scene, nodes *sceneNodes) (*sunlight, error) {
	s := &sunlight{
		position:       SUN_INITIAL,
		animate:        true,
		closedShutters: true,
		sunPivot:       nodes.root.AttachNewNode("sunlightPivot"),
		moonPivot:      nodes.root.AttachNewNode("moonlightPivot"),
		shuttersOpen:   sc.Animation("shutters-open"),
		shuttersClose:  sc.Animation("shutters-close"),
	}
	s.sun = scene.NewLight("sunlight", scene.LightDirectional, s.sunPivot)
	s.sun.Node.Position = math.NewVec3(0, 0, 100)
	s.moon = scene.NewLight("moonlight", scene.LightDirectional, s.moonPivot)
	s.moon.Node.Position = math.NewVec3(0, 0, 100)
	s.ambient = scene.NewLight("ambientLight", scene.LightAmbient, nil)

	lights := []*scene.Light{s.sun, s.moon, s.ambient}
	for i, position := range []math.Vec3{
		math.NewVec3(-0.9, 2.1, 3.2),
		math.NewVec3(1.6, 1.8, 2.6),
	} {
		w := scene.NewLight(windowLightName(i), scene.LightPoint, nodes.environment)
		w.Node.Position = position
		s.windows = append(s.windows, w)
		lights = append(lights, w)
	}
	for _, l := range lights {
		if err := sc.AddLight(l); err != nil {
			return nil, err
		}
	}
	s.update(0)
	return s, nil
}

func windowLightName(i int) string {
	return "windowLight" + string(rune('0'+i))
}

// Midday jumps the sun to its highest point.
func (s *sunlight) Midday() {
	s.position = SUN_MIDDAY
	s.midday = true
}

// Midnight jumps the sun to its lowest point.
func (s *sunlight) Midnight() {
	s.position = SUN_MIDNIGHT
	s.midnight = true
}

// Mix is 0 at midnight and 1 at midday.
func (s *sunlight) Mix() float32 {
	return 1 - (math.SinDeg(s.position)/2 + 0.5)
}

func (s *sunlight) update(deltaTime float64) {
	if s.animate && !s.midday && !s.midnight {
		s.position += SUN_SPEED * float32(deltaTime)
	}
	s.position = math.WrapDegrees(s.position)

	mix := s.Mix()
	sunColor := math.MixVec4(sunlightColor0, sunlightColor1, mix)
	moonColor := math.MixVec4(moonlightColor1, sunlightColor0, mix)
	s.ambient.SetColor(math.MixVec4(moonColor, sunColor, mix))

	sine := math.SinDeg(s.position)
	dayMagnitude := math.Clamp(-sine, 0, 1)
	nightMagnitude := math.Clamp(sine, 0, 1)
	setMagnitude(s.sun, sunColor, dayMagnitude, true)
	setMagnitude(s.moon, moonColor, nightMagnitude, true)
	windowMagnitude := math.Pow(nightMagnitude, WINDOW_FALLOFF)
	for _, w := range s.windows {
		setMagnitude(w, windowColor, windowMagnitude, false)
	}

	s.sunPivot.HPR[1] = s.position
	s.moonPivot.HPR[1] = s.position - 180

	// the latch guards the bands, the keys always replay
	switch {
	case s.midnight || (s.closedShutters && mix >= shuttersOpenFrom && mix <= shuttersOpenTo):
		s.shuttersOpen.Play()
		s.closedShutters = false
	case s.midday || (!s.closedShutters && mix >= shuttersCloseFrom && mix <= shuttersCloseTo):
		s.shuttersClose.Play()
		s.closedShutters = true
	}
	s.midday = false
	s.midnight = false
}

// setMagnitude scales a light, turning it and its shadow off at zero.
func setMagnitude(l *scene.Light, color math.Vec4, magnitude float32, shadows bool) {
	c := color.Mul(magnitude)
	c[3] = 1
	l.SetColor(c)
	l.Enabled = magnitude > 0
	l.SetShadowCaster(shadows && l.Enabled, SHADOW_SIZE)
}
