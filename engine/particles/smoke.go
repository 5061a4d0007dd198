package particles

import (
	"golang.org/x/exp/rand"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
)

/** @brief A cylinder around the emitter Z axis that spins particles inside it. */
type VortexConfig struct {
	Radius      float32
	Length      float32
	Coefficient float32
}

/** @brief Emitter, factory and force settings of a particle system. */
type Config struct {
	PoolSize int
	/** @brief Seconds between two births. */
	BirthRate    float64
	LitterSize   int
	LitterSpread int
	/** @brief Lifespans are drawn in [base, base + spread). */
	LifespanBase     float64
	LifespanSpread   float64
	Mass             float32
	TerminalVelocity float32
	LaunchVector     math.Vec3
	OffsetForce      math.Vec3
	LinearForce      math.Vec3
	JitterAmplitude  float32
	Vortex           VortexConfig
	Position         math.Vec3
	InitialColor     math.Vec3
	FinalColor       math.Vec3
	InitialScale     float32
	FinalScale       float32
	Seed             uint64
}

// SmokeConfig is the chimney smoke of the mill.
func SmokeConfig() Config {
	return Config{
		PoolSize:         75,
		BirthRate:        0.01,
		LitterSize:       1,
		LitterSpread:     2,
		LifespanBase:     0.1,
		LifespanSpread:   3,
		Mass:             1,
		TerminalVelocity: 400,
		LaunchVector:     math.NewVec3(0, 0.1, 0),
		OffsetForce:      math.NewVec3(0, 0, 2),
		LinearForce:      math.NewVec3(3, -2, 0),
		JitterAmplitude:  2,
		Vortex:           VortexConfig{Radius: 10, Length: 1, Coefficient: 4},
		Position:         math.NewVec3(0.47, 4.5, 8.9),
		InitialColor:     math.NewVec3(1, 1, 1),
		FinalColor:       math.NewVec3(0.039, 0.078, 0.156),
		InitialScale:     0,
		FinalScale:       0.007,
		Seed:             1,
	}
}

/** @brief A particle, in emitter space. */
type Particle struct {
	Position math.Vec3
	Velocity math.Vec3
	Age      float64
	Lifespan float64
	Alive    bool
}

func (p *Particle) t() float32 {
	if p.Lifespan <= 0 {
		return 1
	}
	return math.Clamp(float32(p.Age/p.Lifespan), 0, 1)
}

/**
 * @brief A fixed pool particle system. Advance integrates forces with the
 * frame delta, births happen every BirthRate seconds.
 */
type System struct {
	config     Config
	rng        *rand.Rand
	pool       []Particle
	birthClock float64
	Node       *scene.Node
}

// NewSystem creates the system with its node under parent. The node is
// tagged so the geometry and base passes pick their smoke states.
func NewSystem(name string, config Config, parent *scene.Node) *System {
	node := scene.NewNode(name)
	node.Position = config.Position
	node.SetTag("geometryBuffer2", "isSmoke")
	node.SetTag("baseBuffer", "isParticle")
	if parent != nil {
		parent.AddChild(node)
	}
	return &System{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		pool:   make([]Particle, config.PoolSize),
		Node:   node,
	}
}

func (s *System) Show() { s.Node.Show() }
func (s *System) Hide() { s.Node.Hide() }

func (s *System) Visible() bool {
	return !s.Node.Hidden
}

// Advance steps the simulation by deltaTime seconds.
func (s *System) Advance(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	for i := range s.pool {
		p := &s.pool[i]
		if !p.Alive {
			continue
		}
		p.Age += deltaTime
		if p.Age >= p.Lifespan {
			p.Alive = false
			continue
		}
		s.integrate(p, float32(deltaTime))
	}

	s.birthClock += deltaTime
	for s.birthClock >= s.config.BirthRate {
		s.birthClock -= s.config.BirthRate
		litter := s.config.LitterSize
		if s.config.LitterSpread > 0 {
			litter += s.rng.Intn(s.config.LitterSpread + 1)
		}
		for n := 0; n < litter; n++ {
			if !s.birth() {
				break
			}
		}
	}
}

func (s *System) birth() bool {
	for i := range s.pool {
		p := &s.pool[i]
		if p.Alive {
			continue
		}
		*p = Particle{
			Velocity: s.config.LaunchVector,
			Lifespan: s.config.LifespanBase + s.config.LifespanSpread*s.rng.Float64(),
			Alive:    true,
		}
		return true
	}
	return false
}

func (s *System) integrate(p *Particle, dt float32) {
	force := s.config.OffsetForce.Add(s.config.LinearForce)
	jitter := math.NewVec3(s.rng.Float32()*2-1, s.rng.Float32()*2-1, s.rng.Float32()*2-1)
	force = force.Add(jitter.Mul(s.config.JitterAmplitude))

	v := s.config.Vortex
	radial := math.NewVec2(p.Position[0], p.Position[1])
	if r := radial.Len(); r > 0 && r < v.Radius && p.Position[2] >= 0 && p.Position[2] <= v.Length {
		tangent := math.NewVec3(-radial[1]/r, radial[0]/r, 0)
		force = force.Add(tangent.Mul(v.Coefficient))
	}

	mass := s.config.Mass
	if mass <= 0 {
		mass = 1
	}
	p.Velocity = p.Velocity.Add(force.Mul(dt / mass))
	if speed := p.Velocity.Len(); speed > s.config.TerminalVelocity {
		p.Velocity = p.Velocity.Mul(s.config.TerminalVelocity / speed)
	}
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
}

// Alive is the number of live particles.
func (s *System) Alive() int {
	n := 0
	for i := range s.pool {
		if s.pool[i].Alive {
			n++
		}
	}
	return n
}

// Particles returns copies of the live particles.
func (s *System) Particles() []Particle {
	out := make([]Particle, 0, len(s.pool))
	for _, p := range s.pool {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

// Color and Scale interpolate the particle appearance over its life.
func (s *System) Color(p *Particle) math.Vec3 {
	return math.MixVec3(s.config.InitialColor, s.config.FinalColor, p.t())
}

func (s *System) Scale(p *Particle) float32 {
	return math.Lerp(s.config.InitialScale, s.config.FinalScale, p.t())
}
