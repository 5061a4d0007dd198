package audio

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

/** @brief Where the scene is heard from. */
type Listener struct {
	Position math.Vec3
	Velocity math.Vec3
	Forward  math.Vec3
	Up       math.Vec3
}

/** @brief A positioned sound. */
type Sound interface {
	Name() string
	Play()
	Stop()
	IsPlaying() bool
	SetLoop(loop bool)
	/** @brief Distance below which the sound plays at full volume. */
	SetMinDistance(distance float32)
	Set3DAttributes(position, velocity math.Vec3)
}

/** @brief The audio collaborator of the frame loop. */
type Device interface {
	Initialize() error
	Load(name, path string) (Sound, error)
	/** @brief Moves the listener and refreshes every playing sound. */
	Update(listener Listener)
	Shutdown() error
}

// Attenuation is the inverse distance clamped gain: full volume inside
// minDistance, minDistance/distance beyond it.
func Attenuation(distance, minDistance float32) float32 {
	if minDistance <= 0 {
		return 1
	}
	if distance <= minDistance {
		return 1
	}
	return minDistance / distance
}

// Pan places a sound between the left (-1) and right (1) ear of the listener.
func Pan(listener Listener, position math.Vec3) float32 {
	toSound := position.Sub(listener.Position)
	if toSound.Len() == 0 {
		return 0
	}
	right := listener.Forward.Cross(listener.Up)
	if right.Len() == 0 {
		return 0
	}
	return math.Clamp(right.Normalize().Dot(toSound.Normalize()), -1, 1)
}
