package mill

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/particles"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
	"github.com/lettier/3d-game-shaders-for-beginners/pipelines"
)

// Degrees per second the waterwheel turns while the water flows.
const WHEEL_SPEED float32 = -90

type sceneNodes struct {
	root        *scene.Node
	environment *scene.Node
	water       *scene.Node
	wheel       *scene.Node
	smoke       *particles.System
}

/**
 * @brief Builds the mill scene: the environment with its water, wheel and
 * chimney smoke, then applies the variant's camera masks and tags.
 */
func buildScene(settings *pipelines.Settings) (*scene.Scene, *sceneNodes, error) {
	sc := scene.NewScene()
	root := sc.Root.AttachNewNode("sceneRoot")

	environment := root.AttachNewNode("environment")
	environment.Model = "models/mill-scene.bam"

	water := environment.AttachNewNode(pipelines.NodeWater)
	water.Position = math.NewVec3(0, 0, 0.2)
	wheel := environment.AttachNewNode(pipelines.NodeWheel)
	wheel.Position = math.NewVec3(-2.35, 3.4, 1.7)
	for _, name := range []string{"shutters", "weather-vane", "banner"} {
		environment.AttachNewNode(name)
	}

	smokeConfig := particles.SmokeConfig()
	smokeConfig.Seed = 1
	smoke := particles.NewSystem(pipelines.NodeSmoke, smokeConfig, environment)

	for name, mask := range settings.Hide {
		n, err := sc.Find(name)
		if err != nil {
			return nil, nil, fmt.Errorf("hiding scene node: %w", err)
		}
		n.HideFrom(mask)
	}
	for name, tags := range settings.Tags {
		n, err := sc.Find(name)
		if err != nil {
			return nil, nil, fmt.Errorf("tagging scene node: %w", err)
		}
		for k, v := range tags {
			n.SetTag(k, v)
		}
	}

	sc.Animation("weather-vane").Loop()
	sc.Animation("banner").Loop()

	return sc, &sceneNodes{
		root:        root,
		environment: environment,
		water:       water,
		wheel:       wheel,
		smoke:       smoke,
	}, nil
}

// turnWheel rotates the waterwheel about its axle.
func (sn *sceneNodes) turnWheel(deltaTime float64) {
	sn.wheel.HPR[1] = math.WrapDegrees(sn.wheel.HPR[1] + WHEEL_SPEED*float32(deltaTime))
}
