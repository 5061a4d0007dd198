package scene

/**
 * @brief Controls one named animation of an actor. Play runs it once,
 * Loop repeats it until stopped.
 */
type AnimationControl struct {
	Name      string
	playing   bool
	looping   bool
	playCount int
}

func NewAnimationControl(name string) *AnimationControl {
	return &AnimationControl{Name: name}
}

func (ac *AnimationControl) Play() {
	ac.playing = true
	ac.looping = false
	ac.playCount++
}

func (ac *AnimationControl) Loop() {
	ac.playing = true
	ac.looping = true
	ac.playCount++
}

func (ac *AnimationControl) Stop() {
	ac.playing = false
	ac.looping = false
}

func (ac *AnimationControl) IsPlaying() bool {
	return ac.playing
}

func (ac *AnimationControl) IsLooping() bool {
	return ac.looping
}

// PlayCount is the number of times Play or Loop was called.
func (ac *AnimationControl) PlayCount() int {
	return ac.playCount
}
