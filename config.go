package main

import "time"

// Window, scene and audio constants. Scene geometry is in logical pixels and
// mirrors the layout of the hatch the orbs drop out of.
const (
	defaultWidth  = 960
	defaultHeight = 720
	defaultTPS    = 60.0

	defaultOrbRadius     = 125
	defaultGravity       = 1000
	defaultStepHz        = 60
	defaultMaxStepMillis = 1000.0 / 30
	maxSubsteps          = 4
	defaultBlurStrength  = 16
	blurKernelReach      = 32

	hatchY          = 75
	hatchRadiusX    = 150
	hatchRadiusY    = 10
	maskHoleRadiusX = 125
	maskHoleRadiusY = 10
	gradientWidth   = 300
	gradientQuality = 256
	gradientAlpha   = 0.5

	buttonMargin = 16
	buttonWidth  = 120
	buttonHeight = 40

	spawnQueueSize      = 8
	resumeGap           = 500 * time.Millisecond
	audioSampleRate     = 48000
	bounceDuration      = 220 * time.Millisecond
	bounceVoices        = 6
	bounceMinInterval   = 25 * time.Millisecond
	profileRecordPeriod = 15 * time.Second
)

// gameConfig is the resolved runtime configuration.
type gameConfig struct {
	width, height int

	orbRadius     float64
	gravity       float64
	stepHz        float64
	maxStepMillis float64
	blur          float64

	texturePath string
	soundPath   string

	debug bool
	mute  bool
}

func configFromFlags() gameConfig {
	cfg := gameConfig{
		width:         *widthFlag,
		height:        *heightFlag,
		orbRadius:     *orbRadiusFlag,
		gravity:       *gravityFlag,
		stepHz:        *stepHzFlag,
		maxStepMillis: *maxStepMillisFlag,
		blur:          *blurFlag,
		texturePath:   *orbTextureFlag,
		soundPath:     *bounceSoundFlag,
		debug:         *debugFlag,
		mute:          *muteFlag,
	}
	if cfg.width <= 0 {
		cfg.width = defaultWidth
	}
	if cfg.height <= hatchY {
		cfg.height = defaultHeight
	}
	if cfg.orbRadius <= 0 {
		cfg.orbRadius = defaultOrbRadius
	}
	if !(cfg.maxStepMillis > 0) || cfg.maxStepMillis > defaultMaxStepMillis {
		cfg.maxStepMillis = defaultMaxStepMillis
	}
	if cfg.blur < 0 {
		cfg.blur = 0
	}
	return cfg
}
