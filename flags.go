package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Command-line flags. Any flag listed in envFlags may also be supplied through
// the environment or a .env file; an explicit flag always wins.
var (
	// envFileFlag names an optional dotenv file read before applying env defaults.
	envFileFlag = flag.String("env", ".env", "dotenv file with ORBDROP_* defaults (ignored when missing)")

	widthFlag  = flag.Int("width", defaultWidth, "logical viewport width in pixels")
	heightFlag = flag.Int("height", defaultHeight, "logical viewport height in pixels")

	// orbTextureFlag points at a PNG or JPEG; empty draws a procedural orb.
	orbTextureFlag = flag.String("orb-texture", "", "orb sprite image (PNG/JPEG); procedural orb when empty")

	// bounceSoundFlag points at a WAV; empty synthesizes a bounce.
	bounceSoundFlag = flag.String("bounce-sound", "", "collision sound (WAV); synthesized when empty")

	orbRadiusFlag     = flag.Float64("orb-radius", defaultOrbRadius, "radius of spawned orbs in pixels")
	gravityFlag       = flag.Float64("gravity", defaultGravity, "downward gravity in px/s²")
	stepHzFlag        = flag.Float64("step-hz", defaultStepHz, "fixed physics step rate")
	maxStepMillisFlag = flag.Float64("max-step-ms", defaultMaxStepMillis, "largest single physics increment in milliseconds (at most 1000/30)")
	blurFlag          = flag.Float64("blur", defaultBlurStrength, "orb glow blur strength (0 disables)")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay (toggle with F1)")
	muteFlag  = flag.Bool("mute", false, "disable collision sounds")

	cpuProfileFlag    = flag.String("cpuprofile", "", "write a CPU profile to this path")
	cpuProfileForFlag = flag.Duration("cpuprofile-for", profileRecordPeriod, "how long to record the CPU profile")
)

// envFlags maps environment variables onto flag names.
var envFlags = map[string]string{
	"ORBDROP_WIDTH":        "width",
	"ORBDROP_HEIGHT":       "height",
	"ORBDROP_ORB_TEXTURE":  "orb-texture",
	"ORBDROP_BOUNCE_SOUND": "bounce-sound",
	"ORBDROP_ORB_RADIUS":   "orb-radius",
	"ORBDROP_GRAVITY":      "gravity",
	"ORBDROP_BLUR":         "blur",
	"ORBDROP_DEBUG":        "debug",
	"ORBDROP_MUTE":         "mute",
}

// loadEnvFile reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %q: %w", path, err)
	}
	return nil
}

// applyEnvDefaults copies ORBDROP_* values onto flags the user did not set on
// the command line.
func applyEnvDefaults(fset *flag.FlagSet) error {
	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for env, name := range envFlags {
		v, ok := os.LookupEnv(env)
		if !ok || set[name] {
			continue
		}
		if err := fset.Set(name, v); err != nil {
			return fmt.Errorf("%s=%q: %w", env, v, err)
		}
	}
	return nil
}
