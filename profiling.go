package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// startCPUProfile writes a CPU profile to path for at most d. The returned
// stop function ends the recording early and is safe to call more than once.
func startCPUProfile(path string, d time.Duration) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting profile: %w", err)
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("Closing profile %s: %v", path, err)
				return
			}
			log.Printf("CPU profile written to %s", path)
		})
	}
	if d > 0 {
		time.AfterFunc(d, stop)
	}
	return stop, nil
}
