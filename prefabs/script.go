package prefabs

import (
	"fmt"
	"log"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// PowerScript is a compiled tengo script that scales the applicator power
// each frame. The script receives the elapsed simulation time as `t` and
// must assign the multiplier to `scale`.
type PowerScript struct {
	name     string
	compiled *tengo.Compiled
}

// LoadPowerScript loads and compiles a script from the prefabs tree.
func LoadPowerScript(name string) (*PowerScript, error) {
	src, err := Load("scripts/" + name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return CompilePowerScript(name, src)
}

// CompilePowerScript compiles tengo source into a reusable power script.
func CompilePowerScript(name string, src []byte) (*PowerScript, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("t", 0.0); err != nil {
		return nil, fmt.Errorf("prefabs: script %s: %w", name, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile script %s: %w", name, err)
	}
	return &PowerScript{name: name, compiled: compiled}, nil
}

// Eval runs the script for the given elapsed time and returns the power
// multiplier. Script failures log and fall back to 1 so the applicator keeps
// working.
func (s *PowerScript) Eval(elapsed float64) float64 {
	if s == nil || s.compiled == nil {
		return 1
	}
	if err := s.compiled.Set("t", elapsed); err != nil {
		log.Printf("prefabs: script %s set t: %v", s.name, err)
		return 1
	}
	if err := s.compiled.Run(); err != nil {
		log.Printf("prefabs: script %s run: %v", s.name, err)
		return 1
	}
	v := s.compiled.Get("scale")
	if v == nil || v.IsUndefined() {
		return 1
	}
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 1
	}
	return f
}
