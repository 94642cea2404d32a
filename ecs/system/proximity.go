package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/prefabs"
	"github.com/milk9111/voxelwalk/settings"
)

const zoneDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state)
} else if __phase == "exit" {
	onExit(__engine, __state)
}
`

type zoneScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

// ProximitySystem fires zone scripts when the subject enters or leaves a
// zone. Scripts may drive the settings store through the engine object.
type ProximitySystem struct {
	subject PositionRef
	store   *settings.Store

	// LoadScript reads a zone script; prefabs.LoadScript by default.
	LoadScript func(path string) ([]byte, error)

	scripts map[ecs.Entity]*zoneScriptRuntime
}

func NewProximitySystem(subject PositionRef, store *settings.Store) *ProximitySystem {
	return &ProximitySystem{
		subject:    subject,
		store:      store,
		LoadScript: prefabs.LoadScript,
		scripts:    make(map[ecs.Entity]*zoneScriptRuntime),
	}
}

func (s *ProximitySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.scripts {
		if !w.IsAlive(e) {
			delete(s.scripts, e)
		}
	}

	pos, ok := s.subject.Position()
	if !ok {
		return
	}
	subject := s.subject.Entity()

	ecs.ForEach(w, component.ZoneComponent.Kind(), func(e ecs.Entity, zone *component.Zone) {
		inside := pos.Sub(zone.Center).Len() <= zone.Radius
		if inside == zone.Inside {
			return
		}
		zone.Inside = inside

		w.Events().Push(ecs.Event{
			Type: ecs.EventZone,
			Data: ecs.ZoneEvent{Zone: e, Subject: subject, Entered: inside},
		})

		if strings.TrimSpace(zone.Script) == "" {
			return
		}
		rt, err := s.runtime(e, zone.Script)
		if err != nil {
			log.Printf("zones: %s: load script %s: %v", zone.Name, zone.Script, err)
			return
		}
		phase := "exit"
		if inside {
			phase = "enter"
		}
		if err := rt.runPhase(phase, s.buildEngine(zone, pos)); err != nil {
			log.Printf("zones: %s: script %s error: %v", zone.Name, phase, err)
		}
	})
}

// Invalidate recompiles every zone script named name on its next run.
// Script state survives the reload.
func (s *ProximitySystem) Invalidate(name string) {
	name = prefabs.ScriptName(name)
	for _, rt := range s.scripts {
		if prefabs.ScriptName(rt.scriptPath) == name {
			rt.compiled = nil
		}
	}
}

func (s *ProximitySystem) runtime(e ecs.Entity, path string) (*zoneScriptRuntime, error) {
	prev, ok := s.scripts[e]
	if ok && prev.scriptPath == path && prev.compiled != nil {
		return prev, nil
	}
	if s.LoadScript == nil {
		return nil, fmt.Errorf("no script loader")
	}

	scriptBytes, err := s.LoadScript(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(scriptBytes) + "\n" + zoneDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &zoneScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if ok && prev.scriptPath == path {
		rt.stateData = prev.stateData
	}
	s.scripts[e] = rt
	return rt, nil
}

func (rt *zoneScriptRuntime) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// State returns the persistent script state of zone e as plain Go values.
func (s *ProximitySystem) State(e ecs.Entity) map[string]any {
	rt, ok := s.scripts[e]
	if !ok {
		return nil
	}
	out, _ := objectToAny(rt.stateData).(map[string]any)
	return out
}

func (s *ProximitySystem) buildEngine(zone *component.Zone, pos mgl64.Vec3) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	values["zone"] = &tengo.String{Value: zone.Name}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("zones: %s: %s", zone.Name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: pos[0]},
			&tengo.Float{Value: pos[1]},
			&tengo.Float{Value: pos[2]},
		}}, nil
	}}

	values["apply"] = &tengo.UserFunction{Name: "apply", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.store == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		d := settings.Domain(objectAsString(args[0]))
		if err := s.store.Apply(d, objectAsString(args[1])); err != nil {
			log.Printf("zones: %s: apply: %v", zone.Name, err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
