package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	// DefaultGravity is the downward acceleration in units per second squared.
	DefaultGravity = 9.81
	// StepHeight is how far below a solid's top a character may be and
	// still be lifted onto it.
	StepHeight = 0.25

	resolveIterations = 4
	contactEpsilon    = 1e-9
)

// PhysicsSystem resolves character footprints against static solids on the
// ground plane with Chipmunk2D. Chipmunk X/Y map to world X/Z. Characters
// are kinematic bodies that stand on their transform; static bodies are
// centered on it.
type PhysicsSystem struct {
	space   *cp.Space
	Gravity float64

	entities map[ecs.Entity]*bodyInfo
	owners   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool

	// World placement the shape was built from; statics are rebuilt when
	// it changes.
	center               mgl64.Vec3
	width, depth, height float64
	bottom, top          float64
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		Gravity:  DefaultGravity,
		entities: make(map[ecs.Entity]*bodyInfo),
		owners:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)

	dt := w.DeltaTime()
	if dt <= 0 {
		return
	}

	ps.driveBodies(w, dt)
	ps.space.Step(dt)
	ps.resolveOverlaps()
	ps.syncTransforms(w, dt)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.CharacterBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info != nil && info.static && !info.matches(transform, bodyComp) {
			ps.removeInfo(e, info)
			info = nil
		}
		if info == nil {
			info = ps.createBodyInfo(transform, bodyComp)
			ps.entities[e] = info
			ps.owners[info.shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.CharacterBody) *bodyInfo {
	width := positiveOr(bodyComp.Width, 1)
	depth := positiveOr(bodyComp.Depth, 1)
	height := positiveOr(bodyComp.Height, 1)
	pos := transform.Position

	info := &bodyInfo{
		static: bodyComp.Static,
		center: pos,
		width:  width,
		depth:  depth,
		height: height,
	}

	if bodyComp.Static {
		shape := cp.NewBox2(ps.space.StaticBody, info.footprint(), 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shape = shape
		info.bottom = pos.Y() - height/2
		info.top = pos.Y() + height/2
		return info
	}

	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})

	shape := cp.NewBox(body, width, depth, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	info.bottom = pos.Y()
	info.top = pos.Y() + height
	return info
}

func (info *bodyInfo) matches(t *component.Transform, b *component.CharacterBody) bool {
	return info.center == t.Position &&
		info.width == positiveOr(b.Width, 1) &&
		info.depth == positiveOr(b.Depth, 1) &&
		info.height == positiveOr(b.Height, 1)
}

// driveBodies sets each character's velocity so that the step lands exactly
// on the position its transform asks for.
func (ps *PhysicsSystem) driveBodies(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		cur := info.body.Position()
		info.body.SetVelocity((transform.Position.X()-cur.X)/dt, (transform.Position.Z()-cur.Y)/dt)
	}
}

// resolveOverlaps pushes each character out of the solids it overlaps
// vertically. Solids whose top is within StepHeight of a character's feet
// are stepped onto instead.
func (ps *PhysicsSystem) resolveOverlaps() {
	for _, info := range ps.entities {
		if info.static {
			continue
		}
		for i := 0; i < resolveIterations; i++ {
			push, hit := ps.deepestContact(info)
			if !hit {
				break
			}
			info.body.SetPosition(info.body.Position().Add(push))
		}
	}
}

func (ps *PhysicsSystem) deepestContact(info *bodyInfo) (cp.Vector, bool) {
	var push cp.Vector
	deepest := 0.0
	ps.space.ShapeQuery(info.shape, func(other *cp.Shape, set *cp.ContactPointSet) {
		solid := ps.entities[ps.owners[other]]
		if solid == nil || !solid.static || !info.overlapsVertically(solid) {
			return
		}
		// The normal points from the character into the solid.
		for i := 0; i < set.Count; i++ {
			if d := set.Points[i].Distance; d < deepest {
				deepest = d
				push = set.Normal.Mult(d)
			}
		}
	})
	return push, deepest < -contactEpsilon
}

func (info *bodyInfo) overlapsVertically(solid *bodyInfo) bool {
	return info.bottom < solid.top-StepHeight && solid.bottom < info.top
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
		if !ok {
			continue
		}

		pos := info.body.Position()
		transform.Position[0] = pos.X
		transform.Position[2] = pos.Y
		info.body.SetVelocity(0, 0)
		info.center = transform.Position

		ground := ps.groundHeight(info, transform.Position[1])
		bodyComp.VelocityY -= ps.Gravity * dt
		y := transform.Position[1] + bodyComp.VelocityY*dt
		bodyComp.Grounded = false
		if y <= ground {
			y = ground
			bodyComp.VelocityY = 0
			bodyComp.Grounded = true
		}
		transform.Position[1] = y
		info.center = transform.Position
		info.bottom = y
		info.top = y + info.height
	}
}

// groundHeight returns the highest solid top under the footprint of info
// that a character at y can stand on. The ground plane is at zero.
func (ps *PhysicsSystem) groundHeight(info *bodyInfo, y float64) float64 {
	ground := 0.0
	fp := info.footprint()
	for _, other := range ps.entities {
		if !other.static || other.top > y+StepHeight || other.top <= ground {
			continue
		}
		if fp.Intersects(other.footprint()) {
			ground = other.top
		}
	}
	return ground
}

func (info *bodyInfo) footprint() cp.BB {
	return cp.BB{
		L: info.center.X() - info.width/2,
		B: info.center.Z() - info.depth/2,
		R: info.center.X() + info.width/2,
		T: info.center.Z() + info.depth/2,
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.CharacterBodyComponent.Kind()) {
			continue
		}
		ps.removeInfo(e, info)
	}
}

func (ps *PhysicsSystem) removeInfo(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.owners, info.shape)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
