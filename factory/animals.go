package factory

import (
	"ecoscene/math"
	"ecoscene/scene"
)

var animalRecipes = map[string]recipe{
	"rabbit":   rabbit,
	"rabbit2":  rabbitRound,
	"fox":      fox,
	"fox2":     foxDetailed,
	"panda":    panda(false),
	"panda2":   panda(true),
	"pig":      pig(false),
	"pig2":     pig(true),
	"chick":    chick(false),
	"chick2":   chick(true),
	"penguin":  penguin(false),
	"penguin2": penguin(true),
	"frog":     frog(false),
	"frog2":    frog(true),
	"sheep":    sheep(false),
	"sheep2":   sheep(true),
	"bear":     bear(false),
	"bear2":    bear(true),
	"bee":      bee(false),
	"bee2":     bee(true),
}

// mirrored runs build once for the left side (-1) and once for the right (+1).
func mirrored(build func(side float32)) {
	for _, side := range []float32{-1, 1} {
		build(side)
	}
}

// ── Rabbit ────────────────────────────────────────────────────────────────────

func rabbit(a *assembly) {
	fur := mat(0xffffff, 0.7, 0.1)
	a.part("body", capsule(0.2, 0.3), fur, 0, 0.3, 0)
	a.part("head", sphere(0.2, 16, 16), fur, 0, 0.5, 0.3)
	ear := mat(0xffffff, 0.8, 0)
	eye := mat(0x1f2937, 0.7, 0.2)
	mirrored(func(s float32) {
		a.part("ear", box(0.1, 0.5, 0.1), ear, s*0.1, 0.9, 0.25).SetEuler(0, 0, -s*0.1)
		a.part("eye", box(0.05, 0.05, 0.05), eye, s*0.08, 0.55, 0.45)
	})
}

func rabbitRound(a *assembly) {
	fur := mat(0xfef3c7, 0.65, 0.15)
	a.part("body", ico(0.25, 3), fur, 0, 0.35, 0)
	a.part("head", ico(0.22, 3), fur, 0, 0.55, 0.35)
	ear := mat(0xfef3c7, 0.75, 0.05)
	eye := mat(0x0369a1, 0.6, 0.3)
	mirrored(func(s float32) {
		a.part("ear", box(0.12, 0.6, 0.12), ear, s*0.12, 1.0, 0.3).SetEuler(0, 0, -s*0.2)
		a.part("eye", box(0.06, 0.06, 0.06), eye, s*0.09, 0.6, 0.5)
	})
	a.part("tail", ico(0.15, 2), mat(0xfef3c7, 0.7, 0.1), 0, 0.3, -0.25)
}

// ── Fox ───────────────────────────────────────────────────────────────────────

func fox(a *assembly) {
	fur := mat(0xf97316, 0.7, 0.2)
	a.part("body", capsule(0.25, 0.4), fur, 0, 0.4, 0).SetEuler(0, 0, 0.2)
	a.part("head", sphere(0.25, 16, 16), fur, 0, 0.7, 0.4)
	ear := mat(0x1f2937, 0.8, 0.1)
	mirrored(func(s float32) {
		a.part("ear", box(0.15, 0.2, 0.1), ear, s*0.12, 0.9, 0.35).SetEuler(0, 0, -s*0.3)
	})
	a.part("tail", box(0.3, 0.3, 0.7), mat(0xd97706, 0.7, 0.2), 0, 0.3, -0.3).SetEuler(0, math.Pi/4, 0)
}

func foxDetailed(a *assembly) {
	fur := mat(0xea580c, 0.6, 0.3)
	a.part("body", capsule(0.3, 0.5), fur, 0, 0.45, 0).SetEuler(0, 0, 0.15)
	a.part("head", sphere(0.28, 16, 16), fur, 0, 0.8, 0.45)
	ear := mat(0x0f172a, 0.85, 0.05)
	eye := mat(0x1e293b, 0.8, 0.1)
	mirrored(func(s float32) {
		a.part("ear", box(0.18, 0.25, 0.12), ear, s*0.15, 1.05, 0.4).SetEuler(0, 0, -s*0.2)
		a.part("eye", sphere(0.04, 8, 8), eye, s*0.1, 0.85, 0.6)
	})
	a.part("tail", box(0.35, 0.35, 0.8), mat(0xc2410c, 0.6, 0.3), 0, 0.35, -0.35).SetEuler(0, math.Pi/3.5, 0)
	a.part("nose", sphere(0.05, 8, 8), mat(0xffffff, 0.9, 0), 0, 0.75, 0.65)
}

// ── Panda ─────────────────────────────────────────────────────────────────────

func panda(eating bool) recipe {
	return func(a *assembly) {
		fur := mat(0xffffff, 0.7, 0.1)
		black := mat(0x1f2937, 0.8, 0.05)
		body := a.part("body", capsule(0.35, 0.5), fur, 0, 0.5, 0)
		a.part("head", sphere(0.3, 16, 16), fur, 0, 0.9, 0.4)
		if !eating {
			mirrored(func(s float32) {
				a.part("eye", box(0.06, 0.06, 0.06), black, s*0.12, 0.95, 0.6)
			})
			return
		}
		body.SetUniformScale(1.1)
		mirrored(func(s float32) {
			a.part("patch", box(0.15, 0.25, 0.05), black, s*0.15, 0.95, 0.6).SetEuler(0, 0, -s*0.2)
		})
		a.part("bamboo", cyl(0.05, 0.05, 0.6, 6), mat(0x4ade80, 0.7, 0.1), 0, 0.8, 0.7).SetEuler(0, 0, math.Pi/4)
	}
}

// ── Farm animals ──────────────────────────────────────────────────────────────

func pig(curlyTail bool) recipe {
	return func(a *assembly) {
		skin := uint32(0xfbcfe8)
		if curlyTail {
			skin = 0xf9a8d4
		}
		hide := mat(skin, 0.7, 0.1)
		a.part("body", ico(0.3, 3), hide, 0, 0.4, 0)
		a.part("head", box(0.4, 0.4, 0.4), hide, 0, 0.6, 0.4)
		if !curlyTail {
			return
		}
		tail := mat(0xf9a8d4, 0.7, 0.1)
		for i := 0; i < 3; i++ {
			t := float32(i) * math.Pi / 2
			a.part("tail", cyl(0.05, 0.05, 0.2, 6), tail, math.Cos(t)*0.2, 0.4, -0.2+math.Sin(t)*0.2).SetEuler(0, 0, t)
		}
	}
}

func chick(winged bool) recipe {
	return func(a *assembly) {
		down := mat(0xfacc15, 0.65, 0.15)
		body := a.part("body", ico(0.2, 3), down, 0, 0.3, 0)
		a.part("head", sphere(0.18, 16, 16), down, 0, 0.5, 0.3)
		if !winged {
			return
		}
		body.SetUniformScale(1.1)
		wing := mat(0xf59e0b, 0.7, 0.1)
		mirrored(func(s float32) {
			a.part("wing", box(0.15, 0.08, 0.2), wing, s*0.2, 0.35, 0.1).SetEuler(0, 0, -s*0.3)
		})
	}
}

func sheep(woolly bool) recipe {
	return func(a *assembly) {
		wool := mat(0xffffff, 0.65, 0.15)
		a.part("body", ico(0.3, 3), wool, 0, 0.4, 0)
		a.part("head", box(0.3, 0.3, 0.35), wool, 0, 0.6, 0.4)
		if !woolly {
			return
		}
		for i := 0; i < 15; i++ {
			a.part("wool", sphere(0.1, 8, 8), wool, a.jitter(0.4), 0.4+a.jitter(0.3), a.jitter(0.4))
		}
		a.part("bell", cyl(0.08, 0.1, 0.12, 8), mat(0xfbbf24, 0.4, 0.6), 0, 0.2, 0)
	}
}

// ── Wild animals ──────────────────────────────────────────────────────────────

func penguin(bowTie bool) recipe {
	return func(a *assembly) {
		coat := mat(0x1f2937, 0.7, 0.1)
		a.part("body", cyl(0.25, 0.35, 0.9, 12), coat, 0, 0.45, 0)
		a.part("belly", cyl(0.2, 0.3, 0.8, 12), mat(0xffffff, 0.75, 0.05), 0, 0.4, 0.1)
		a.part("head", sphere(0.25, 16, 16), coat, 0, 0.9, 0.2)
		if bowTie {
			a.part("bow", box(0.2, 0.1, 0.1), mat(0xef4444, 0.6, 0.2), 0, 0.7, 0.3)
		}
	}
}

func frog(spotted bool) recipe {
	return func(a *assembly) {
		skin := uint32(0x4ade80)
		if spotted {
			skin = 0x10b981
		}
		a.part("body", ico(0.25, 3), mat(skin, 0.7, 0.1), 0, 0.3, 0)
		eye := mat(0xffffff, 0.6, 0.2)
		mirrored(func(s float32) {
			a.part("eye", sphere(0.15, 12, 12), eye, s*0.2, 0.5, 0.3)
		})
		if !spotted {
			return
		}
		spot := mat(0x059669, 0.8, 0.05)
		for i := 0; i < 5; i++ {
			a.part("spot", sphere(0.05, 8, 8), spot, a.jitter(0.3), a.between(0.3, 0.5), a.jitter(0.2))
		}
	}
}

// bear builds the brown bear, or the clawed polar bear when polar is set.
func bear(polar bool) recipe {
	return func(a *assembly) {
		coat := uint32(0x78350f)
		if polar {
			coat = 0xf5f5f4
		}
		fur := mat(coat, 0.7, 0.1)
		body := a.part("body", capsule(0.35, 0.5), fur, 0, 0.5, 0)
		body.SetEuler(0, 0, 0.2)
		a.part("head", box(0.5, 0.4, 0.4), fur, 0, 0.9, 0.4)
		if !polar {
			return
		}
		body.SetUniformScale(1.1)
		claw := mat(0x92400e, 0.75, 0.05)
		for i := 0; i < 4; i++ {
			side := float32(1)
			if i%2 == 0 {
				side = -1
			}
			a.part("claw", cyl(0.04, 0.03, 0.15, 4), claw, side*0.2, 0.3, 0.1+float32(i/2)*0.2).SetEuler(0, 0, -side*0.2)
		}
	}
}

func bee(bumble bool) recipe {
	return func(a *assembly) {
		a.part("body", capsule(0.15, 0.3), mat(0xfacc15, 0.65, 0.15), 0, 0.3, 0).SetEuler(0, 0, 0.3)
		stripe := doubleSided(mat(0x000000, 0.8, 0.05))
		for i := 0; i < 3; i++ {
			a.part("stripe", scene.NewRingGeometry(0.15, 0.18, 16), stripe, 0, 0.3, 0).SetEuler(math.Pi/2, 0, float32(i)*0.3)
		}
		if !bumble {
			return
		}
		wing := doubleSided(mat(0xffffff, 0.3, 0.1))
		wing.Transparent = true
		wing.Opacity = 0.7
		mirrored(func(s float32) {
			a.part("wing", box(0.4, 0.2, 0.01), wing, s*0.2, 0.35, 0.1).SetEuler(0, 0, -s*0.2)
		})
	}
}
