package factory

import (
	"ecoscene/math"
)

var plantRecipes = map[string]recipe{
	"pine":       pine,
	"pine2":      pineTall,
	"cherry":     cherry,
	"cherry2":    cherryWhite,
	"willow":     willow,
	"willow2":    willowWeeping,
	"bamboo":     bamboo,
	"bamboo2":    bambooGrove,
	"palm":       palm,
	"palm2":      palmFlowering,
	"cactus":     cactus,
	"cactus2":    cactusBranched,
	"mushroom":   mushroom,
	"mushroom2":  mushroomConical,
	"sunflower":  sunflower,
	"sunflower2": sunflowerBranched,
	"birch":      birch,
	"birch2":     birchGolden,
}

// ── Pine ──────────────────────────────────────────────────────────────────────

func pineLayers(a *assembly) {
	a.part("trunk", cyl(0.2, 0.4, 1.2, 12), mat(0x5c4033, 0.9, 0.1), 0, 0.6, 0)
	needles := mat(0x2d6a4f, 0.8, 0.1)
	for i := 0; i < 4; i++ {
		size := 1.5 - float32(i)*0.3
		a.part("needles", cone(size, 1.8, 8), needles, 0, 1.8+float32(i)*0.8, 0)
	}
}

func pine(a *assembly) {
	pineLayers(a)
	a.part("pinecone", cone(0.15, 0.4, 8), mat(0x8b4513, 0.9, 0.05), 0, 1.2, 0).SetEuler(math.Pi, 0, 0)
}

func pineTall(a *assembly) {
	a.part("trunk", cyl(0.25, 0.45, 2.0, 16), mat(0x654321, 0.95, 0.05), 0, 1.0, 0)
	needles := mat(0x3a5f0b, 0.85, 0.15)
	for i := 0; i < 5; i++ {
		a.part("needles", cone(1.6-float32(i)*0.25, 1.8, 12), needles, 0, 2.0+float32(i)*0.7, 0)
	}
	cones := mat(0x8b4513, 0.98, 0.02)
	for _, p := range []math.Vec3{{X: 0.5, Y: 3.0, Z: 0.8}, {X: -0.6, Y: 2.5, Z: -0.5}, {X: 0.8, Y: 2.8, Z: -0.3}, {X: -0.4, Y: 3.2, Z: 0.6}} {
		a.part("pinecone", cone(0.12, 0.35, 8), cones, p.X, p.Y, p.Z).SetEuler(math.Pi, 0, 0)
	}
	a.part("pinecone", cone(0.18, 0.45, 10), cones, 0, 5.2, 0).SetEuler(math.Pi, 0, 0)
}

// ── Cherry ────────────────────────────────────────────────────────────────────

func cherry(a *assembly) {
	a.part("trunk", cyl(0.25, 0.4, 1.5, 12), mat(0x8b4513, 0.9, 0.1), 0, 0.75, 0)
	a.part("crown", sphere(1.5, 16, 16), mat(0xffd6e0, 0.7, 0.1), 0, 2.5, 0)
}

func cherryWhite(a *assembly) {
	a.part("trunk", cyl(0.2, 0.35, 2.0, 12), mat(0x8b4513, 0.9, 0.1), 0, 1.0, 0)
	petals := mat(0xffffff, 0.6, 0.1)
	a.part("crown", sphere(1.6, 16, 16), petals, 0, 3.0, 0)
	for i := 0; i < 5; i++ {
		a.part("crown", sphere(0.5-float32(i)*0.08, 12, 12), petals, a.jitter(2.0), 3.0+a.jitter(1.5), a.jitter(2.0))
	}
	falling := doubleSided(mat(0xffffff, 0.8, 0.1))
	for i := 0; i < 10; i++ {
		p := a.part("petal", plane(0.15, 0.15), falling, a.jitter(3.0), 1.5+a.jitter(2.0), a.jitter(3.0))
		p.SetEuler(a.angle(math.Pi), a.angle(math.Pi), a.angle(math.Pi))
	}
}

// ── Willow ────────────────────────────────────────────────────────────────────

func willow(a *assembly) {
	a.part("trunk", cyl(0.2, 0.35, 3.5, 12), mat(0x8b4513, 0.9, 0.1), 0, 1.75, 0)
	a.part("crown", sphere(0.8, 12, 12), mat(0x90ee90, 0.7, 0.1), 0, 3.8, 0)
}

func willowWeeping(a *assembly) {
	bark := mat(0x8b4513, 0.9, 0.1)
	leaves := mat(0x90ee90, 0.7, 0.1)
	a.part("trunk", cyl(0.15, 0.3, 4.0, 12), bark, 0, 2.0, 0)
	a.part("crown", sphere(1.0, 12, 12), leaves, 0, 4.5, 0)
	const branches = 12
	for i := 0; i < branches; i++ {
		x, z, angle := ring(i, branches, 0.2)
		a.part("branch", cyl(0.03, 0.03, 3.0, 8), bark, x, 3.5, z).SetEuler(0, 0, math.Pi/2+angle)
		lx, lz, _ := ring(i, branches, 3.0)
		a.part("leaves", sphere(0.4, 8, 8), leaves, lx, 0.8, lz)
	}
}

// ── Bamboo ────────────────────────────────────────────────────────────────────

func bamboo(a *assembly) {
	culm := mat(0x90ee90, 0.7, 0.1)
	for i := 0; i < 5; i++ {
		g := a.sub("culm", a.jitter(0.8), 0, a.jitter(0.8))
		height := a.between(3.0, 5.0)
		base := 0.15 - float32(i)*0.02
		g.part("stalk", cyl(base, base*0.7, height, 12), culm, 0, height/2, 0)
	}
}

func bambooGrove(a *assembly) {
	culm := mat(0x4caf50, 0.7, 0.1)
	joint := mat(0x2e7d32, 0.9, 0.1)
	for i := 0; i < 8; i++ {
		g := a.sub("culm", a.jitter(1.0), 0, a.jitter(1.0))
		height := a.between(2.5, 5.0)
		base := 0.12 - float32(i)*0.01
		top := base * 0.6
		g.part("stalk", cyl(base, top, height, 12), culm, 0, height/2, 0)
		for n := 0; n < int(height/0.5); n++ {
			g.part("node", cyl(base+0.01, top+0.01, 0.05, 12), joint, 0, float32(n+1)*0.5, 0)
		}
	}
}

// ── Palm ──────────────────────────────────────────────────────────────────────

func palmFronds(a *assembly, count int, w, l, radius, y, tilt, pitch float32, m uint32, roughness, metalness float32) {
	leaf := doubleSided(mat(m, roughness, metalness))
	for i := 0; i < count; i++ {
		x, z, angle := ring(i, count, radius)
		a.part("frond", box(w, l, 0.1), leaf, x, y, z).SetEuler(pitch, angle, tilt)
	}
}

func palm(a *assembly) {
	a.part("trunk", cyl(0.2, 0.3, 4.0, 16), mat(0x8b4513, 0.9, 0.1), 0, 2.0, 0)
	palmFronds(a, 12, 0.2, 2.5, 0.3, 3.8, math.Pi/3, 0.2, 0x228b22, 0.7, 0.1)
	nut := mat(0x8b4513, 0.95, 0.05)
	for i := 0; i < 2; i++ {
		x, z, _ := ring(i, 2, 0.5)
		a.part("coconut", sphere(0.15, 8, 8), nut, x, 3.5, z)
	}
}

func palmFlowering(a *assembly) {
	a.part("trunk", cyl(0.25, 0.35, 4.5, 16), mat(0x8b4513, 0.9, 0.1), 0, 2.25, 0).SetEuler(0, 0, -0.1)
	palmFronds(a, 16, 0.25, 3.0, 0.4, 4.2, math.Pi/3.5, 0.15, 0x32cd32, 0.6, 0.2)
	nut := mat(0x8b4513, 0.95, 0.05)
	for i := 0; i < 4; i++ {
		x, z, _ := ring(i, 4, 0.6)
		a.part("coconut", sphere(0.18, 8, 8), nut, x, 3.8, z)
	}
	bloom := mat(0xff6b6b, 0.5, 0.3)
	for i := 0; i < 3; i++ {
		x, z, _ := ring(i, 3, 0.3)
		a.part("flower", ico(0.2, 1), bloom, x, 4.5, z)
	}
}

// ── Cactus ────────────────────────────────────────────────────────────────────

func spines(a *assembly, count int, radius, length, maxHeight float32, hex uint32) {
	m := mat(hex, 0.9, 0.05)
	for i := 0; i < count; i++ {
		x, z, angle := ring(i, count, radius)
		a.part("spine", cyl(0.01, 0.02, length, 4), m, x, a.angle(maxHeight), z).SetEuler(0, angle, math.Pi/2)
	}
}

func cactus(a *assembly) {
	a.part("body", cyl(0.35, 0.45, 2.5, 16), mat(0x22c55e, 0.8, 0.1), 0, 1.25, 0)
	spines(a, 20, 0.4, 0.3, 2.5, 0x166534)
}

func cactusBranched(a *assembly) {
	skin := mat(0x16a34a, 0.7, 0.2)
	a.part("body", cyl(0.3, 0.4, 3.0, 16), skin, 0, 1.5, 0)
	for i := 0; i < 4; i++ {
		x, z, angle := ring(i, 4, 0.4)
		lean := float32(math.Pi / 4)
		if i%2 != 0 {
			lean = -lean
		}
		a.part("arm", cyl(0.15, 0.2, 1.5, 12), skin, x, 1.0+float32(i%2)*0.5, z).SetEuler(0, angle, lean)
	}
	bloom := mat(0xffd700, 0.6, 0.3)
	for i := 0; i < 3; i++ {
		a.part("flower", sphere(0.2, 8, 8), bloom, a.jitter(0.2), 3.2, a.jitter(0.2))
	}
	spines(a, 30, 0.35, 0.4, 3.0, 0x15803d)
}

// ── Mushroom ──────────────────────────────────────────────────────────────────

func mushroom(a *assembly) {
	a.part("stem", cyl(0.25, 0.35, 1.0, 16), mat(0xffedd5, 0.7, 0.1), 0, 0.5, 0)
	a.part("cap", dome(1.2, 16, 16), mat(0xff4757, 0.6, 0.1), 0, 1.2, 0)
	spot := mat(0xffffff, 0.8, 0.05)
	for i := 0; i < 8; i++ {
		x, z, _ := ring(i, 8, a.between(0.8, 1.1))
		a.part("spot", sphere(0.2, 8, 8), spot, x, a.between(1.3, 1.5), z)
	}
}

func mushroomConical(a *assembly) {
	a.part("stem", cyl(0.2, 0.3, 1.5, 16), mat(0xffffe0, 0.6, 0.2), 0, 0.75, 0)
	a.part("cap", cone(1.5, 2.0, 16), mat(0x8b0000, 0.5, 0.3), 0, 1.75, 0).SetEuler(math.Pi, 0, 0)
	spot := mat(0xffffff, 0.9, 0.1)
	for i := 0; i < 12; i++ {
		x, z, _ := ring(i, 12, a.between(1.0, 1.4))
		a.part("spot", ico(0.25, 1), spot, x, a.between(1.5, 2.0), z)
	}
	gill := mat(0x660000, 0.8, 0.1)
	for i := 0; i < 8; i++ {
		x, z, angle := ring(i, 8, 0.15)
		a.part("gill", box(0.05, 0.8, 0.5), gill, x, 1.2, z).SetEuler(0, angle, 0)
	}
}

// ── Sunflower ─────────────────────────────────────────────────────────────────

// flowerHead adds a disc, seed center and a petal ring centered at (cx, y, cz).
func flowerHead(a *assembly, cx, y, cz, radius, thickness float32, segments, petals int, petalW, petalL, petalRadius float32, headHex, seedHex, petalHex uint32) {
	a.part("head", cyl(radius, radius, thickness, segments), mat(headHex, 0.7, 0.1), cx, y, cz)
	a.part("seeds", cyl(radius*0.4, radius*0.4, thickness+0.05, segments/2+2), mat(seedHex, 0.9, 0.05), cx, y+0.05, cz)
	petal := doubleSided(mat(petalHex, 0.8, 0.1))
	for i := 0; i < petals; i++ {
		x, z, angle := ring(i, petals, petalRadius)
		a.part("petal", box(petalW, 0.05, petalL), petal, cx+x, y, cz+z).SetEuler(0, angle, math.Pi/2)
	}
}

func sunflower(a *assembly) {
	a.part("stem", cyl(0.08, 0.12, 3.0, 10), mat(0x4ade80, 0.8, 0.1), 0, 1.5, 0)
	flowerHead(a, 0, 3.0, 0, 0.8, 0.15, 20, 20, 0.3, 0.8, 0.55, 0xfacc15, 0x78350f, 0xfbbf24)
}

func sunflowerBranched(a *assembly) {
	stem := mat(0x34d399, 0.7, 0.2)
	a.part("stem", cyl(0.12, 0.18, 4.0, 10), stem, 0, 2.0, 0)
	for b := 0; b < 3; b++ {
		height := 1.5 + float32(b)*0.8
		angle := float32(b)/3*math.Pi/3 - math.Pi/6
		a.part("branch", cyl(0.06, 0.08, 1.5, 8), stem, math.Cos(angle)*0.2, height, math.Sin(angle)*0.2).SetEuler(0, math.Pi/2, angle)
		flowerHead(a, math.Cos(angle)*0.8, height, math.Sin(angle)*0.8, 0.6, 0.15, 16, 16, 0.25, 0.6, 0.42, 0xfbbf24, 0x92400e, 0xfacc15)
	}
	flowerHead(a, 0, 4.0, 0, 0.9, 0.18, 24, 24, 0.35, 1.0, 0.62, 0xfbbf24, 0x92400e, 0xfacc15)
}

// ── Birch ─────────────────────────────────────────────────────────────────────

func barkSpots(a *assembly, count int, radius, lo, hi float32, w, h, d float32, roughness float32) {
	m := mat(0x1e293b, roughness, 0.1)
	for i := 0; i < count; i++ {
		x, z, angle := ring(i, count, radius)
		a.part("bark", box(w, h, d), m, x, a.between(lo, hi), z).SetEuler(0, angle, 0)
	}
}

func birch(a *assembly) {
	a.part("trunk", cyl(0.18, 0.25, 3.2, 12), mat(0xf1f5f9, 0.8, 0.1), 0, 1.6, 0)
	barkSpots(a, 8, 0.14, 0.5, 2.7, 0.21, 0.1, 0.1, 0.9)
	a.part("crown", sphere(1.6, 16, 16), mat(0xfcd34d, 0.6, 0.3), 0, 3.3, 0)
}

func birchGolden(a *assembly) {
	a.part("trunk", cyl(0.22, 0.3, 4.0, 16), mat(0xf8fafc, 0.7, 0.2), 0, 2.0, 0)
	barkSpots(a, 15, 0.17, 0.8, 3.2, 0.25, 0.15, 0.12, 0.95)
	crown := mat(0xfbbf24, 0.5, 0.4)
	a.part("crown", sphere(1.8, 16, 16), crown, 0, 4.0, 0)
	for i := 0; i < 4; i++ {
		x, z, _ := ring(i, 4, a.between(1.2, 1.6))
		a.part("crown", sphere(0.8, 12, 12), crown, x, a.between(3.8, 4.6), z)
	}
	knot := mat(0x94a3b8, 0.9, 0.1)
	for i := 0; i < 3; i++ {
		x, z, _ := ring(i, 3, 0.22)
		a.part("knot", sphere(0.15, 8, 8), knot, x, a.between(1.2, 2.7), z)
	}
}
