package io

import (
	"bufio"
	"fmt"
	goio "io"
	"os"

	"ecoscene/scene"
)

// WriteOBJ writes the visible meshes under root as Wavefront OBJ objects with
// their world transforms baked in. Colors are not exported.
func WriteOBJ(out goio.Writer, root *scene.Node) error {
	if root == nil {
		return fmt.Errorf("obj export: nil node")
	}
	w := bufio.NewWriter(out)

	fmt.Fprintln(w, "# ecoscene specimen")
	fmt.Fprintln(w)

	offset := uint32(0)
	var walk func(n *scene.Node)
	walk = func(n *scene.Node) {
		if !n.Visible {
			return
		}
		if m := n.Mesh; m != nil && m.Geometry != nil && !m.Geometry.Disposed() {
			offset += writeOBJMesh(w, n, offset)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("obj export: %w", err)
	}
	return nil
}

// SaveOBJ writes root to a .obj file.
func SaveOBJ(path string, root *scene.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	if err := WriteOBJ(f, root); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeOBJMesh emits one object and returns how many vertices it wrote.
// OBJ indices are 1-based and global, so offset is the running vertex count.
func writeOBJMesh(w *bufio.Writer, n *scene.Node, offset uint32) uint32 {
	g := n.Mesh.Geometry
	world := n.GetWorldMatrix()
	normalMat := world.NormalMatrix()

	fmt.Fprintf(w, "o %s_%d\n", n.Name, n.Id)
	for _, v := range g.Vertices {
		p := world.TransformPoint(v.Position)
		fmt.Fprintf(w, "v %f %f %f\n", p.X, p.Y, p.Z)
	}
	for _, v := range g.Vertices {
		nn := normalMat.TransformPoint(v.Normal).Normalize()
		fmt.Fprintf(w, "vn %f %f %f\n", nn.X, nn.Y, nn.Z)
	}
	for _, v := range g.Vertices {
		fmt.Fprintf(w, "vt %f %f\n", v.UV.X, v.UV.Y)
	}

	face := func(i uint32) uint32 { return i + 1 + offset }
	indices := g.Indices
	if len(indices) == 0 {
		indices = sequential(len(g.Vertices))
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := face(indices[i]), face(indices[i+1]), face(indices[i+2])
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	fmt.Fprintln(w)
	return uint32(len(g.Vertices))
}

func sequential(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
