// Package io exports procedural models for inspection in external tools.
package io

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"ecoscene/scene"
)

// ExportGLTF converts the subtree under root into a glTF document with a
// single scene. Geometries and materials shared between nodes are written
// once. Hidden children and disposed meshes are skipped.
func ExportGLTF(root *scene.Node) (*gltf.Document, error) {
	if root == nil {
		return nil, fmt.Errorf("gltf export: nil node")
	}
	e := &gltfExporter{
		doc:       gltf.NewDocument(),
		meshes:    make(map[*scene.Geometry]map[*scene.Material]int),
		materials: make(map[*scene.Material]int),
	}
	e.doc.Asset.Generator = "ecoscene"
	idx := e.node(root)
	e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, idx)
	return e.doc, nil
}

// SaveGLTF writes a .gltf file with embedded buffers.
func SaveGLTF(path string, root *scene.Node) error {
	doc, err := ExportGLTF(root)
	if err != nil {
		return err
	}
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("gltf save %q: %w", path, err)
	}
	return nil
}

// SaveGLB writes a binary .glb file.
func SaveGLB(path string, root *scene.Node) error {
	doc, err := ExportGLTF(root)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("glb save %q: %w", path, err)
	}
	return nil
}

type gltfExporter struct {
	doc       *gltf.Document
	meshes    map[*scene.Geometry]map[*scene.Material]int
	materials map[*scene.Material]int
}

func (e *gltfExporter) node(n *scene.Node) int {
	t := n.Transform
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float64{float64(t.Position.X), float64(t.Position.Y), float64(t.Position.Z)},
		Rotation:    [4]float64{float64(t.Rotation.X), float64(t.Rotation.Y), float64(t.Rotation.Z), float64(t.Rotation.W)},
		Scale:       [3]float64{float64(t.Scale.X), float64(t.Scale.Y), float64(t.Scale.Z)},
	}
	if m := n.Mesh; m != nil && m.Geometry != nil && !m.Geometry.Disposed() && len(m.Geometry.Vertices) > 0 {
		gn.Mesh = gltf.Index(e.mesh(m))
	}
	idx := len(e.doc.Nodes)
	e.doc.Nodes = append(e.doc.Nodes, gn)
	for _, c := range n.Children {
		if !c.Visible {
			continue
		}
		gn.Children = append(gn.Children, e.node(c))
	}
	return idx
}

func (e *gltfExporter) mesh(m *scene.Mesh) int {
	byMat := e.meshes[m.Geometry]
	if idx, ok := byMat[m.Material]; ok {
		return idx
	}

	g := m.Geometry
	positions := make([][3]float32, len(g.Vertices))
	normals := make([][3]float32, len(g.Vertices))
	uvs := make([][2]float32, len(g.Vertices))
	for i, v := range g.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
		normals[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
		uvs[i] = [2]float32{v.UV.X, v.UV.Y}
	}
	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION:   modeler.WritePosition(e.doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(e.doc, normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(e.doc, uvs),
		},
	}
	if len(g.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(e.doc, g.Indices))
	}
	if m.Material != nil {
		prim.Material = gltf.Index(e.material(m.Material))
	}

	idx := len(e.doc.Meshes)
	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{Name: g.Name, Primitives: []*gltf.Primitive{prim}})
	if byMat == nil {
		byMat = make(map[*scene.Material]int)
		e.meshes[m.Geometry] = byMat
	}
	byMat[m.Material] = idx
	return idx
}

func (e *gltfExporter) material(m *scene.Material) int {
	if idx, ok := e.materials[m]; ok {
		return idx
	}
	c := m.Color
	alpha := float64(1)
	if m.Transparent {
		alpha = float64(m.Opacity)
	}
	gm := &gltf.Material{
		Name:        m.Name,
		DoubleSided: m.DoubleSide,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(c.R), float64(c.G), float64(c.B), alpha},
			MetallicFactor:  gltf.Float(float64(m.Metalness)),
			RoughnessFactor: gltf.Float(float64(m.Roughness)),
		},
		EmissiveFactor: [3]float64{float64(m.Emissive.R), float64(m.Emissive.G), float64(m.Emissive.B)},
	}
	if m.Transparent {
		gm.AlphaMode = gltf.AlphaBlend
	}
	idx := len(e.doc.Materials)
	e.doc.Materials = append(e.doc.Materials, gm)
	e.materials[m] = idx
	return idx
}
