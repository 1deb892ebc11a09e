package io_test

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/factory"
	"ecoscene/io"
	"ecoscene/math"
	"ecoscene/scene"
)

func sharedPair() (*scene.Node, *scene.Geometry) {
	geo := scene.NewBoxGeometry(1, 2, 1)
	mat := scene.NewStandardMaterial(0xff0000, 0.4, 0.1)
	root := scene.NewNode("pair")
	a := scene.NewMeshNode("a", scene.NewMesh(geo, mat))
	b := scene.NewMeshNode("b", scene.NewMesh(geo, mat))
	b.SetPosition(math.NewVec3(3, 0, 0))
	root.AddChild(a)
	root.AddChild(b)
	return root, geo
}

func TestExportGLTF(t *testing.T) {
	t.Run("shared geometry is written once", func(t *testing.T) {
		root, geo := sharedPair()
		doc, err := io.ExportGLTF(root)
		require.NoError(t, err)

		assert.Len(t, doc.Nodes, 3)
		assert.Len(t, doc.Meshes, 1)
		assert.Len(t, doc.Materials, 1)
		require.Len(t, doc.Scenes, 1)
		assert.Equal(t, []int{0}, doc.Scenes[0].Nodes)
		assert.Equal(t, []int{1, 2}, doc.Nodes[0].Children)
		assert.Equal(t, [3]float64{3, 0, 0}, doc.Nodes[2].Translation)

		prim := doc.Meshes[0].Primitives[0]
		positions, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], nil)
		require.NoError(t, err)
		assert.Len(t, positions, len(geo.Vertices))
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		require.NoError(t, err)
		assert.Equal(t, geo.Indices, indices)
	})

	t.Run("material factors", func(t *testing.T) {
		geo := scene.NewSphereGeometry(1, 8, 6)
		mat := scene.NewStandardMaterial(0xffffff, 0.3, 0.2)
		mat.Transparent = true
		mat.Opacity = 0.7
		mat.DoubleSide = true
		doc, err := io.ExportGLTF(scene.NewMeshNode("wing", scene.NewMesh(geo, mat)))
		require.NoError(t, err)

		require.Len(t, doc.Materials, 1)
		gm := doc.Materials[0]
		assert.True(t, gm.DoubleSided)
		assert.Equal(t, gltf.AlphaBlend, gm.AlphaMode)
		assert.InDelta(t, 0.7, gm.PBRMetallicRoughness.BaseColorFactor[3], 1e-6)
		assert.InDelta(t, 0.3, *gm.PBRMetallicRoughness.RoughnessFactor, 1e-6)
	})

	t.Run("skips hidden and disposed", func(t *testing.T) {
		root, _ := sharedPair()
		root.Children[1].Visible = false
		extra := scene.NewMeshNode("gone", scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), scene.NewStandardMaterial(0, 1, 0)))
		extra.Mesh.Dispose()
		root.AddChild(extra)

		doc, err := io.ExportGLTF(root)
		require.NoError(t, err)
		assert.Len(t, doc.Nodes, 3)
		assert.Nil(t, doc.Nodes[2].Mesh)
		assert.Len(t, doc.Meshes, 1)
	})

	t.Run("nil root", func(t *testing.T) {
		_, err := io.ExportGLTF(nil)
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	node := factory.New(rand.New(rand.NewSource(3))).CreateAnimal("penguin")
	dir := t.TempDir()

	for _, name := range []string{"penguin.gltf", "penguin.glb"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if strings.HasSuffix(name, ".glb") {
				require.NoError(t, io.SaveGLB(path, node))
			} else {
				require.NoError(t, io.SaveGLTF(path, node))
			}
			doc, err := gltf.Open(path)
			require.NoError(t, err)
			assert.Equal(t, "penguin", doc.Nodes[0].Name)
			assert.NotEmpty(t, doc.Meshes)
		})
	}
}

func TestWriteOBJ(t *testing.T) {
	root, geo := sharedPair()
	var buf bytes.Buffer
	require.NoError(t, io.WriteOBJ(&buf, root))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "\no "))
	assert.Equal(t, 2*len(geo.Vertices), strings.Count(out, "\nv "))
	assert.Equal(t, 2*len(geo.Indices)/3, strings.Count(out, "\nf "))

	// The second object's faces index past the first object's vertices.
	last := out[strings.LastIndex(out, "\nf ")+1:]
	assert.NotContains(t, last, "f 1/")

	t.Run("nil root", func(t *testing.T) {
		assert.Error(t, io.WriteOBJ(&buf, nil))
	})
}
