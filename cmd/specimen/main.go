// Specimen exports the procedural model of one species, or of all of them,
// for inspection in a model viewer.
//
//	specimen -species fox2 -out fox2.glb
//	specimen -all -dir specimens -format gltf
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"ecoscene/factory"
	"ecoscene/io"
	"ecoscene/scene"
	"ecoscene/species"
)

var (
	speciesFlag = flag.String("species", "pine", "species id to export")
	outFlag     = flag.String("out", "", "output file; the extension picks the format")
	allFlag     = flag.Bool("all", false, "export every species in the catalog")
	dirFlag     = flag.String("dir", ".", "output directory for -all")
	formatFlag  = flag.String("format", "glb", "format for -all: gltf, glb or obj")
	seedFlag    = flag.Int64("seed", 1, "random seed for model variation")
	listFlag    = flag.Bool("list", false, "list species ids and exit")
)

func main() {
	flag.Parse()
	if *listFlag {
		for _, d := range species.All() {
			kind := "plant"
			if d.Kind == species.Animal {
				kind = "animal"
			}
			fmt.Printf("%-12s %-6s %s %s\n", d.ID, kind, d.Icon, d.DisplayName)
		}
		return
	}

	f := factory.New(rand.New(rand.NewSource(*seedFlag)), factory.WithLogger(slog.Default()))
	if *allFlag {
		if err := os.MkdirAll(*dirFlag, 0755); err != nil {
			fail(err)
		}
		for _, d := range species.All() {
			path := filepath.Join(*dirFlag, d.ID+"."+*formatFlag)
			if err := export(f, d.ID, path); err != nil {
				fail(err)
			}
		}
		return
	}

	path := *outFlag
	if path == "" {
		path = *speciesFlag + ".glb"
	}
	if !f.Has(*speciesFlag) {
		slog.Warn("unknown species, exporting the default model", "species", *speciesFlag)
	}
	if err := export(f, *speciesFlag, path); err != nil {
		fail(err)
	}
}

func export(f *factory.Factory, id, path string) error {
	node, _ := f.Create(id)
	defer scene.DisposeTree(node)

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb":
		err = io.SaveGLB(path, node)
	case ".gltf":
		err = io.SaveGLTF(path, node)
	case ".obj":
		err = io.SaveOBJ(path, node)
	default:
		return fmt.Errorf("unsupported format %q", ext)
	}
	if err != nil {
		return err
	}
	slog.Info("exported", "species", id, "path", path)
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
