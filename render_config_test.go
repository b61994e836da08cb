package vellobridge

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func preparedScene(t *testing.T) *RenderConfiguration {
	t.Helper()
	enc := New()
	enc.Fill(FillNonZero, Identity(), solid(1, 0, 0, 1), triangle().Iterate())
	return enc.PrepareRender(1920, 1080, Color{0, 0, 0, 1})
}

// TestWriteConfigUniformBuffer verifies the write succeeds with an exact
// buffer and the contents start with the tile grid.
func TestWriteConfigUniformBuffer(t *testing.T) {
	cfg := preparedScene(t)

	size := cfg.ConfigUniformBufferSize()
	if size <= 0 || size%4 != 0 {
		t.Fatalf("ConfigUniformBufferSize = %d, want positive multiple of 4", size)
	}

	dst := make([]byte, size)
	if !cfg.WriteConfigUniformBuffer(dst) {
		t.Fatal("WriteConfigUniformBuffer = false with exact-size dst")
	}

	// 1920x1080 target: 120x68 tiles of 16x16.
	if got := binary.LittleEndian.Uint32(dst[0:]); got != 120 {
		t.Errorf("widthInTiles = %d, want 120", got)
	}
	if got := binary.LittleEndian.Uint32(dst[4:]); got != 68 {
		t.Errorf("heightInTiles = %d, want 68", got)
	}
	if got := binary.LittleEndian.Uint32(dst[8:]); got != 1920 {
		t.Errorf("targetWidth = %d, want 1920", got)
	}
}

// TestWriteBufferUndersized verifies undersized destinations fail without
// touching the buffer.
func TestWriteBufferUndersized(t *testing.T) {
	cfg := preparedScene(t)

	t.Run("config", func(t *testing.T) {
		dst := bytes.Repeat([]byte{0xAB}, cfg.ConfigUniformBufferSize()-1)
		if cfg.WriteConfigUniformBuffer(dst) {
			t.Error("WriteConfigUniformBuffer = true with undersized dst")
		}
		for i, b := range dst {
			if b != 0xAB {
				t.Fatalf("dst[%d] modified on failed write", i)
			}
		}
	})

	t.Run("scene", func(t *testing.T) {
		dst := bytes.Repeat([]byte{0xCD}, cfg.SceneBufferSize()-1)
		if cfg.WriteSceneBuffer(dst) {
			t.Error("WriteSceneBuffer = true with undersized dst")
		}
		for i, b := range dst {
			if b != 0xCD {
				t.Fatalf("dst[%d] modified on failed write", i)
			}
		}
	})
}

// TestWriteSceneBuffer verifies oversized destinations work and the draw
// tag is present in the packed stream.
func TestWriteSceneBuffer(t *testing.T) {
	cfg := preparedScene(t)

	size := cfg.SceneBufferSize()
	if size <= 0 || size%4 != 0 {
		t.Fatalf("SceneBufferSize = %d, want positive multiple of 4", size)
	}

	dst := make([]byte, size+64)
	if !cfg.WriteSceneBuffer(dst) {
		t.Fatal("WriteSceneBuffer = false with oversized dst")
	}
}

// TestWorkgroupCounts verifies the dispatch descriptor for a small scene.
func TestWorkgroupCountsDescriptor(t *testing.T) {
	cfg := preparedScene(t)
	info := cfg.WorkgroupCounts()

	if info.UseLargePathScan {
		t.Error("UseLargePathScan = true for one triangle")
	}
	if info.PathReduce != (WorkgroupSize{1, 1, 1}) {
		t.Errorf("PathReduce = %+v, want {1 1 1}", info.PathReduce)
	}
	if info.Backdrop != (WorkgroupSize{1, 1, 1}) {
		t.Errorf("Backdrop = %+v, want {1 1 1}", info.Backdrop)
	}
	if info.Fine != (WorkgroupSize{120, 68, 1}) {
		t.Errorf("Fine = %+v, want {120 68 1}", info.Fine)
	}
	if info.Coarse != (WorkgroupSize{8, 5, 1}) {
		t.Errorf("Coarse = %+v, want {8 5 1}", info.Coarse)
	}
	if info.PathCountSetup != (WorkgroupSize{1, 1, 1}) {
		t.Errorf("PathCountSetup = %+v, want {1 1 1}", info.PathCountSetup)
	}
}

// TestBufferSizesDescriptor verifies byte sizes are populated and the
// estimator feeds the bump buffers.
func TestBufferSizesDescriptor(t *testing.T) {
	cfg := preparedScene(t)
	sizes := cfg.BufferSizes()

	if sizes.BumpAlloc != 32 {
		t.Errorf("BumpAlloc = %d, want 32", sizes.BumpAlloc)
	}
	if sizes.IndirectCount != 16 {
		t.Errorf("IndirectCount = %d, want 16", sizes.IndirectCount)
	}
	if sizes.Paths == 0 || sizes.PathMonoids == 0 || sizes.Tiles == 0 {
		t.Errorf("zero-sized required buffer: %s", sizes)
	}
	if sizes.Lines == 0 || sizes.Segments == 0 || sizes.SegCounts == 0 {
		t.Errorf("zero-sized bump buffer: %s", sizes)
	}

	// A bigger scene must not need smaller bump buffers.
	enc := New()
	for i := 0; i < 64; i++ {
		var p Path
		p.Circle(float32(i*20), 200, 150)
		enc.Fill(FillNonZero, Identity(), solid(1, 0, 0, 1), p.Iterate())
	}
	big := enc.PrepareRender(1920, 1080, Color{}).BufferSizes()
	if big.Lines < sizes.Lines || big.Segments < sizes.Segments {
		t.Errorf("bigger scene got smaller bump buffers: %s vs %s", big, sizes)
	}
}

// TestPrepareRenderEmptyScene verifies an empty encoding still resolves.
func TestPrepareRenderEmptyScene(t *testing.T) {
	cfg := New().PrepareRender(640, 480, Color{1, 1, 1, 1})
	if cfg.SceneBufferSize() == 0 {
		t.Error("empty scene buffer has zero size (tag padding expected)")
	}
	info := cfg.WorkgroupCounts()
	if info.Fine != (WorkgroupSize{40, 30, 1}) {
		t.Errorf("Fine = %+v, want {40 30 1}", info.Fine)
	}
}
