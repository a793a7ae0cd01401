package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/go-cvkit/images"
	"github.com/nvr-ai/go-cvkit/lists"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrame(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, images.WriteImage(path, img))
}

func TestParseBox(t *testing.T) {
	r, err := parseBox("1, 2,30,40")
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 2, 30, 40}, r.Coords())

	for _, in := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,4,5"} {
		_, err := parseBox(in)
		assert.Error(t, err, in)
	}
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".jpg", ".png"}, parseExtensions("jpg, .png,"))
	assert.Nil(t, parseExtensions(""))
}

func TestRun_Errors(t *testing.T) {
	assert.Error(t, run(nil))
	assert.Error(t, run([]string{"explode"}))
	assert.Error(t, run([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml"), "mask"}))
	assert.Error(t, run([]string{"list"}), "-dir is required")
}

func TestRun_Mask(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mask.png")
	require.NoError(t, run([]string{"mask", "-box", "2,2,10,10", "-height", "20", "-width", "20", "-out", out}))

	tt, err := images.ReadImage(out, images.ReadOptions{})
	require.NoError(t, err)
	data := tt.Data().([]float32)
	assert.Equal(t, float32(255), data[2*20+2])
	assert.Equal(t, float32(0), data[10*20+10])

	err = run([]string{"mask", "-box", "0,0,10,10", "-height", "5", "-width", "5", "-out", out})
	assert.Error(t, err)
}

func TestRun_ListSplitStitch(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	for i, c := range []color.RGBA{{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}} {
		writeFrame(t, filepath.Join(frames, "cam", string(rune('a'+i))+".png"), 10, 10, c)
	}
	require.NoError(t, os.WriteFile(filepath.Join(frames, "notes.txt"), []byte("x"), 0o644))

	listPath := filepath.Join(dir, "frames.txt")
	require.NoError(t, run([]string{"list", "-dir", frames, "-ext", "png", "-out", listPath}))
	listed, err := lists.LoadList(listPath)
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	splitDir := filepath.Join(dir, "splits")
	require.NoError(t, run([]string{"split", "-in", listPath, "-max", "2", "-out", splitDir, "-shuffle", "-seed", "3"}))
	chunk, err := lists.LoadList(filepath.Join(splitDir, "frames_000001.txt"))
	require.NoError(t, err)
	assert.Len(t, chunk, 1)

	stitchPath := filepath.Join(dir, "stitch.png")
	require.NoError(t, run([]string{"stitch", "-in", listPath, "-rows", "1", "-cols", "3", "-out", stitchPath}))
	stitch, err := images.LoadImage(stitchPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3*10+4*1, 10+2*1), stitch.Bounds())
}

func TestRun_DrawAndCrop(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "frame.png")
	writeFrame(t, in, 40, 30, color.RGBA{A: 255})

	drawn := filepath.Join(dir, "drawn.png")
	require.NoError(t, run([]string{"draw", "-in", in, "-box", "10,10,20,20", "-ratio", "2", "-color", "red", "-thickness", "-1", "-out", drawn}))

	img, err := images.LoadImage(drawn)
	require.NoError(t, err)
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b}, "resized box starts at (5, 5)")
	r, _, _, _ = img.At(25, 25).RGBA()
	assert.Equal(t, uint32(0), r, "far corner is exclusive")

	cropped := filepath.Join(dir, "crop.png")
	require.NoError(t, run([]string{"crop", "-in", drawn, "-box", "5,5,25,25", "-height", "4", "-width", "8", "-out", cropped}))
	img, err = images.LoadImage(cropped)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	r, g, _, _ = img.At(3, 2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)

	assert.Error(t, run([]string{"crop", "-in", drawn, "-box", "0,0,100,100", "-out", cropped}))
	assert.Error(t, run([]string{"draw", "-in", in, "-box", "1,1,2,2", "-ratio", "0", "-out", drawn}))
}
