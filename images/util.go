package images

import (
	"crypto/md5"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ComputeMatChecksum generates a deterministic checksum for a Mat to verify idempotency.
//
// Arguments:
// - mat: The Mat to compute checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	mask, _ := rect.BinaryMaskMat(480, 640)
//	fmt.Printf("Mask checksum: %s\n", ComputeMatChecksum(mask))
//
// ```
func ComputeMatChecksum(mat gocv.Mat) string {
	if mat.Empty() {
		return "empty"
	}

	data, _ := mat.DataPtrUint8()
	hash := md5.New()
	hash.Write(data)
	return fmt.Sprintf("%x", hash.Sum(nil))
}

// ComputeGrayChecksum is ComputeMatChecksum for Go masks. A mask and a Mat
// holding the same pixels produce the same checksum.
func ComputeGrayChecksum(img *image.Gray) string {
	if img == nil || img.Bounds().Empty() {
		return "empty"
	}

	hash := md5.New()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		hash.Write(img.Pix[start : start+b.Dx()])
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}
