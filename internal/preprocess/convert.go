package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// MatFromImage converts a Go image.Image to a BGR gocv.Mat. Capture
// collaborators hand over image.Image values; everything downstream
// works on Mats.
func MatFromImage(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.Mat{}, fmt.Errorf("nil image")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return gocv.Mat{}, fmt.Errorf("empty image bounds %v", bounds)
	}

	// OpenCV uses BGR byte order
	data := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		rowOff := y * width * 3
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			off := rowOff + x*3
			data[off+0] = uint8(b >> 8)
			data[off+1] = uint8(g >> 8)
			data[off+2] = uint8(r >> 8)
		}
	}

	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert image to mat: %w", err)
	}
	return mat, nil
}
