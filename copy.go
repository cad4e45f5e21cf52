package imagehandler

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DeepCopy returns a copy of img that shares no pixel storage with it.
//
// All image types of the standard library are copied into the same type, so
// the color model (and whether alpha is premultiplied) is kept. Any other
// implementation is drawn into an *image.RGBA64. A nil image returns nil.
func DeepCopy(img image.Image) image.Image {
	switch src := img.(type) {
	case nil:
		return nil
	case *image.RGBA:
		return &image.RGBA{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.RGBA64:
		return &image.RGBA64{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.NRGBA:
		return &image.NRGBA{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.NRGBA64:
		return &image.NRGBA64{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.Alpha:
		return &image.Alpha{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.Alpha16:
		return &image.Alpha16{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.Gray:
		return &image.Gray{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.Gray16:
		return &image.Gray16{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.CMYK:
		return &image.CMYK{Pix: cloneBytes(src.Pix), Stride: src.Stride, Rect: src.Rect}
	case *image.Paletted:
		return &image.Paletted{
			Pix:     cloneBytes(src.Pix),
			Stride:  src.Stride,
			Rect:    src.Rect,
			Palette: append(color.Palette(nil), src.Palette...),
		}
	case *image.YCbCr:
		return copyYCbCr(src)
	case *image.NYCbCrA:
		return &image.NYCbCrA{
			YCbCr:   *copyYCbCr(&src.YCbCr),
			A:       cloneBytes(src.A),
			AStride: src.AStride,
		}
	default:
		bounds := img.Bounds()
		dst := image.NewRGBA64(bounds)
		draw.Copy(dst, bounds.Min, img, bounds, draw.Src, nil)
		return dst
	}
}

func copyYCbCr(src *image.YCbCr) *image.YCbCr {
	return &image.YCbCr{
		Y:              cloneBytes(src.Y),
		Cb:             cloneBytes(src.Cb),
		Cr:             cloneBytes(src.Cr),
		YStride:        src.YStride,
		CStride:        src.CStride,
		SubsampleRatio: src.SubsampleRatio,
		Rect:           src.Rect,
	}
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
