// Package volume reads and writes image volumes. The container format is
// inferred from the file extension: .npy files hold 2-D or 3-D arrays in
// any supported pixel type, and common raster formats (PNG, JPEG, TIFF,
// BMP, GIF) hold 2-D grayscale images. In memory every volume uses the
// floating-point working representation; pixel types exist only at the file
// boundary.
//
// Pixel-type genericity is runtime-dispatched through a closed codec table
// rather than generics: each supported {pixel type} variant is wired to a
// concrete decode and encode function, selected from file metadata on load
// and from the requested output type on write.
package volume

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kshedden/gonpy"

	"volblur/internal/models"
)

// npyCodec binds one pixel type to its .npy decode and encode functions.
type npyCodec struct {
	dtype string
	read  func(*gonpy.NpyReader) ([]float64, error)
	write func(*gonpy.NpyWriter, []float64) error
}

// npyCodecs is the closed set of supported pixel-type variants for .npy
// containers.
var npyCodecs = map[models.PixelType]npyCodec{
	models.UInt8: {
		dtype: "u1",
		read: func(r *gonpy.NpyReader) ([]float64, error) {
			raw, err := r.GetUint8()
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(raw))
			for i, v := range raw {
				out[i] = float64(v)
			}
			return out, nil
		},
		write: func(w *gonpy.NpyWriter, data []float64) error {
			return w.WriteUint8(castUint8(data))
		},
	},
	models.Int16: {
		dtype: "i2",
		read: func(r *gonpy.NpyReader) ([]float64, error) {
			raw, err := r.GetInt16()
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(raw))
			for i, v := range raw {
				out[i] = float64(v)
			}
			return out, nil
		},
		write: func(w *gonpy.NpyWriter, data []float64) error {
			return w.WriteInt16(castInt16(data))
		},
	},
	models.UInt16: {
		dtype: "u2",
		read: func(r *gonpy.NpyReader) ([]float64, error) {
			raw, err := r.GetUint16()
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(raw))
			for i, v := range raw {
				out[i] = float64(v)
			}
			return out, nil
		},
		write: func(w *gonpy.NpyWriter, data []float64) error {
			return w.WriteUint16(castUint16(data))
		},
	},
	models.Int32: {
		dtype: "i4",
		read: func(r *gonpy.NpyReader) ([]float64, error) {
			raw, err := r.GetInt32()
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(raw))
			for i, v := range raw {
				out[i] = float64(v)
			}
			return out, nil
		},
		write: func(w *gonpy.NpyWriter, data []float64) error {
			return w.WriteInt32(castInt32(data))
		},
	},
	models.Float32: {
		dtype: "f4",
		read: func(r *gonpy.NpyReader) ([]float64, error) {
			raw, err := r.GetFloat32()
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(raw))
			for i, v := range raw {
				out[i] = float64(v)
			}
			return out, nil
		},
		write: func(w *gonpy.NpyWriter, data []float64) error {
			return w.WriteFloat32(castFloat32(data))
		},
	},
	models.Float64: {
		dtype: "f8",
		read: func(r *gonpy.NpyReader) ([]float64, error) {
			return r.GetFloat64()
		},
		write: func(w *gonpy.NpyWriter, data []float64) error {
			return w.WriteFloat64(data)
		},
	},
}

// npyDtypes maps numpy dtype descriptors back to pixel types.
var npyDtypes = func() map[string]models.PixelType {
	m := make(map[string]models.PixelType, len(npyCodecs))
	for pt, c := range npyCodecs {
		m[c.dtype] = pt
	}
	return m
}()

// rasterExts are the raster container extensions imaging can encode and
// decode by extension.
var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".gif":  true,
}

// Read loads an image volume from path, producing the floating-point
// working representation. The container format is inferred from the
// extension; pixel type and dimensionality come from the file's own
// metadata.
func Read(path string) (*models.Volume, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".npy":
		return readNpy(path)
	case rasterExts[ext]:
		return readRaster(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (supported: .npy, .png, .jpg, .jpeg, .tif, .tiff, .bmp, .gif)", ext)
	}
}

// readNpy loads a 2-D or 3-D numpy array through the pixel-type codec table.
func readNpy(path string) (*models.Volume, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if len(r.Shape) < 2 || len(r.Shape) > 3 {
		return nil, fmt.Errorf("%s: %d-dimensional array, only 2-D and 3-D volumes are supported", path, len(r.Shape))
	}
	if r.ColumnMajor {
		return nil, fmt.Errorf("%s: column-major (Fortran-order) arrays are not supported", path)
	}

	pt, ok := npyDtypes[r.Dtype]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported dtype %q", path, r.Dtype)
	}

	data, err := npyCodecs[pt].read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	v := models.NewVolume(r.Shape)
	v.Data = data
	v.SourceType = pt
	return v, nil
}

// readRaster loads a 2-D raster image as a grayscale volume. 16-bit sources
// keep the 0..65535 sample range; everything else decodes to 0..255.
func readRaster(path string) (*models.Volume, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	v := models.NewVolume([]int{h, w})

	switch src := img.(type) {
	case *image.Gray16:
		v.SourceType = models.UInt16
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v.Data[y*w+x] = float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
	case *image.NRGBA64, *image.RGBA64:
		v.SourceType = models.UInt16
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
				v.Data[y*w+x] = float64(g.Y)
			}
		}
	default:
		v.SourceType = models.UInt8
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				v.Data[y*w+x] = float64(g.Y)
			}
		}
	}

	return v, nil
}

// Write casts the volume to the requested pixel type and writes it to path
// in a format inferred from the extension. Raster destinations accept only
// 2-D volumes in uint8 or uint16; .npy accepts every supported pixel type
// and dimensionality.
func Write(v *models.Volume, path string, pt models.PixelType) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".npy":
		return writeNpy(v, path, pt)
	case rasterExts[ext]:
		return writeRaster(v, path, pt)
	default:
		return fmt.Errorf("unsupported output format %q (supported: .npy, .png, .jpg, .jpeg, .tif, .tiff, .bmp, .gif)", ext)
	}
}

// writeNpy writes the volume as a numpy array through the codec table.
func writeNpy(v *models.Volume, path string, pt models.PixelType) error {
	codec, ok := npyCodecs[pt]
	if !ok {
		return fmt.Errorf("unsupported pixel type %s for .npy output", pt)
	}

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w.Shape = append([]int(nil), v.Dims...)

	if err := codec.write(w, v.Data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeRaster writes a 2-D volume as a grayscale raster image.
func writeRaster(v *models.Volume, path string, pt models.PixelType) error {
	if v.Dimensionality() != 2 {
		return fmt.Errorf("raster formats hold 2-D images, volume is %d-dimensional (use .npy)", v.Dimensionality())
	}

	h, w := v.Dims[0], v.Dims[1]
	var img image.Image

	switch pt {
	case models.UInt8:
		gray := image.NewGray(image.Rect(0, 0, w, h))
		samples := castUint8(v.Data)
		copy(gray.Pix, samples)
		img = gray
	case models.UInt16:
		gray := image.NewGray16(image.Rect(0, 0, w, h))
		samples := castUint16(v.Data)
		for i, s := range samples {
			gray.Pix[2*i] = uint8(s >> 8)
			gray.Pix[2*i+1] = uint8(s)
		}
		img = gray
	default:
		return fmt.Errorf("raster formats support uint8 and uint16 output, not %s (use .npy)", pt)
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
