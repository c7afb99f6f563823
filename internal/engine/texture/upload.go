package texture

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Upload creates a mipmapped, repeating GL texture from img.
// Must be called on the thread that owns the GL context.
func Upload(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// GLName returns the uploaded texture, uploading on first use. It returns
// false while the image is still decoding or if decoding failed.
func (h *Handle) GLName() (uint32, bool) {
	if tex := h.uploaded.Load(); tex != 0 {
		return tex, true
	}
	img := h.Image()
	if img == nil || img.Bounds().Empty() {
		return 0, false
	}
	tex := Upload(img)
	h.uploaded.Store(tex)
	return tex, true
}

// Release deletes the GL texture if one was uploaded.
func (h *Handle) Release() {
	if tex := h.uploaded.Swap(0); tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}
